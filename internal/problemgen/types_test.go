package problemgen

import (
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"1", 1, false},
		{"10", 10, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"11", 0, true},
		{"five", 0, true},
		{"5.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLevel_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body    string
		want    Level
		wantErr bool
	}{
		{`{"level": 3}`, 3, false},
		{`{"level": "8"}`, 8, false},
		{`{"level": null}`, DefaultLevel, false},
		{`{}`, DefaultLevel, false},
		{`{"level": 0}`, 0, true},
		{`{"level": "hard"}`, 0, true},
		{`{"level": 4.5}`, 0, true},
		{`{"level": true}`, 0, true},
	}
	for _, tt := range tests {
		req := struct {
			Level Level `json:"level"`
		}{Level: DefaultLevel}
		err := json.Unmarshal([]byte(tt.body), &req)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.body, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && req.Level != tt.want {
			t.Errorf("%s: level = %d, want %d", tt.body, req.Level, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if DefaultLevel.String() != "5" {
		t.Errorf("expected \"5\", got %q", DefaultLevel.String())
	}
	if Level(0).Valid() || !MaxLevel.Valid() {
		t.Error("unexpected Valid result")
	}
}
