package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func reviewSchema() *Schema {
	return &Schema{
		Name:        "test-review",
		Description: "A review of a submitted solution",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":             map[string]any{"type": "integer", "minimum": 0, "maximum": 20},
				"tips":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2, "maxItems": 4},
				"suggested_version": map[string]any{"type": "string"},
				"verdict":           map[string]any{"type": "string", "enum": []any{"pass", "fail"}},
			},
			"required":             []any{"score", "tips", "suggested_version"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"score":16,"tips":["Name things","Handle errors"],"suggested_version":"func f() {}","verdict":"pass"}`)
	if err := validateResponse(reviewSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"score":16,"tips":["a","b"]}`},
		{"wrong type", `{"score":"sixteen","tips":["a","b"],"suggested_version":""}`},
		{"score above range", `{"score":21,"tips":["a","b"],"suggested_version":""}`},
		{"too few tips", `{"score":10,"tips":["a"],"suggested_version":""}`},
		{"too many tips", `{"score":10,"tips":["a","b","c","d","e"],"suggested_version":""}`},
		{"bad enum", `{"score":10,"tips":["a","b"],"suggested_version":"","verdict":"maybe"}`},
		{"extra property", `{"score":10,"tips":["a","b"],"suggested_version":"","grade":"A"}`},
		{"malformed", `{not json}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(reviewSchema(), json.RawMessage(tt.raw))
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(invErr.Content) != tt.raw {
				t.Fatalf("expected raw content to be kept, got %q", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	if err := validateResponse(reviewSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_SchemaCached(t *testing.T) {
	s := reviewSchema()
	raw := json.RawMessage(`{"score":1,"tips":["a","b"],"suggested_version":"x"}`)
	if err := validateResponse(s, raw); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	key, _, err := schemaKey(s)
	if err != nil {
		t.Fatalf("schemaKey: %v", err)
	}
	if _, ok := compiledSchemas.Load(key); !ok {
		t.Fatalf("expected schema %q to be cached", key)
	}
	if err := validateResponse(s, raw); err != nil {
		t.Fatalf("second validation: %v", err)
	}
}

func TestValidateResponse_SameNameDifferentDefinition(t *testing.T) {
	loose := &Schema{
		Name:       "test-review",
		Definition: map[string]any{"type": "object"},
	}
	raw := json.RawMessage(`{"grade":"A"}`)
	if err := validateResponse(loose, raw); err != nil {
		t.Fatalf("loose schema: %v", err)
	}
	if err := validateResponse(reviewSchema(), raw); err == nil {
		t.Fatal("strict schema with the same name accepted a non-matching reply")
	}
}
