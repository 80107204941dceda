package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

var evaluationSchema = &Schema{
	Name: "test-evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{"type": "integer", "minimum": 0, "maximum": 20},
			"tips":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"score", "tips"},
	},
}

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "<title>Two Sum</title>", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		JSONResponse(`{"score":12,"tips":["a","b"]}`),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: UserMessage("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != "<title>Two Sum</title>" {
		t.Fatalf("expected problem text, got %q", resp1.Text)
	}
	if string(resp1.Content) != `"<title>Two Sum</title>"` {
		t.Fatalf("expected text encoded as JSON string, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: UserMessage("second"), Schema: evaluationSchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"score":12,"tips":["a","b"]}` {
		t.Fatalf("unexpected content %s", resp2.Content)
	}
	if resp2.Text != "" {
		t.Fatalf("expected no text for schema reply, got %q", resp2.Text)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(JSONResponse(`{"score":99,"tips":[]}`))

	_, err := mock.Generate(context.Background(), Request{Schema: evaluationSchema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockProvider_StripsFencesFromStructuredReply(t *testing.T) {
	mock := NewMockProvider(TextResponse("```json\n{\"score\":7,\"tips\":[\"x\"]}\n```"))

	resp, err := mock.Generate(context.Background(), Request{Schema: evaluationSchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"score":7,"tips":["x"]}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(TextResponse("ok"))

	req := Request{
		System:   "sys",
		Messages: UserMessage("hello"),
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestFinish_MaxTokensOnStructuredReply(t *testing.T) {
	_, err := finish(Request{Schema: evaluationSchema}, `{"score":`, Response{StopReason: "max_tokens"})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}

	// Truncated plain text is still usable.
	resp, err := finish(Request{}, "<title>Two", Response{StopReason: "max_tokens"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "<title>Two" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestRequest_MaxTokensDefault(t *testing.T) {
	if got := (Request{}).maxTokens(); got != defaultMaxTokens {
		t.Fatalf("maxTokens() = %d, want %d", got, defaultMaxTokens)
	}
	if got := (Request{MaxTokens: 64}).maxTokens(); got != 64 {
		t.Fatalf("maxTokens() = %d, want 64", got)
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := RequestIDFrom(ctx); id != "" {
		t.Fatalf("expected empty request id, got %q", id)
	}

	ctx = WithPurpose(ctx, "problem-gen")
	ctx = WithRequestID(ctx, "host/abc-000001")
	if p := PurposeFrom(ctx); p != "problem-gen" {
		t.Fatalf("expected 'problem-gen', got %q", p)
	}
	if id := RequestIDFrom(ctx); id != "host/abc-000001" {
		t.Fatalf("unexpected request id %q", id)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{"  \n```JSON\n{}\n```\n ", `{}`},
	}
	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResponseContentIsJSON(t *testing.T) {
	content, text, err := decodeReply(Request{}, "line 1\nline \"2\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded string
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("content is not a JSON string: %v", err)
	}
	if decoded != text {
		t.Fatalf("decoded %q, want %q", decoded, text)
	}
}

func TestResponseContentKeepsMarkup(t *testing.T) {
	reply := "<title>A & B</title><examples>f(1) > 0</examples>"
	content, _, err := decodeReply(Request{}, reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `"<title>A & B</title><examples>f(1) > 0</examples>"`
	if string(content) != want {
		t.Fatalf("content = %s, want %s", content, want)
	}
}
