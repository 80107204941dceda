package llm

import (
	"bytes"
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the model. When the request carries a
	// Schema the reply is validated JSON in Response.Content; otherwise the
	// reply text is returned in Response.Text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Problem generation and solution review
	// are single-turn, so this usually holds one user message.
	Messages []Message

	// Schema, when set, asks the provider for JSON conforming to it using
	// the provider's native structured output mechanism.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// defaultMaxTokens applies when a Request leaves MaxTokens at zero.
const defaultMaxTokens = 2048

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name for
	// OpenAI). Kebab-case, e.g. "solution-evaluation".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object for schema requests, or the reply
	// text encoded as a JSON string otherwise.
	Content json.RawMessage

	// Text is the plain reply for requests without a Schema.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// decodeReply turns a provider's raw reply into Response content. Schema
// replies lose any Markdown fences and must validate; anything else is kept
// verbatim as text.
func decodeReply(req Request, reply string) (json.RawMessage, string, error) {
	if req.Schema == nil {
		content, err := encodeText(reply)
		if err != nil {
			return nil, "", &ErrInvalidResponse{Err: err}
		}
		return content, reply, nil
	}

	content := json.RawMessage(StripCodeFences(reply))
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, "", err
	}
	return content, "", nil
}

// encodeText encodes s as a JSON string. Tagged problem text is full of
// angle brackets, so HTML escaping stays off.
func encodeText(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// finish completes resp from the reply text. A structured reply cut off by
// the token limit cannot be valid JSON, so it is reported as such rather
// than as a schema failure.
func finish(req Request, reply string, resp Response) (*Response, error) {
	if req.Schema != nil && resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: []byte(reply)}
	}

	content, text, err := decodeReply(req, reply)
	if err != nil {
		return nil, err
	}
	resp.Content = content
	resp.Text = text
	return &resp, nil
}
