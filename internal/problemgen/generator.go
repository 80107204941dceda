package problemgen

import "context"

// Generator produces programming problems using an LLM provider.
type Generator interface {
	// Generate produces the tagged text of a single problem for the given
	// level. All configured validators are run before returning.
	Generate(ctx context.Context, level Level) (string, error)
}
