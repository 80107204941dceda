package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated problem. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds how many times a problem is requested when a
	// validator reports a retryable failure.
	MaxAttempts int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{MaxLength: 8000},
			&TagValidator{},
		},
		MaxAttempts: 2,
		MaxTokens:   1024,
		Temperature: 0.9,
	}
}
