package llm

import "context"

// Purposes recorded with every logged call.
const (
	PurposeProblemGen   = "problem-gen"
	PurposeSolutionEval = "solution-eval"
	PurposeUnknown      = "unknown"
)

type (
	purposeKey   struct{}
	requestIDKey struct{}
)

// WithPurpose labels calls made with ctx, e.g. PurposeProblemGen.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// WithRequestID ties calls made with ctx to the inbound API request that
// caused them.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
