package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
	Kind    string    // coach events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	RequestID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Coach event kinds.
const (
	CoachKindGenerate = "generate"
	CoachKindEvaluate = "evaluate"
)

// CoachEventData captures one request served by the coaching API.
// Evaluate events carry no level of their own; ProblemHash links them to
// the generate event that produced the problem.
type CoachEventData struct {
	Kind         string
	RequestID    string
	Level        int
	Score        string
	ProblemHash  string
	Success      bool
	ErrorMessage string
	LatencyMs    int64
}

// CoachEvent is a stored coaching event.
type CoachEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	CoachEventData
}

// CoachLevelStats aggregates coaching requests at one difficulty level.
// Level 0 collects evaluations of problems this store never generated.
type CoachLevelStats struct {
	Level       int
	Generated   int
	Evaluated   int
	Failed      int
	AvgScore    float64 // over numeric scores of successful evaluations
	ScoredCount int
}

// EventRepo provides append and query access to recorded events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendCoachEvent records a served coaching request.
	AppendCoachEvent(ctx context.Context, data CoachEventData) error

	// QueryCoachEvents returns coaching events, newest first.
	QueryCoachEvents(ctx context.Context, opts QueryOpts) ([]CoachEvent, error)

	// CoachStatsByLevel aggregates coaching events per difficulty level.
	CoachStatsByLevel(ctx context.Context) ([]CoachLevelStats, error)
}

// eventRepo implements EventRepo on the ent SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}
