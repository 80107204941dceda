package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Column names shared by every event table.
const (
	colID        = "id"
	colSequence  = "sequence"
	colCreatedAt = "created_at"
	colRequestID = "request_id"
	colSuccess   = "success"
	colLatencyMs = "latency_ms"
	colErrorMsg  = "error_message"
)

const (
	llmEventsTable   = "llm_request_events"
	coachEventsTable = "coach_events"
)

var (
	// LLMRequestEventsColumns records every LLM API call for cost tracking
	// and debugging.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colCreatedAt, Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: colRequestID, Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colErrorMsg, Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	LLMRequestEventsTable = &schema.Table{
		Name:       llmEventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_request_id", Columns: []*schema.Column{LLMRequestEventsColumns[6]}},
		},
	}

	// CoachEventsColumns records every generate and evaluate request served
	// by the API.
	CoachEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colCreatedAt, Type: field.TypeInt64},
		{Name: "kind", Type: field.TypeString},
		{Name: colRequestID, Type: field.TypeString, Default: ""},
		{Name: "level", Type: field.TypeInt, Default: 0},
		{Name: "score", Type: field.TypeString, Default: ""},
		{Name: "problem_hash", Type: field.TypeString, Default: ""},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colErrorMsg, Type: field.TypeString, Default: ""},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
	}
	CoachEventsTable = &schema.Table{
		Name:       coachEventsTable,
		Columns:    CoachEventsColumns,
		PrimaryKey: []*schema.Column{CoachEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "coachevent_kind_level", Columns: []*schema.Column{CoachEventsColumns[3], CoachEventsColumns[5]}},
			{Name: "coachevent_problem_hash", Columns: []*schema.Column{CoachEventsColumns[7]}},
		},
	}

	// Tables holds every table migrated by Open.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		CoachEventsTable,
	}
)
