package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	colID, colSequence, colCreatedAt, "provider", "model", "purpose", colRequestID,
	"input_tokens", "output_tokens", colLatencyMs, colSuccess, colErrorMsg,
	"request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(llmEventsTable).
		Columns(llmEventColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose, data.RequestID,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
			data.RequestBody, data.ResponseBody,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		OrderBy(entsql.Desc(colSequence))
	applyOpts(sel, opts)
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}

	var events []LLMRequestEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ(colID, id))

	var found *LLMRequestEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"purpose",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
			entsql.Avg(colLatencyMs),
		).
		From(entsql.Table(llmEventsTable)).
		GroupBy("purpose").
		OrderBy("purpose")

	var out []LLMPurposeUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			u   LLMPurposeUsage
			avg entsql.NullFloat64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return err
		}
		u.AvgLatencyMs = int64(avg.Float64)
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("LLM usage by purpose: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"model",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
		).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ(colSuccess, true)).
		GroupBy("model").
		OrderBy("model")

	var out []LLMModelUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return err
		}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("LLM usage by model: %w", err)
	}
	return out, nil
}

func scanLLMEvent(rows *entsql.Rows) (LLMRequestEvent, error) {
	var (
		e       LLMRequestEvent
		created int64
	)
	err := rows.Scan(
		&e.ID, &e.Sequence, &created, &e.Provider, &e.Model, &e.Purpose, &e.RequestID,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody,
	)
	e.Timestamp = time.UnixMilli(created).UTC()
	return e, err
}

// query runs sel and calls scan once per row.
func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// applyOpts adds the shared filters and pagination of opts to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colCreatedAt, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colCreatedAt, opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
