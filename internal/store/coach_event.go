package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var coachEventColumns = []string{
	colID, colSequence, colCreatedAt, "kind", colRequestID, "level", "score",
	"problem_hash", colSuccess, colErrorMsg, colLatencyMs,
}

// HashProblem returns the ProblemHash of a problem text.
func HashProblem(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (r *eventRepo) AppendCoachEvent(ctx context.Context, data CoachEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(coachEventsTable).
		Columns(coachEventColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), data.Kind, data.RequestID, data.Level, data.Score,
			data.ProblemHash, data.Success, data.ErrorMessage, data.LatencyMs,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save coach event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryCoachEvents(ctx context.Context, opts QueryOpts) ([]CoachEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(coachEventColumns...).
		From(entsql.Table(coachEventsTable)).
		OrderBy(entsql.Desc(colSequence))
	applyOpts(sel, opts)
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", opts.Kind))
	}

	var events []CoachEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			e       CoachEvent
			created int64
		)
		if err := rows.Scan(
			&e.ID, &e.Sequence, &created, &e.Kind, &e.RequestID, &e.Level, &e.Score,
			&e.ProblemHash, &e.Success, &e.ErrorMessage, &e.LatencyMs,
		); err != nil {
			return err
		}
		e.Timestamp = time.UnixMilli(created).UTC()
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query coach events: %w", err)
	}
	return events, nil
}

// CoachStatsByLevel folds every coaching event into per-level totals. Scores
// are free-form strings on the wire, so only those that parse as numbers
// count towards the average.
func (r *eventRepo) CoachStatsByLevel(ctx context.Context) ([]CoachLevelStats, error) {
	events, err := r.QueryCoachEvents(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	problemLevels := make(map[string]int)
	for _, e := range events {
		if e.Kind == CoachKindGenerate && e.Success && e.ProblemHash != "" {
			problemLevels[e.ProblemHash] = e.Level
		}
	}

	byLevel := make(map[int]*CoachLevelStats)
	var levels []int
	for _, e := range events {
		level := e.Level
		if e.Kind == CoachKindEvaluate && level == 0 {
			level = problemLevels[e.ProblemHash]
		}
		st, ok := byLevel[level]
		if !ok {
			st = &CoachLevelStats{Level: level}
			byLevel[level] = st
			levels = append(levels, level)
		}
		if !e.Success {
			st.Failed++
			continue
		}
		switch e.Kind {
		case CoachKindGenerate:
			st.Generated++
		case CoachKindEvaluate:
			st.Evaluated++
			if score, err := strconv.ParseFloat(e.Score, 64); err == nil {
				st.AvgScore += score
				st.ScoredCount++
			}
		}
	}

	slices.Sort(levels)
	out := make([]CoachLevelStats, 0, len(levels))
	for _, lvl := range levels {
		st := byLevel[lvl]
		if st.ScoredCount > 0 {
			st.AvgScore /= float64(st.ScoredCount)
		}
		out = append(out, *st)
	}
	return out, nil
}
