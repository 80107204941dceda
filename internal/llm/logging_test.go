package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/codecoach/internal/store"
)

func openLoggingStore(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsEvent(t *testing.T) {
	repo := openLoggingStore(t)
	mock := NewMockProvider(TextResponse("<title>Two Sum</title>"))
	p := WithLogging(mock, "mock", repo, slog.New(slog.DiscardHandler))

	ctx := WithRequestID(WithPurpose(context.Background(), "problem-gen"), "req-42")
	if _, err := p.Generate(ctx, Request{System: "coach", Messages: UserMessage("level 3")}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Provider != "mock" || ev.Purpose != "problem-gen" || ev.RequestID != "req-42" {
		t.Fatalf("unexpected event %+v", ev.LLMRequestEventData)
	}
	if !ev.Success || ev.ResponseBody != "<title>Two Sum</title>" {
		t.Fatalf("unexpected outcome %+v", ev.LLMRequestEventData)
	}
	if !strings.Contains(ev.RequestBody, "[system]\ncoach") || !strings.Contains(ev.RequestBody, "level 3") {
		t.Fatalf("unexpected request body %q", ev.RequestBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := openLoggingStore(t)
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})

	var buf bytes.Buffer
	p := WithLogging(mock, "mock", repo, slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	if err == nil {
		t.Fatal("expected error")
	}

	events, _ := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if len(events) != 1 || events[0].Success {
		t.Fatalf("expected one failed event, got %+v", events)
	}
	if events[0].Purpose != "unknown" {
		t.Fatalf("expected default purpose, got %q", events[0].Purpose)
	}
	if !strings.Contains(events[0].ErrorMessage, "slow down") {
		t.Fatalf("unexpected error message %q", events[0].ErrorMessage)
	}
	if !strings.Contains(buf.String(), "llm request failed") {
		t.Fatalf("expected warning log, got %q", buf.String())
	}
}

func TestLogging_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(TextResponse("ok")), "mock", nil, nil)
	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}
