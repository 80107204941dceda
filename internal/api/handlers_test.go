package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codecoach/internal/client"
	"github.com/abhisek/codecoach/internal/config"
	"github.com/abhisek/codecoach/internal/evaluator"
	"github.com/abhisek/codecoach/internal/llm"
	"github.com/abhisek/codecoach/internal/problemgen"
	"github.com/abhisek/codecoach/internal/prompts"
	"github.com/abhisek/codecoach/internal/store"
)

const twoSum = "<title>Two Sum</title><description>Find two numbers.</description><examples>[2,7,11,15]</examples>"

type fakeGenerator struct {
	text string
	err  error

	mu     sync.Mutex
	levels []problemgen.Level
	reqIDs []string
}

func (f *fakeGenerator) Generate(ctx context.Context, level problemgen.Level) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = append(f.levels, level)
	f.reqIDs = append(f.reqIDs, llm.RequestIDFrom(ctx))
	return f.text, f.err
}

func (f *fakeGenerator) calls() ([]problemgen.Level, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels, f.reqIDs
}

type fakeEvaluator struct {
	ev  *evaluator.Evaluation
	err error

	mu                sync.Mutex
	problem, solution string
}

func (f *fakeEvaluator) Evaluate(_ context.Context, problem, solution string) (*evaluator.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.problem, f.solution = problem, solution
	return f.ev, f.err
}

func (f *fakeEvaluator) received() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.problem, f.solution
}

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Addr:            "127.0.0.1:0",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: time.Second,
		CORSOrigins:     []string{"*"},
		MaxBodyBytes:    1 << 16,
		RecordEvents:    true,
	}
}

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func newTestServer(t *testing.T, gen problemgen.Generator, ev evaluator.Evaluator, events store.EventRepo) *httptest.Server {
	t.Helper()
	srv := NewServer(testConfig(), gen, ev, events, slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]string{"foo": "bar"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"foo":"bar"}`, w.Body.String())
}

func TestGenerateProblem(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		level problemgen.Level
	}{
		{"numeric level", `{"level": 3}`, 3},
		{"string level", `{"level": "9"}`, 9},
		{"missing level", `{}`, problemgen.DefaultLevel},
		{"empty body", ``, problemgen.DefaultLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: twoSum}
			ts := newTestServer(t, gen, nil, nil)

			status, out := post(t, ts, "/generate-problem", tt.body)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, twoSum, out["problem_text"])
			levels, _ := gen.calls()
			require.Len(t, levels, 1)
			assert.Equal(t, tt.level, levels[0])
		})
	}
}

func TestGenerateProblem_InvalidLevel(t *testing.T) {
	for _, body := range []string{`{"level": 0}`, `{"level": "eleven"}`, `{"level": `} {
		gen := &fakeGenerator{text: twoSum}
		ts := newTestServer(t, gen, nil, nil)

		status, out := post(t, ts, "/generate-problem", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.NotEmpty(t, out["error"], body)
		levels, _ := gen.calls()
		assert.Empty(t, levels, body)
	}
}

func TestGenerateProblem_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exhausted")}
	ts := newTestServer(t, gen, nil, nil)

	status, out := post(t, ts, "/generate-problem", `{"level": 2}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "quota exhausted", out["error"])
}

func TestNotConfigured(t *testing.T) {
	ts := newTestServer(t, nil, nil, nil)

	for _, path := range []string{"/generate-problem", "/evaluate-solution"} {
		status, out := post(t, ts, path, `{}`)
		assert.Equal(t, http.StatusInternalServerError, status, path)
		assert.Equal(t, MsgNotConfigured, out["error"], path)
	}
}

func TestEvaluateSolution(t *testing.T) {
	ev := &fakeEvaluator{ev: &evaluator.Evaluation{
		Score:            17,
		Tips:             []string{"Use enumerate.", "Return early."},
		SuggestedVersion: "def f():\n    return 1",
	}}
	ts := newTestServer(t, nil, ev, nil)

	status, out := post(t, ts, "/evaluate-solution", `{"problem": "p", "solution": "s"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(17), out["score"])
	assert.Equal(t, []any{"Use enumerate.", "Return early."}, out["tips"])
	assert.Equal(t, "def f():\n    return 1", out["suggested_version"])
	problem, solution := ev.received()
	assert.Equal(t, "p", problem)
	assert.Equal(t, "s", solution)
}

func TestEvaluateSolution_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"malformed", fmt.Errorf("%w: bad json", evaluator.ErrMalformedEvaluation), MsgMalformedReview},
		{"other", errors.New("upstream timeout"), "upstream timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil, &fakeEvaluator{err: tt.err}, nil)
			status, out := post(t, ts, "/evaluate-solution", `{"problem": "p", "solution": "s"}`)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, tt.want, out["error"])
		})
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, nil, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, &fakeGenerator{text: twoSum}, nil, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/generate-problem", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRecordsCoachEvents(t *testing.T) {
	events := openEvents(t)
	gen := &fakeGenerator{text: twoSum}
	ev := &fakeEvaluator{ev: &evaluator.Evaluation{Score: 12, Tips: []string{"a", "b"}}}
	ts := newTestServer(t, gen, ev, events)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/generate-problem", strings.NewReader(`{"level": 4}`))
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-gen-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, reqIDs := gen.calls()
	assert.Equal(t, []string{"req-gen-1"}, reqIDs)

	status, _ := post(t, ts, "/evaluate-solution", fmt.Sprintf(`{"problem": %q, "solution": "s"}`, twoSum))
	require.Equal(t, http.StatusOK, status)

	got, err := events.QueryCoachEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, store.CoachKindEvaluate, got[0].Kind)
	assert.Equal(t, "12", got[0].Score)
	assert.Equal(t, store.CoachKindGenerate, got[1].Kind)
	assert.Equal(t, 4, got[1].Level)
	assert.Equal(t, "req-gen-1", got[1].RequestID)
	assert.Equal(t, got[1].ProblemHash, got[0].ProblemHash)

	stats, err := events.CoachStatsByLevel(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 4, stats[0].Level)
	assert.Equal(t, 1, stats[0].Generated)
	assert.Equal(t, 1, stats[0].Evaluated)
	assert.InDelta(t, 12.0, stats[0].AvgScore, 0.001)
}

func TestRecordEventsDisabled(t *testing.T) {
	events := openEvents(t)
	cfg := testConfig()
	cfg.RecordEvents = false
	srv := NewServer(cfg, &fakeGenerator{text: twoSum}, nil, events, slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	status, _ := post(t, ts, "/generate-problem", `{"level": 1}`)
	require.Equal(t, http.StatusOK, status)

	got, err := events.QueryCoachEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestClientRoundTrip drives the real services through the HTTP client used
// by the terminal UI.
func TestClientRoundTrip(t *testing.T) {
	p, err := prompts.Default()
	require.NoError(t, err)

	mock := llm.NewMockProvider(
		llm.TextResponse(twoSum),
		llm.JSONResponse(`{"score": 18, "tips": ["Good names.", "Add tests."], "suggested_version": "print(1)"}`),
	)
	gen := problemgen.New(mock, p, problemgen.DefaultConfig())
	ev := evaluator.New(mock, p, evaluator.DefaultConfig())
	ts := newTestServer(t, gen, ev, nil)

	c := client.New(ts.URL)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	text, err := c.GenerateProblem(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, twoSum, text)

	got, err := c.EvaluateSolution(ctx, text, "print(1)")
	require.NoError(t, err)
	assert.Equal(t, "18", got.Score.String())
	assert.Equal(t, []string{"Good names.", "Add tests."}, got.Tips)
	assert.Equal(t, "print(1)", got.SuggestedVersion)
}

func TestClientSeesMalformedMessage(t *testing.T) {
	p, err := prompts.Default()
	require.NoError(t, err)

	cfg := evaluator.DefaultConfig()
	ev := evaluator.New(llm.NewMockProvider(llm.TextResponse("Nice work!")), p, cfg)
	ts := newTestServer(t, nil, ev, nil)

	_, err = client.New(ts.URL).EvaluateSolution(context.Background(), "p", "s")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, MsgMalformedReview, apiErr.Message)
}
