package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/codecoach/internal/evaluator"
	"github.com/abhisek/codecoach/internal/llm"
	"github.com/abhisek/codecoach/internal/problemgen"
	"github.com/abhisek/codecoach/internal/store"
)

// Messages returned to the browser and terminal clients.
const (
	MsgNotConfigured   = "Generative AI model not configured."
	MsgMalformedReview = "Failed to parse the evaluation from the AI. Please try again."
)

type generateRequest struct {
	Level problemgen.Level `json:"level"`
}

type generateResponse struct {
	ProblemText string `json:"problem_text"`
}

type evaluateRequest struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleGenerateProblem(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		Error(w, http.StatusInternalServerError, MsgNotConfigured)
		return
	}

	req := generateRequest{Level: problemgen.DefaultLevel}
	if err := s.decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := s.llmContext(r)
	start := time.Now()
	text, err := s.generator.Generate(ctx, req.Level)

	event := store.CoachEventData{
		Kind:      store.CoachKindGenerate,
		RequestID: middleware.GetReqID(ctx),
		Level:     int(req.Level),
		Success:   err == nil,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		event.ErrorMessage = err.Error()
		s.record(ctx, event)
		s.logger.ErrorContext(ctx, "problem generation failed", "level", int(req.Level), "error", err)
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	event.ProblemHash = store.HashProblem(text)
	s.record(ctx, event)

	JSON(w, http.StatusOK, generateResponse{ProblemText: text})
}

func (s *Server) handleEvaluateSolution(w http.ResponseWriter, r *http.Request) {
	if s.evaluator == nil {
		Error(w, http.StatusInternalServerError, MsgNotConfigured)
		return
	}

	var req evaluateRequest
	if err := s.decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := s.llmContext(r)
	start := time.Now()
	ev, err := s.evaluator.Evaluate(ctx, req.Problem, req.Solution)

	event := store.CoachEventData{
		Kind:        store.CoachKindEvaluate,
		RequestID:   middleware.GetReqID(ctx),
		ProblemHash: store.HashProblem(req.Problem),
		Success:     err == nil,
		LatencyMs:   time.Since(start).Milliseconds(),
	}
	if err != nil {
		event.ErrorMessage = err.Error()
		s.record(ctx, event)
		s.logger.ErrorContext(ctx, "solution evaluation failed", "error", err)
		if errors.Is(err, evaluator.ErrMalformedEvaluation) {
			Error(w, http.StatusInternalServerError, MsgMalformedReview)
			return
		}
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	event.Score = ev.ScoreString()
	s.record(ctx, event)

	JSON(w, http.StatusOK, ev)
}

// decode reads a JSON body into v. An empty body leaves v unchanged.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if s.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) llmContext(r *http.Request) context.Context {
	ctx := r.Context()
	return llm.WithRequestID(ctx, middleware.GetReqID(ctx))
}

// record stores a coaching event. Failures are logged and never reach the
// client.
func (s *Server) record(ctx context.Context, event store.CoachEventData) {
	if s.events == nil || !s.config.RecordEvents {
		return
	}
	if err := s.events.AppendCoachEvent(context.WithoutCancel(ctx), event); err != nil {
		s.logger.WarnContext(ctx, "failed to record coach event", "kind", event.Kind, "error", err)
	}
}
