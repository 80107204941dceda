package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestStatusError(t *testing.T) {
	base := errors.New("vendor said no")
	tests := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }, "rate limit"},
		{http.StatusUnauthorized, func(err error) bool { var e *ErrRequestRejected; return errors.As(err, &e) && e.StatusCode == 401 }, "rejected"},
		{http.StatusNotFound, func(err error) bool { var e *ErrRequestRejected; return errors.As(err, &e) }, "rejected"},
		{http.StatusRequestTimeout, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }, "unavailable"},
		{http.StatusServiceUnavailable, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }, "unavailable"},
	}
	for _, tt := range tests {
		err := statusError(tt.status, base)
		if !tt.check(err) {
			t.Errorf("status %d: expected %s, got %T", tt.status, tt.name, err)
		}
		if !errors.Is(err, base) {
			t.Errorf("status %d: vendor error not wrapped", tt.status)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{&ErrMaxTokensExceeded{}, false},
		{&ErrRequestRejected{StatusCode: 400, Err: errors.New("bad")}, false},
		{ErrNotConfigured, false},
		{&ErrRateLimit{Err: errors.New("slow down")}, true},
		{&ErrProviderUnavailable{}, true},
		{&ErrInvalidResponse{Err: errors.New("bad json")}, true},
		{errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestMapGeminiError_ValueAPIError(t *testing.T) {
	err := mapGeminiError(fmt.Errorf("generate: %w", genai.APIError{Code: 429, Message: "quota"}))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	err = mapGeminiError(genai.APIError{Code: 403})
	var rej *ErrRequestRejected
	if !errors.As(err, &rej) || rej.StatusCode != 403 {
		t.Fatalf("expected ErrRequestRejected(403), got %T", err)
	}
}

func TestRetry_RejectedNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRequestRejected{StatusCode: 401, Err: errors.New("bad key")}},
		TextResponse("ok"),
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var rej *ErrRequestRejected
	if !errors.As(err, &rej) {
		t.Fatalf("expected ErrRequestRejected, got %T (%v)", err, err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}
