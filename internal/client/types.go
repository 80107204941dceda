package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GenerateRequest is the body of POST /generate-problem.
type GenerateRequest struct {
	Level int `json:"level"`
}

// GenerateResponse is the success body of POST /generate-problem. A nil
// ProblemText means the field was missing.
type GenerateResponse struct {
	ProblemText *string `json:"problem_text"`
}

// EvaluateRequest is the body of POST /evaluate-solution.
type EvaluateRequest struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}

// Evaluation is the scored feedback returned by the evaluation service.
type Evaluation struct {
	Score            Score    `json:"score"`
	Tips             []string `json:"tips"`
	SuggestedVersion string   `json:"suggested_version"`
}

// ErrorResponse is the body the services send with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Score holds the evaluation score exactly as the service sent it. The
// service may send a JSON number or a JSON string; both are kept verbatim.
type Score string

// UnmarshalJSON accepts a number or a string.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Score(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("score must be a number or a string: %w", err)
	}
	*s = Score(n.String())
	return nil
}

// MarshalJSON writes numeric scores as numbers and anything else as a string.
func (s Score) MarshalJSON() ([]byte, error) {
	if s != "" && json.Valid([]byte(s)) {
		var n json.Number
		if err := json.Unmarshal([]byte(s), &n); err == nil {
			return []byte(s), nil
		}
	}
	return json.Marshal(string(s))
}

func (s Score) String() string { return string(s) }

// evaluationWire mirrors Evaluation with pointers so missing fields can be
// told apart from empty ones.
type evaluationWire struct {
	Score            *Score    `json:"score"`
	Tips             *[]string `json:"tips"`
	SuggestedVersion *string   `json:"suggested_version"`
}

func (w evaluationWire) evaluation() (*Evaluation, error) {
	switch {
	case w.Score == nil:
		return nil, fmt.Errorf("evaluation response is missing %q", "score")
	case w.Tips == nil:
		return nil, fmt.Errorf("evaluation response is missing %q", "tips")
	case w.SuggestedVersion == nil:
		return nil, fmt.Errorf("evaluation response is missing %q", "suggested_version")
	}
	return &Evaluation{
		Score:            *w.Score,
		Tips:             *w.Tips,
		SuggestedVersion: *w.SuggestedVersion,
	}, nil
}
