// Package controller holds the coaching UI logic: it reads the difficulty
// level, requests problems and evaluations from the services, and writes the
// results into a View.
package controller

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/codecoach/internal/client"
	"github.com/abhisek/codecoach/internal/problem"
)

// Difficulty bounds of the level slider.
const (
	MinLevel     = 1
	MaxLevel     = 10
	DefaultLevel = 5
)

// Button labels.
const (
	DefaultGenerateLabel = "Generate Problem"
	DefaultEvaluateLabel = "Submit & Evaluate"
	GeneratingLabel      = "Generating..."
	EvaluatingLabel      = "Evaluating..."
)

// User-facing messages.
const (
	GenerateFailedMessage = "Failed to generate a problem. Please check the logs and try again."
	EmptySolutionMessage  = "Please enter your solution code."
)

// Service is the pair of remote services the controller depends on.
type Service interface {
	GenerateProblem(ctx context.Context, level int) (string, error)
	EvaluateSolution(ctx context.Context, problem, solution string) (*client.Evaluation, error)
}

// buttonState remembers a button's label while it shows a busy label.
type buttonState struct {
	loading       bool
	originalLabel string
}

// Controller owns the state shared by the generate and evaluate actions.
// Its methods block until the remote call settles and may be called from
// any goroutine.
type Controller struct {
	view    View
	service Service
	logger  *slog.Logger

	mu          sync.Mutex
	level       int
	problemText string
	buttons     map[Region]*buttonState
	tokens      map[Region]uint64
}

// New creates a Controller at the default level and writes that level into
// the level display.
func New(view View, service Service, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		view:    view,
		service: service,
		logger:  logger,
		buttons: map[Region]*buttonState{
			ButtonGenerate: {},
			ButtonEvaluate: {},
		},
		tokens: make(map[Region]uint64),
	}
	c.SetLevel(DefaultLevel)
	return c
}

// SetLevel stores the difficulty level, clamped to the slider bounds, and
// updates the level display.
func (c *Controller) SetLevel(level int) {
	level = max(MinLevel, min(MaxLevel, level))

	c.mu.Lock()
	c.level = level
	c.mu.Unlock()

	c.view.SetText(RegionLevel, strconv.Itoa(level))
}

// Level returns the current difficulty level.
func (c *Controller) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// ProblemText returns the text of the last successfully generated problem.
func (c *Controller) ProblemText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.problemText
}

// GenerateProblem requests a problem at the current level and renders it.
// Failures are logged and replace the description with a fixed message.
func (c *Controller) GenerateProblem(ctx context.Context) {
	level := c.Level()
	token := c.begin(ButtonGenerate, GeneratingLabel)

	c.view.SetVisible(RegionChallenge, true)
	c.view.SetVisible(RegionProblemContent, false)
	c.view.SetVisible(RegionProblemLoader, true)
	c.view.SetVisible(RegionEvaluation, false)

	text, err := c.service.GenerateProblem(ctx, level)

	if !c.isLatest(ButtonGenerate, token) {
		c.logger.Debug("discarding stale problem response", "level", level, "error", err)
		return
	}
	defer func() {
		c.end(ButtonGenerate)
		c.view.SetVisible(RegionProblemLoader, false)
		c.view.SetVisible(RegionProblemContent, true)
	}()

	if err != nil {
		c.logger.Error("error generating problem", "level", level, "error", err)
		c.view.SetText(RegionProblemDescription, GenerateFailedMessage)
		return
	}

	c.mu.Lock()
	c.problemText = text
	c.mu.Unlock()

	c.displayProblem(problem.Parse(text))
}

// EvaluateSolution sends the current problem and the learner's solution for
// scoring and renders the result. A blank solution raises an alert without
// contacting the service; any failure is surfaced through an alert.
func (c *Controller) EvaluateSolution(ctx context.Context, solution string) {
	if strings.TrimSpace(solution) == "" {
		c.view.Alert(EmptySolutionMessage)
		c.restore(ButtonEvaluate)
		return
	}

	token := c.begin(ButtonEvaluate, EvaluatingLabel)

	c.view.SetVisible(RegionEvaluation, true)
	c.view.SetVisible(RegionEvaluationContent, false)
	c.view.SetVisible(RegionEvaluationLoader, true)

	eval, err := c.service.EvaluateSolution(ctx, c.ProblemText(), solution)

	if !c.isLatest(ButtonEvaluate, token) {
		c.logger.Debug("discarding stale evaluation response", "error", err)
		return
	}
	defer func() {
		c.end(ButtonEvaluate)
		c.view.SetVisible(RegionEvaluationLoader, false)
		c.view.SetVisible(RegionEvaluationContent, true)
	}()

	if err != nil {
		c.logger.Error("error evaluating solution", "error", err)
		c.view.Alert(err.Error())
		return
	}

	c.displayEvaluation(eval)
}

func (c *Controller) displayProblem(p problem.Problem) {
	c.view.SetText(RegionProblemTitle, p.Title)
	c.view.SetText(RegionProblemDescription, p.Description)
	c.view.SetText(RegionProblemExamples, p.Examples)
}

func (c *Controller) displayEvaluation(e *client.Evaluation) {
	c.view.SetText(RegionScore, e.Score.String())
	c.view.SetListItems(RegionTips, e.Tips)
	c.view.SetText(RegionSuggestedCode, e.SuggestedVersion)
}

// begin puts a button into its loading state and returns the token that
// identifies this invocation.
func (c *Controller) begin(button Region, busyLabel string) uint64 {
	c.mu.Lock()
	st := c.buttons[button]
	if !st.loading {
		st.originalLabel = c.view.Text(button)
		st.loading = true
	}
	c.tokens[button]++
	token := c.tokens[button]
	c.mu.Unlock()

	c.view.SetEnabled(button, false)
	c.view.SetText(button, busyLabel)
	return token
}

func (c *Controller) isLatest(button Region, token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens[button] == token
}

// end restores the button after the latest invocation settled.
func (c *Controller) end(button Region) {
	c.mu.Lock()
	st := c.buttons[button]
	label := st.originalLabel
	if label == "" {
		label = defaultLabel(button)
	}
	st.loading = false
	st.originalLabel = ""
	c.mu.Unlock()

	c.view.SetEnabled(button, true)
	c.view.SetText(button, label)
}

// restore re-enables an idle button. A button that is still waiting on an
// earlier request is left to that request.
func (c *Controller) restore(button Region) {
	c.mu.Lock()
	loading := c.buttons[button].loading
	c.mu.Unlock()
	if loading {
		return
	}
	c.view.SetEnabled(button, true)
}

func defaultLabel(button Region) string {
	if button == ButtonEvaluate {
		return DefaultEvaluateLabel
	}
	return DefaultGenerateLabel
}
