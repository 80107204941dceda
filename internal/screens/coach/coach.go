// Package coach implements the coaching workspace: a difficulty slider, the
// generated challenge, a solution editor and the evaluation results.
package coach

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codecoach/internal/controller"
	"github.com/abhisek/codecoach/internal/router"
	"github.com/abhisek/codecoach/internal/screen"
	"github.com/abhisek/codecoach/internal/ui/components"
	"github.com/abhisek/codecoach/internal/ui/layout"
	"github.com/abhisek/codecoach/internal/ui/theme"
)

const editorPlaceholder = "Write your Python solution here..."

// CoachScreen drives a controller.Controller through an in-memory view and
// renders that view on every frame. Controller calls run as commands so the
// UI keeps animating while a request is in flight.
type CoachScreen struct {
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	service controller.Service
	logger  *slog.Logger

	view *controller.MemoryView
	ctrl *controller.Controller

	slider   components.Slider
	generate components.Button
	evaluate components.Button
	editor   components.Editor
	spinner  spinner.Model
	results  viewport.Model
	alerts   components.AlertQueue

	focus   focusArea
	pending int
}

var (
	_ screen.Screen          = (*CoachScreen)(nil)
	_ screen.KeyHintProvider = (*CoachScreen)(nil)
	_ screen.StatusProvider  = (*CoachScreen)(nil)
	_ screen.Closer          = (*CoachScreen)(nil)
)

// New creates a fresh coaching session. Cancelling ctx aborts in-flight
// requests.
func New(ctx context.Context, service controller.Service, logger *slog.Logger) *CoachScreen {
	if logger == nil {
		logger = slog.Default()
	}
	sctx, cancel := context.WithCancel(ctx)
	view := controller.NewMemoryView()

	s := &CoachScreen{
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		service: service,
		logger:  logger,
		view:    view,
		ctrl:    controller.New(view, service, logger),
		slider:  components.NewSlider("Level", controller.DefaultLevel, controller.MinLevel, controller.MaxLevel, 40),
		editor:  components.NewEditor(editorPlaceholder, 40, 10),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
		results: viewport.New(viewport.WithWidth(40), viewport.WithHeight(10)),
	}
	s.generate = components.NewButton(controller.DefaultGenerateLabel, s.pressGenerate)
	s.evaluate = components.NewButton(controller.DefaultEvaluateLabel, s.pressEvaluate)
	s.setFocus(focusLevel)
	return s
}

func (s *CoachScreen) Init() tea.Cmd {
	return nil
}

func (s *CoachScreen) Title() string {
	return "Coach"
}

// Status shows the selected level in the header.
func (s *CoachScreen) Status() string {
	return "Level " + s.view.Text(controller.RegionLevel)
}

func (s *CoachScreen) KeyHints() []layout.KeyHint {
	if s.alerts.Active() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Dismiss"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Focus"},
		{Key: "←→", Description: "Level"},
		{Key: "Ctrl+G", Description: "Generate"},
		{Key: "Ctrl+S", Description: "Evaluate"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+N", Description: "New"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		if msg.owner != s {
			return s, nil
		}
		s.pending--
		s.alerts.Push(s.view.TakeAlerts()...)
		if msg.action == controller.ButtonGenerate {
			s.results.GotoTop()
		}
		return s, nil

	case spinner.TickMsg:
		if s.pending == 0 {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.alerts.Active() {
			s.alerts.Update(msg)
			return s, nil
		}
		return s.handleKey(msg)
	}

	if s.focus == focusEditor {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CoachScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+g":
		return s, s.pressGenerate()
	case "ctrl+s":
		return s, s.pressEvaluate()
	case "ctrl+n":
		return s, s.restart()
	case "tab":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "pgup":
		s.results.PageUp()
		return s, nil
	case "pgdown":
		s.results.PageDown()
		return s, nil
	}

	s.syncControls()
	var cmd tea.Cmd
	switch s.focus {
	case focusLevel:
		switch msg.String() {
		case "left", "down", "h", "j":
			s.ctrl.SetLevel(s.ctrl.Level() - 1)
		case "right", "up", "l", "k":
			s.ctrl.SetLevel(s.ctrl.Level() + 1)
		case "home":
			s.ctrl.SetLevel(controller.MinLevel)
		case "end":
			s.ctrl.SetLevel(controller.MaxLevel)
		case "enter":
			cmd = s.setFocus(focusGenerate)
		}
	case focusGenerate:
		s.generate, cmd = s.generate.Update(msg)
	case focusEvaluate:
		s.evaluate, cmd = s.evaluate.Update(msg)
	case focusEditor:
		s.editor, cmd = s.editor.Update(msg)
	}
	return s, cmd
}

func (s *CoachScreen) pressGenerate() tea.Cmd {
	if !s.view.Enabled(controller.ButtonGenerate) {
		return nil
	}
	return s.run(controller.ButtonGenerate, func(ctx context.Context) {
		s.ctrl.GenerateProblem(ctx)
	})
}

func (s *CoachScreen) pressEvaluate() tea.Cmd {
	if !s.view.Enabled(controller.ButtonEvaluate) {
		return nil
	}
	solution := s.editor.Value()
	return s.run(controller.ButtonEvaluate, func(ctx context.Context) {
		s.ctrl.EvaluateSolution(ctx, solution)
	})
}

// run disables the button at once and performs fn off the update loop.
func (s *CoachScreen) run(action controller.Region, fn func(context.Context)) tea.Cmd {
	s.view.SetEnabled(action, false)
	s.pending++

	ctx := s.ctx
	task := func() tea.Msg {
		fn(ctx)
		return actionDoneMsg{owner: s, action: action}
	}
	if s.pending == 1 {
		return tea.Batch(task, s.spinner.Tick)
	}
	return task
}

// Close abandons in-flight work. The router calls it when the screen
// leaves the stack.
func (s *CoachScreen) Close() {
	s.cancel()
}

// restart swaps in a fresh session; the router closes this one.
func (s *CoachScreen) restart() tea.Cmd {
	next := New(s.parent, s.service, s.logger)
	s.logger.Info("starting new coaching session")
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *CoachScreen) setFocus(f focusArea) tea.Cmd {
	s.focus = f
	if f == focusEditor {
		return s.editor.Focus()
	}
	s.editor.Blur()
	return nil
}

// syncControls copies controller state into the widgets.
func (s *CoachScreen) syncControls() {
	s.slider.Value = s.ctrl.Level()
	s.slider.Focused = s.focus == focusLevel

	s.generate.Label = s.view.Text(controller.ButtonGenerate)
	s.generate.Enabled = s.view.Enabled(controller.ButtonGenerate)
	s.generate.Focused = s.focus == focusGenerate

	s.evaluate.Label = s.view.Text(controller.ButtonEvaluate)
	s.evaluate.Enabled = s.view.Enabled(controller.ButtonEvaluate)
	s.evaluate.Focused = s.focus == focusEvaluate
}
