package coach

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codecoach/internal/controller"
	"github.com/abhisek/codecoach/internal/ui/layout"
	"github.com/abhisek/codecoach/internal/ui/theme"
)

// Rows used by the controls card around the editor: border (2), slider,
// gap, button, gap, heading, gap, button.
const controlsChrome = 9

func (s *CoachScreen) View(width, height int) string {
	s.syncControls()

	if s.alerts.Active() {
		return s.alerts.View(width, height)
	}
	if layout.IsCompactWidth(width) {
		return s.renderCompact(width, height)
	}
	return s.renderWide(width, height)
}

func (s *CoachScreen) renderWide(width, height int) string {
	leftW := width * 2 / 5
	rightW := width - leftW - 1

	controls := s.renderControls(leftW-4, max(height-controlsChrome, 3))
	results := s.renderResultsPane(rightW-4, max(height-2, 3))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Card.Render(controls),
		" ",
		theme.Card.Render(results),
	)
}

func (s *CoachScreen) renderCompact(width, height int) string {
	const editorHeight = 4
	controls := theme.Card.Render(s.renderControls(width-4, editorHeight))
	resultsHeight := max(height-lipgloss.Height(controls)-2, 3)
	results := theme.Card.Render(s.renderResultsPane(width-4, resultsHeight))
	return lipgloss.JoinVertical(lipgloss.Left, controls, results)
}

func (s *CoachScreen) renderControls(width, editorHeight int) string {
	s.slider.Width = width
	s.editor.SetSize(width, editorHeight)

	heading := theme.Section
	if s.focus == focusEditor {
		heading = theme.Selected
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.slider.View(),
		"",
		s.generate.View(),
		"",
		heading.Render("Your Solution"),
		s.editor.View(),
		"",
		s.evaluate.View(),
	)
	return lipgloss.NewStyle().Width(width).Render(content)
}

func (s *CoachScreen) renderResultsPane(width, height int) string {
	s.results.SetWidth(width)
	s.results.SetHeight(height)
	s.results.SetContent(s.renderResults(width))
	return s.results.View()
}

// renderResults draws the challenge and evaluation panels as plain text.
func (s *CoachScreen) renderResults(width int) string {
	showChallenge := s.view.Visible(controller.RegionChallenge)
	showEvaluation := s.view.Visible(controller.RegionEvaluation)
	if !showChallenge && !showEvaluation {
		return theme.Hint.Width(width).Render(
			"Pick a level and press Generate Problem (Ctrl+G) to get a Python challenge.")
	}

	var parts []string
	if showChallenge {
		parts = append(parts, theme.Section.Render("Challenge"))
		switch {
		case s.view.Visible(controller.RegionProblemLoader):
			parts = append(parts, s.spinner.View()+" Generating your problem...")
		case s.view.Visible(controller.RegionProblemContent):
			parts = append(parts, s.renderProblem(width))
		}
	}
	if showEvaluation {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, theme.Section.Render("Evaluation"))
		switch {
		case s.view.Visible(controller.RegionEvaluationLoader):
			parts = append(parts, s.spinner.View()+" Evaluating your solution...")
		case s.view.Visible(controller.RegionEvaluationContent):
			parts = append(parts, s.renderEvaluation(width))
		}
	}
	return strings.Join(parts, "\n")
}

func (s *CoachScreen) renderProblem(width int) string {
	var parts []string
	if title := s.view.Text(controller.RegionProblemTitle); title != "" {
		parts = append(parts, theme.Title.Width(width).Render(title))
	}
	if desc := s.view.Text(controller.RegionProblemDescription); desc != "" {
		parts = append(parts, theme.Body.Width(width).Render(desc))
	}
	if examples := s.view.Text(controller.RegionProblemExamples); examples != "" {
		parts = append(parts, "", theme.Subtitle.Render("Examples"), theme.Code.Width(width).Render(examples))
	}
	return strings.Join(parts, "\n")
}

func (s *CoachScreen) renderEvaluation(width int) string {
	parts := []string{
		theme.Body.Render("Score: ") + theme.Score.Render(s.view.Text(controller.RegionScore)),
	}

	if tips := s.view.ListItems(controller.RegionTips); len(tips) > 0 {
		parts = append(parts, "", theme.Subtitle.Render("Tips"))
		bullet := lipgloss.NewStyle().Foreground(theme.Accent).Render("• ")
		for _, tip := range tips {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, bullet, theme.Body.Width(width-2).Render(tip)))
		}
	}

	if code := s.view.Text(controller.RegionSuggestedCode); code != "" {
		parts = append(parts, "", theme.Subtitle.Render("Suggested Version"), theme.Code.Width(width).Render(code))
	}
	return strings.Join(parts, "\n")
}
