package coach

import "github.com/abhisek/codecoach/internal/controller"

// actionDoneMsg is sent when a controller action returns. owner lets a
// replaced screen's late results be ignored.
type actionDoneMsg struct {
	owner  *CoachScreen
	action controller.Region
}

type focusArea int

const (
	focusLevel focusArea = iota
	focusGenerate
	focusEditor
	focusEvaluate
	focusCount
)
