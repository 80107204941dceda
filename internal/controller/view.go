package controller

import (
	"slices"
	"sync"
)

// Region names a display area the controller writes to.
type Region string

const (
	RegionLevel Region = "level-display"

	ButtonGenerate Region = "generate-btn"
	ButtonEvaluate Region = "evaluate-btn"

	RegionChallenge          Region = "challenge-area"
	RegionProblemLoader      Region = "problem-loader"
	RegionProblemContent     Region = "problem-content"
	RegionProblemTitle       Region = "problem-title"
	RegionProblemDescription Region = "problem-description"
	RegionProblemExamples    Region = "problem-examples"

	RegionEvaluation        Region = "evaluation-display"
	RegionEvaluationLoader  Region = "evaluation-loader"
	RegionEvaluationContent Region = "evaluation-content"
	RegionScore             Region = "evaluation-score"
	RegionTips              Region = "evaluation-tips"
	RegionSuggestedCode     Region = "suggested-code"
)

// View is the rendering surface the controller drives. Implementations must
// treat every value as plain text.
type View interface {
	SetText(r Region, value string)
	SetVisible(r Region, visible bool)
	SetListItems(r Region, items []string)
	SetEnabled(r Region, enabled bool)

	// Text returns the current text of a region (a button's label).
	Text(r Region) string

	// Alert shows a blocking message to the learner.
	Alert(message string)
}

// MemoryView is a View that keeps every region in memory. It is safe for
// concurrent use, so a renderer may read it while a request is in flight.
type MemoryView struct {
	mu       sync.Mutex
	text     map[Region]string
	visible  map[Region]bool
	items    map[Region][]string
	disabled map[Region]bool
	alerts   []string
}

var _ View = (*MemoryView)(nil)

// NewMemoryView creates a MemoryView in the initial page state: button
// labels set, the challenge and evaluation panels and both loaders hidden.
func NewMemoryView() *MemoryView {
	v := &MemoryView{
		text:     make(map[Region]string),
		visible:  make(map[Region]bool),
		items:    make(map[Region][]string),
		disabled: make(map[Region]bool),
	}
	v.text[ButtonGenerate] = DefaultGenerateLabel
	v.text[ButtonEvaluate] = DefaultEvaluateLabel
	for _, r := range []Region{RegionChallenge, RegionProblemLoader, RegionEvaluation, RegionEvaluationLoader} {
		v.visible[r] = false
	}
	return v
}

func (v *MemoryView) SetText(r Region, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text[r] = value
}

func (v *MemoryView) SetVisible(r Region, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible[r] = visible
}

func (v *MemoryView) SetListItems(r Region, items []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items[r] = slices.Clone(items)
}

func (v *MemoryView) SetEnabled(r Region, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disabled[r] = !enabled
}

func (v *MemoryView) Text(r Region) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text[r]
}

func (v *MemoryView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

// Visible reports whether a region is shown. Regions never hidden count as
// visible.
func (v *MemoryView) Visible(r Region) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	shown, ok := v.visible[r]
	return !ok || shown
}

// Enabled reports whether a control accepts input.
func (v *MemoryView) Enabled(r Region) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.disabled[r]
}

// ListItems returns a copy of a list region's items.
func (v *MemoryView) ListItems(r Region) []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.items[r])
}

// Alerts returns every alert raised so far.
func (v *MemoryView) Alerts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.alerts)
}

// TakeAlerts returns and clears pending alerts.
func (v *MemoryView) TakeAlerts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.alerts
	v.alerts = nil
	return out
}
