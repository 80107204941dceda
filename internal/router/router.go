package router

import (
	"github.com/abhisek/codecoach/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg asks the router to stack a screen over the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to drop the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg asks the router to swap the active screen for another
// at the same depth.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router keeps a stack of screens. Only the top screen receives messages
// and renders. Screens leaving the stack are closed if they implement
// screen.Closer.
type Router struct {
	stack []screen.Screen
}

// New returns a router whose stack holds only root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push stacks s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the active screen. The root screen is never popped.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := len(r.stack) - 1
	closeScreen(r.stack[top])
	r.stack[top] = nil
	r.stack = r.stack[:top]
	return nil
}

// Replace puts s in place of the active screen and runs its Init. On an
// empty stack s becomes the root.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	if top < 0 {
		r.stack = append(r.stack, s)
		return s.Init()
	}
	if old := r.stack[top]; old != s {
		closeScreen(old)
	}
	r.stack[top] = s
	return s.Init()
}

// Close closes every screen on the stack, top first, and empties it.
func (r *Router) Close() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = nil
}

// Active returns the top screen, or nil once the router is closed.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
