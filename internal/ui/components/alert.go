package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codecoach/internal/ui/theme"
)

// AlertQueue shows blocking messages one at a time. While a message is
// showing the owner should route key presses to the queue.
type AlertQueue struct {
	messages []string
}

// Push appends messages to the queue.
func (q *AlertQueue) Push(messages ...string) {
	q.messages = append(q.messages, messages...)
}

// Active reports whether a message is waiting to be dismissed.
func (q AlertQueue) Active() bool {
	return len(q.messages) > 0
}

// Current returns the message on screen, or "".
func (q AlertQueue) Current() string {
	if len(q.messages) == 0 {
		return ""
	}
	return q.messages[0]
}

// Len returns the number of queued messages.
func (q AlertQueue) Len() int {
	return len(q.messages)
}

// Update dismisses the current message on enter, space or esc. It reports
// whether the key was consumed.
func (q *AlertQueue) Update(msg tea.Msg) bool {
	if !q.Active() {
		return false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch kmsg.String() {
	case "enter", "space", "esc":
		q.messages = q.messages[1:]
	}
	return true
}

// View renders the current message as a centered modal.
func (q AlertQueue) View(width, height int) string {
	if !q.Active() {
		return ""
	}
	boxWidth := min(60, max(width-10, 20))
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Alert.Render("Notice"),
		"",
		theme.Body.Width(boxWidth).Render(q.Current()),
		"",
		theme.Hint.Render("Press Enter to dismiss"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Modal.Render(body))
}
