package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codecoach/internal/ui/theme"
)

// Button is a styled button component. A disabled button ignores presses.
type Button struct {
	Label   string
	Focused bool
	Enabled bool
	OnPress func() tea.Cmd
}

// NewButton creates a new enabled button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Enabled: true,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || !b.Enabled {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	switch {
	case !b.Enabled:
		return theme.ButtonDisabled.Render("  " + b.Label + " ")
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label + " ")
	default:
		return theme.ButtonInactive.Render("  " + b.Label + " ")
	}
}
