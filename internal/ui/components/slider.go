package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codecoach/internal/ui/theme"
)

// Slider displays an integer value on a horizontal bar.
type Slider struct {
	Label   string
	Value   int
	Min     int
	Max     int
	Width   int
	Focused bool
}

// NewSlider creates a new slider.
func NewSlider(label string, value, lo, hi, width int) Slider {
	return Slider{
		Label: label,
		Value: value,
		Min:   lo,
		Max:   hi,
		Width: width,
	}
}

// Fraction returns how far Value is between Min and Max, from 0 to 1.
func (s Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 1
	}
	f := float64(s.Value-s.Min) / float64(s.Max-s.Min)
	return min(max(f, 0), 1)
}

// View renders the slider.
func (s Slider) View() string {
	var result string

	if s.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.Focused {
			style = theme.Selected
		}
		result += style.Render(s.Label) + "  "
	}

	valueText := fmt.Sprintf("  %d/%d", s.Value, s.Max)
	if s.Focused {
		valueText += "  ←/→"
	}

	barWidth := max(s.Width-lipgloss.Width(result)-lipgloss.Width(valueText), 4)

	// The first cell is always filled so the minimum still reads as a value.
	filled := 1 + int(float64(barWidth-1)*s.Fraction())
	filled = min(max(filled, 0), barWidth)
	empty := barWidth - filled

	result += theme.SliderFilled.Render(strings.Repeat(" ", filled))
	result += theme.SliderEmpty.Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(valueText)

	return result
}
