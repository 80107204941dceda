package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, tuned for dark terminals
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
	CodeBg    = lipgloss.Color("#111827") // Near Black
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Section = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Code = lipgloss.NewStyle().
		Foreground(Text).
		Background(CodeBg).
		Padding(0, 1)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	CardFocused = Card.
			BorderForeground(Primary)

	Modal = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 3)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Score = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Alert = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	SliderFilled = lipgloss.NewStyle().
			Background(Secondary)

	SliderEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Text).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Italic(true).
			Padding(0, 2)
)
