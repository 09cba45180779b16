// Package styles provides reusable lipgloss-based output components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of base colors a Theme derives its styles from.
type Palette struct {
	Background string
	Raised     string
	Text       string
	Muted      string
	Accent     string
	Border     string
	Error      string
	Warning    string
}

// Theme holds lipgloss colors and styles.
type Theme struct {
	Background lipgloss.Color
	Raised     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Subtle     lipgloss.Style
	Highlight  lipgloss.Style
	ErrorStyle lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	BoxHeader lipgloss.Style
}

// DefaultDarkPalette returns the built-in dark colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Background: "#0d1117",
		Raised:     "#21262d",
		Text:       "#e6edf3",
		Muted:      "#8b949e",
		Accent:     "#58a6ff",
		Border:     "#30363d",
		Error:      "#f85149",
		Warning:    "#d29922",
	}
}

// NewTheme creates the default dark theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background: lipgloss.Color(p.Background),
		Raised:     lipgloss.Color(p.Raised),
		Text:       lipgloss.Color(p.Text),
		Muted:      lipgloss.Color(p.Muted),
		Accent:     lipgloss.Color(p.Accent),
		Border:     lipgloss.Color(p.Border),
		Error:      lipgloss.Color(p.Error),
		Warning:    lipgloss.Color(p.Warning),
	}
	t.buildStyles()
	return t
}

func (t *Theme) buildStyles() {
	base := lipgloss.NewStyle()

	t.Title = base.Foreground(t.Text).Bold(true)
	t.Subtitle = base.Foreground(t.Muted).Bold(true)
	t.Normal = base.Foreground(t.Text)
	t.Subtle = base.Foreground(t.Muted)
	t.Highlight = base.Foreground(t.Accent).Bold(true)
	t.ErrorStyle = base.Foreground(t.Error)

	t.ListItem = base.Foreground(t.Text).PaddingLeft(2)
	t.ListItemSelected = t.ListItem.Foreground(t.Accent).Bold(true)

	t.Badge = base.
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)
	t.BadgeMuted = t.Badge.
		Foreground(t.Text).
		Background(t.Raised)

	t.Input = base.
		Foreground(t.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(t.Accent)

	t.HelpKey = base.Foreground(t.Accent)
	t.HelpDesc = base.Foreground(t.Muted)

	t.BoxHeader = base.
		Foreground(t.Text).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border).
		MarginBottom(1)
}

// StatusBadge renders a badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	return t.Badge.Foreground(fg).Background(bg).Render(text)
}
