package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/embedview/internal/domain/build"
)

// AboutRenderer renders build info.
type AboutRenderer struct {
	theme *Theme
}

// NewAboutRenderer creates a new about renderer with the given theme.
func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

// Render renders build info next to the project name.
func (r *AboutRenderer) Render(info build.Info) string {
	name := lipgloss.NewStyle().
		Foreground(r.theme.Accent).
		Bold(true).
		MarginLeft(2).
		Render("embedview")

	keyStyle := r.theme.Subtle.Width(8)
	valStyle := r.theme.Highlight
	rows := [][2]string{
		{"Version", info.Version},
		{"Commit", info.Commit},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
	}
	lines := make([]string, 0, len(rows)+2)
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(row[0]), valStyle.Render(row[1])))
	}
	lines = append(lines, "", r.theme.Subtle.Render(build.RepoURL()))

	return lipgloss.JoinHorizontal(lipgloss.Top, name, "   ", strings.Join(lines, "\n"))
}
