package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/embedview/internal/domain/entity"
)

// PageRenderer renders navigation state and script results.
type PageRenderer struct {
	theme *Theme
}

// NewPageRenderer creates a page renderer with the given theme.
func NewPageRenderer(theme *Theme) *PageRenderer {
	return &PageRenderer{theme: theme}
}

// PhaseBadge renders a colored load phase.
func (r *PageRenderer) PhaseBadge(phase entity.NavigationPhase) string {
	switch phase {
	case entity.PhaseLoaded:
		return r.theme.Badge.Render(phase.String())
	case entity.PhaseFailed:
		return r.theme.StatusBadge(phase.String(), r.theme.Background, r.theme.Error)
	case entity.PhaseLoading:
		return r.theme.StatusBadge(phase.String(), r.theme.Background, r.theme.Warning)
	default:
		return r.theme.BadgeMuted.Render(phase.String())
	}
}

// RenderState renders the committed document, the last error and history.
func (r *PageRenderer) RenderState(state entity.NavigationState) string {
	var b strings.Builder

	title := state.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "%s %s\n", r.PhaseBadge(state.Phase), r.theme.Title.Render(title))
	if state.URL != "" {
		fmt.Fprintf(&b, "%s\n", r.theme.Subtle.Render(state.URL))
	}
	if state.LastError != nil {
		fmt.Fprintf(&b, "%s\n", r.theme.ErrorStyle.Render(state.LastError.Error()))
	}

	if len(state.History) > 0 {
		b.WriteString("\n")
		b.WriteString(r.theme.Subtitle.Render("History"))
		b.WriteString("\n")
		for i, entry := range state.History {
			label := entry.URL
			if entry.Title != "" {
				label = fmt.Sprintf("%s  %s", entry.Title, r.theme.Subtle.Render(entry.URL))
			}
			if i == state.Cursor {
				fmt.Fprintf(&b, "%s\n", r.theme.ListItemSelected.Render("> "+label))
				continue
			}
			fmt.Fprintf(&b, "%s\n", r.theme.ListItem.Render("  "+label))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderResult renders a script completion.
func (r *PageRenderer) RenderResult(result string, err error) string {
	if err != nil {
		return r.RenderError(err)
	}
	if result == "" {
		return r.theme.Subtle.Render("undefined")
	}
	return r.theme.Normal.Render(result)
}

// RenderError renders an error line.
func (r *PageRenderer) RenderError(err error) string {
	return r.theme.ErrorStyle.Render("✗ " + err.Error())
}
