package entity

import "fmt"

// NavigationPhase is the load phase of a browser's main frame.
type NavigationPhase int

const (
	PhaseIdle NavigationPhase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p NavigationPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NavigationErrorKind classifies a failed navigation.
type NavigationErrorKind int

const (
	NavigationCancelled NavigationErrorKind = iota + 1
	NavigationNetworkFailure
	NavigationContentError
)

func (k NavigationErrorKind) String() string {
	switch k {
	case NavigationCancelled:
		return "cancelled"
	case NavigationNetworkFailure:
		return "network_failure"
	case NavigationContentError:
		return "content_error"
	default:
		return "unknown"
	}
}

// NavigationError is recorded in NavigationState when a load fails.
// It is observed through state, never returned from navigation commands.
type NavigationError struct {
	Kind    NavigationErrorKind
	URL     string
	Message string
}

func (e *NavigationError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("navigation %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("navigation %s (%s): %s", e.Kind, e.URL, e.Message)
}

// NavigationState tracks the main frame of one browser.
//
// URL and Title are the committed document; they only change when a load
// finishes, so a failed navigation keeps the previous values queryable.
// Cursor is -1 while History is empty and otherwise indexes History.
type NavigationState struct {
	Phase          NavigationPhase
	URL            string
	Title          string
	ProvisionalURL string
	History        []HistoryEntry
	Cursor         int
	LastError      *NavigationError
}

// NewNavigationState returns an idle state with empty history.
func NewNavigationState() NavigationState {
	return NavigationState{Phase: PhaseIdle, Cursor: -1}
}

// CanGoBack reports whether an older history entry exists.
func (s *NavigationState) CanGoBack() bool {
	return s.Cursor > 0
}

// CanGoForward reports whether a newer history entry exists.
func (s *NavigationState) CanGoForward() bool {
	return s.Cursor >= 0 && s.Cursor < len(s.History)-1
}

// Current returns the entry at the cursor.
func (s *NavigationState) Current() (HistoryEntry, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return HistoryEntry{}, false
	}
	return s.History[s.Cursor], true
}

// Entry returns the history entry at index.
func (s *NavigationState) Entry(index int) (HistoryEntry, bool) {
	if index < 0 || index >= len(s.History) {
		return HistoryEntry{}, false
	}
	return s.History[index], true
}

// Push appends entry after the cursor, dropping any forward history.
func (s *NavigationState) Push(entry HistoryEntry) {
	s.History = append(s.History[:s.Cursor+1], entry)
	s.Cursor = len(s.History) - 1
}

// SetCurrentTitle updates the title of the entry at the cursor.
func (s *NavigationState) SetCurrentTitle(title string) {
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return
	}
	s.History[s.Cursor].Title = title
}

// Snapshot returns a copy that shares no memory with s.
func (s *NavigationState) Snapshot() NavigationState {
	out := *s
	out.History = append([]HistoryEntry(nil), s.History...)
	if s.LastError != nil {
		errCopy := *s.LastError
		out.LastError = &errCopy
	}
	return out
}
