package entity

import "time"

// HistoryEntry is one committed document in a browser's session history.
type HistoryEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	// Content holds the markup for documents loaded from a string, so that
	// history navigation and reload can re-issue them without a network fetch.
	Content string `json:"-"`
	// Inline marks entries loaded from a string, including empty markup.
	Inline    bool      `json:"-"`
	VisitedAt time.Time `json:"visited_at"`
}

// NewHistoryEntry creates a new history entry for a URL.
func NewHistoryEntry(url, title string) HistoryEntry {
	return HistoryEntry{
		URL:       url,
		Title:     title,
		VisitedAt: time.Now(),
	}
}

// IsDocument reports whether the entry was loaded from raw markup.
func (h HistoryEntry) IsDocument() bool {
	return h.Inline
}
