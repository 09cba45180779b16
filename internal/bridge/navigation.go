package bridge

import (
	"context"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
)

const blankURL = "about:blank"

type navKind int

const (
	navFresh navKind = iota
	navHistory
	navReload
	navPage
)

func (k navKind) String() string {
	switch k {
	case navFresh:
		return "fresh"
	case navHistory:
		return "history"
	case navReload:
		return "reload"
	case navPage:
		return "page"
	default:
		return "unknown"
	}
}

// inflight is the navigation the navigator currently accepts events for.
type inflight struct {
	gen   port.Generation
	kind  navKind
	url   string
	index  int
	html   string
	inline bool
}

// Navigator is the main-frame navigation state machine of one host.
//
// Every host-issued command takes a new generation; engine events carrying
// any other generation are stale and dropped. Generation 0 events describe
// page-initiated navigations and are only accepted while the host has no
// navigation of its own in flight.
type Navigator struct {
	host    *Host
	state   entity.NavigationState
	gen     port.Generation
	pending *inflight
}

func newNavigator(h *Host) *Navigator {
	return &Navigator{
		host:  h,
		state: entity.NewNavigationState(),
	}
}

// State returns a copy of the navigation state.
func (n *Navigator) State() entity.NavigationState {
	return n.state.Snapshot()
}

// Phase returns the current load phase.
func (n *Navigator) Phase() entity.NavigationPhase { return n.state.Phase }

// URL returns the committed main-frame URL.
func (n *Navigator) URL() string { return n.state.URL }

// Title returns the committed main-frame title.
func (n *Navigator) Title() string { return n.state.Title }

// LastError returns the error of the last failed navigation, if any.
func (n *Navigator) LastError() *entity.NavigationError { return n.state.LastError }

// CanGoBack reports whether GoBack would navigate.
func (n *Navigator) CanGoBack() bool { return n.state.CanGoBack() }

// CanGoForward reports whether GoForward would navigate.
func (n *Navigator) CanGoForward() bool { return n.state.CanGoForward() }

// Generation returns the latest issued generation.
func (n *Navigator) Generation() port.Generation { return n.gen }

// LoadURL starts a fresh navigation to url.
func (n *Navigator) LoadURL(ctx context.Context, url string) error {
	if !n.host.ready() {
		return ErrBridgeNotReady
	}
	rec := n.begin(navFresh, url, -1, "", false)
	n.issue(ctx, rec)
	return nil
}

// LoadHTML starts a fresh navigation to markup anchored at baseURL.
func (n *Navigator) LoadHTML(ctx context.Context, html, baseURL string) error {
	if !n.host.ready() {
		return ErrBridgeNotReady
	}
	if baseURL == "" {
		baseURL = blankURL
	}
	rec := n.begin(navFresh, baseURL, -1, html, true)
	n.issue(ctx, rec)
	return nil
}

// GoBack moves to the previous history entry. No-op at the oldest entry.
func (n *Navigator) GoBack(ctx context.Context) error {
	if !n.host.ready() {
		return ErrBridgeNotReady
	}
	if !n.state.CanGoBack() {
		return nil
	}
	n.traverse(ctx, n.state.Cursor-1)
	return nil
}

// GoForward moves to the next history entry. No-op at the newest entry.
func (n *Navigator) GoForward(ctx context.Context) error {
	if !n.host.ready() {
		return ErrBridgeNotReady
	}
	if !n.state.CanGoForward() {
		return nil
	}
	n.traverse(ctx, n.state.Cursor+1)
	return nil
}

// Reload re-issues the current entry without touching history.
// No-op when nothing has been committed yet.
func (n *Navigator) Reload(ctx context.Context) error {
	if !n.host.ready() {
		return ErrBridgeNotReady
	}
	entry, ok := n.state.Current()
	if !ok {
		return nil
	}
	rec := n.begin(navReload, entry.URL, n.state.Cursor, entry.Content, entry.Inline)
	n.issue(ctx, rec)
	return nil
}

// Stop cancels the in-flight navigation. Only meaningful while Loading:
// the navigation fails with NavigationCancelled and its trailing events are
// ignored.
func (n *Navigator) Stop(ctx context.Context) error {
	if !n.host.ready() {
		return ErrBridgeNotReady
	}
	if n.state.Phase != entity.PhaseLoading || n.pending == nil {
		return nil
	}

	log := componentLogger(ctx, "navigation")
	if err := n.host.rt.engine.StopLoad(ctx, n.host.id); err != nil {
		log.Warn().Err(err).Msg("engine refused stop")
	}

	rec := n.pending
	n.pending = nil
	n.fail(entity.NavigationCancelled, rec.url, "navigation stopped")
	log.Debug().Uint64("gen", uint64(rec.gen)).Str("url", rec.url).Msg("navigation stopped")
	return nil
}

// traverse loads the entry at index. Cursor, URL and title stay on the
// current entry until the load commits, so a failed traversal leaves them
// untouched.
func (n *Navigator) traverse(ctx context.Context, index int) {
	entry, ok := n.state.Entry(index)
	if !ok {
		return
	}
	rec := n.begin(navHistory, entry.URL, index, entry.Content, entry.Inline)
	n.issue(ctx, rec)
}

// begin records a new host-issued navigation and moves to Loading.
func (n *Navigator) begin(kind navKind, url string, index int, html string, inline bool) *inflight {
	n.gen++
	n.pending = &inflight{gen: n.gen, kind: kind, url: url, index: index, html: html, inline: inline}
	n.state.Phase = entity.PhaseLoading
	n.state.ProvisionalURL = url
	n.state.LastError = nil
	return n.pending
}

func (n *Navigator) issue(ctx context.Context, rec *inflight) {
	engine := n.host.rt.engine
	var err error
	if rec.inline {
		err = engine.LoadHTML(ctx, n.host.id, rec.html, rec.url, rec.gen)
	} else {
		err = engine.LoadURL(ctx, n.host.id, rec.url, rec.gen)
	}

	log := componentLogger(ctx, "navigation")
	if err != nil {
		log.Warn().Err(err).Str("url", rec.url).Msg("engine rejected navigation")
		if n.pending == rec {
			n.pending = nil
			n.fail(entity.NavigationContentError, rec.url, err.Error())
		}
		return
	}
	log.Debug().
		Uint64("browser_id", uint64(n.host.id)).
		Uint64("gen", uint64(rec.gen)).
		Str("kind", rec.kind.String()).
		Str("url", rec.url).
		Msg("navigation issued")
}

func (n *Navigator) fail(kind entity.NavigationErrorKind, url, message string) {
	n.state.Phase = entity.PhaseFailed
	n.state.ProvisionalURL = ""
	n.state.LastError = &entity.NavigationError{Kind: kind, URL: url, Message: message}
}

// accept returns the navigation an event with gen belongs to.
func (n *Navigator) accept(gen port.Generation, url string) (*inflight, bool) {
	if gen == port.PageInitiated {
		if n.pending != nil && n.pending.gen != port.PageInitiated {
			return nil, false
		}
		if n.pending == nil {
			n.pending = &inflight{gen: port.PageInitiated, kind: navPage, url: url, index: -1}
		}
		return n.pending, true
	}
	if n.pending != nil && n.pending.gen == gen {
		return n.pending, true
	}
	return nil, false
}

func (n *Navigator) stale(ctx context.Context, ev port.Event, gen port.Generation) {
	componentLogger(ctx, "navigation").Warn().
		Uint64("browser_id", uint64(n.host.id)).
		Str("event", port.EventName(ev)).
		Uint64("event_gen", uint64(gen)).
		Uint64("current_gen", uint64(n.gen)).
		Msg("discarding stale navigation event")
}

func (n *Navigator) onLoadStart(ctx context.Context, ev port.LoadStart) {
	rec, ok := n.accept(ev.Gen, ev.URL)
	if !ok {
		n.stale(ctx, ev, ev.Gen)
		return
	}
	if ev.URL != "" && (rec.kind == navFresh || rec.kind == navPage) && !rec.inline {
		rec.url = ev.URL
	}
	n.state.Phase = entity.PhaseLoading
	n.state.ProvisionalURL = rec.url
	n.state.LastError = nil
}

func (n *Navigator) onLoadEnd(ctx context.Context, ev port.LoadEnd) {
	rec, ok := n.accept(ev.Gen, ev.URL)
	if !ok {
		n.stale(ctx, ev, ev.Gen)
		return
	}
	n.pending = nil

	url := rec.url
	if ev.URL != "" && rec.kind != navHistory && !rec.inline {
		url = ev.URL
	}

	switch rec.kind {
	case navFresh, navPage:
		entry := entity.NewHistoryEntry(url, ev.Title)
		entry.Content = rec.html
		entry.Inline = rec.inline
		n.state.Push(entry)
	case navHistory:
		if rec.index >= 0 && rec.index < len(n.state.History) {
			n.state.Cursor = rec.index
			n.state.History[rec.index].Title = ev.Title
		}
	case navReload:
		n.state.SetCurrentTitle(ev.Title)
	}

	n.state.URL = url
	n.state.Title = ev.Title
	n.state.Phase = entity.PhaseLoaded
	n.state.ProvisionalURL = ""
	n.state.LastError = nil

	componentLogger(ctx, "navigation").Debug().
		Uint64("browser_id", uint64(n.host.id)).
		Str("kind", rec.kind.String()).
		Str("url", url).
		Int("cursor", n.state.Cursor).
		Int("history", len(n.state.History)).
		Msg("navigation committed")
}

func (n *Navigator) onLoadError(ctx context.Context, ev port.LoadError) {
	rec, ok := n.accept(ev.Gen, ev.URL)
	if !ok {
		n.stale(ctx, ev, ev.Gen)
		return
	}
	n.pending = nil

	url := ev.URL
	if url == "" {
		url = rec.url
	}
	n.fail(ev.Kind, url, ev.Message)

	componentLogger(ctx, "navigation").Debug().
		Uint64("browser_id", uint64(n.host.id)).
		Str("kind", ev.Kind.String()).
		Str("url", url).
		Str("message", ev.Message).
		Msg("navigation failed")
}

func (n *Navigator) onTitleChanged(ctx context.Context, ev port.TitleChanged) {
	if n.pending != nil {
		componentLogger(ctx, "navigation").Debug().
			Str("title", ev.Title).
			Msg("ignoring title change during navigation")
		return
	}
	n.state.Title = ev.Title
	n.state.SetCurrentTitle(ev.Title)
}
