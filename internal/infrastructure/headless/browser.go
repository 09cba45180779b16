package headless

import (
	"context"
	"html"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/logging"
)

const (
	commandQueueSize = 128
	lineHeight       = 18
)

// browser owns one main frame. Commands run in order on its worker.
type browser struct {
	id     port.BrowserID
	engine *Engine
	log    zerolog.Logger

	cmds   chan func()
	done   chan struct{}
	exited chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once

	mu         sync.Mutex
	cancelLoad context.CancelFunc
	realm      *realm
	// Latest page-initiated target, followed once the running command returns.
	pendingPage string

	// Worker-owned.
	geometry entity.Geometry
}

func newBrowser(id port.BrowserID, e *Engine, geom entity.Geometry) (*browser, error) {
	ctx := logging.WithBrowserID(logging.WithContext(context.Background(), e.log), uint64(id))
	log := *logging.FromContext(ctx)
	blank, err := newRealm(blankURL, "", log)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	return &browser{
		id:       id,
		engine:   e,
		log:      log,
		cmds:     make(chan func(), commandQueueSize),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		realm:    blank,
		geometry: geom,
	}, nil
}

func (b *browser) run() {
	defer close(b.exited)
	for {
		select {
		case <-b.done:
			b.emit(port.BrowserClosed{Browser: b.id})
			b.log.Debug().Msg("browser closed")
			return
		case fn := <-b.cmds:
			select {
			case <-b.done:
				continue
			default:
			}
			fn()
			b.followPageNavigation()
		}
	}
}

// followPageNavigation loads the target recorded by scripts of the last
// command. Targets recorded while that load runs its own scripts are
// followed in turn.
func (b *browser) followPageNavigation() {
	for {
		select {
		case <-b.done:
			return
		default:
		}
		b.mu.Lock()
		target := b.pendingPage
		b.pendingPage = ""
		b.mu.Unlock()
		if target == "" {
			return
		}
		b.load(loadRequest{gen: port.PageInitiated, url: target})
	}
}

func (b *browser) enqueue(fn func()) bool {
	select {
	case <-b.done:
		return false
	case b.cmds <- fn:
		return true
	}
}

func (b *browser) close() {
	b.closeOnce.Do(func() {
		b.cancel()
		b.mu.Lock()
		if b.realm != nil {
			b.realm.interrupt("browser closed")
		}
		b.mu.Unlock()
		close(b.done)
	})
}

func (b *browser) emit(ev port.Event) {
	b.engine.sink.Deliver(ev)
}

// loadRequest is a queued main-frame navigation. Inline requests commit
// markup without fetching url.
type loadRequest struct {
	gen    port.Generation
	url    string
	markup string
	inline bool
}

// startLoad retires the load in flight and any page-initiated target not yet
// followed, then queues the new load.
func (b *browser) startLoad(req loadRequest) {
	b.mu.Lock()
	b.pendingPage = ""
	b.mu.Unlock()
	b.cancelInflight()
	b.enqueue(func() { b.load(req) })
}

func (b *browser) cancelInflight() {
	b.mu.Lock()
	cancel := b.cancelLoad
	b.cancelLoad = nil
	b.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (b *browser) load(req loadRequest) {
	gen, target := req.gen, req.url
	ctx, cancel := context.WithCancel(b.ctx)
	defer cancel()
	b.mu.Lock()
	b.cancelLoad = cancel
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.cancelLoad = nil
		b.mu.Unlock()
	}()

	b.emit(port.LoadStart{Browser: b.id, Gen: gen, URL: target})

	page := &Page{URL: target, Body: req.markup, ContentType: "text/html", StatusCode: http.StatusOK}
	if !req.inline {
		var err error
		page, err = b.engine.fetcher.Fetch(ctx, target)
		if err != nil {
			b.fail(gen, target, err)
			return
		}
	}
	if ctx.Err() != nil {
		b.fail(gen, target, ctx.Err())
		return
	}

	body := page.Body
	if strings.HasPrefix(page.ContentType, "text/plain") {
		body = "<html><body><pre>" + html.EscapeString(page.Body) + "</pre></body></html>"
	}
	next, err := newRealm(page.URL, body, b.log)
	if err != nil {
		b.fail(gen, target, &ContentError{URL: page.URL, Reason: err.Error()})
		return
	}

	next.onNavigate = b.pageNavigation
	if b.engine.opts.Sandbox != port.SandboxStrict {
		next.runInline(b.engine.scriptBudget())
	}

	b.mu.Lock()
	b.realm = next
	b.mu.Unlock()
	next.onTitle = func(title string) {
		b.emit(port.TitleChanged{Browser: b.id, Title: title})
	}

	b.log.Debug().
		Uint64("gen", uint64(gen)).
		Str("url", page.URL).
		Int("status", page.StatusCode).
		Bool("cached", page.FromCache).
		Msg("document committed")

	b.emit(port.LoadEnd{
		Browser:    b.id,
		Gen:        gen,
		URL:        page.URL,
		Title:      next.title,
		StatusCode: page.StatusCode,
	})
	b.emit(port.FrameReady{Browser: b.id, Rect: b.geometry})
	b.emit(port.PreferredSize{Browser: b.id, Size: b.preferredSize(next)})
}

func (b *browser) fail(gen port.Generation, target string, err error) {
	kind := classify(err)
	msg := err.Error()
	if kind == entity.NavigationCancelled {
		msg = "navigation cancelled"
	}
	b.log.Debug().Err(err).Uint64("gen", uint64(gen)).Str("url", target).Str("kind", kind.String()).Msg("load failed")
	b.emit(port.LoadError{Browser: b.id, Gen: gen, URL: target, Kind: kind, Message: msg})
}

// pageNavigation runs on the worker while a script executes. It only records
// the target: the worker cannot queue onto its own command channel, and a
// later assignment supersedes an earlier one.
func (b *browser) pageNavigation(target string) {
	b.log.Trace().Str("url", target).Msg("page-initiated navigation")
	b.mu.Lock()
	b.pendingPage = target
	b.mu.Unlock()
}

func (b *browser) resize(geom entity.Geometry) {
	b.geometry = geom
	b.emit(port.FrameReady{Browser: b.id, Rect: geom})
	b.mu.Lock()
	r := b.realm
	b.mu.Unlock()
	b.emit(port.PreferredSize{Browser: b.id, Size: b.preferredSize(r)})
}

// preferredSize estimates content height from the rendered text lines at the
// current width.
func (b *browser) preferredSize(r *realm) entity.Size {
	text := strings.TrimSpace(r.doc.Find("body").Text())
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	return entity.Size{Width: b.geometry.Width, Height: lines * lineHeight}
}

func (b *browser) evaluate(req entity.ScriptRequestID, script string) {
	b.mu.Lock()
	r := b.realm
	b.mu.Unlock()

	value, exception := r.eval(script, b.engine.scriptBudget())
	b.emit(port.ScriptResult{
		Browser:   b.id,
		Request:   req,
		Value:     value,
		Exception: exception,
	})
}
