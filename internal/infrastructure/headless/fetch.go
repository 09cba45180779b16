package headless

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
)

const blankURL = "about:blank"

// ContentError reports a document the engine refuses to display.
type ContentError struct {
	URL    string
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("cannot display %s: %s", e.URL, e.Reason)
}

// Page is a fetched main-frame document.
type Page struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
	FromCache   bool
}

// Fetcher resolves main-frame URLs to documents.
type Fetcher struct {
	client  *resty.Client
	cache   *PageCache
	sandbox port.SandboxPolicy
	log     zerolog.Logger
}

// NewFetcher builds a fetcher with the engine's user agent and timeout.
// cache may be nil.
func NewFetcher(opts port.EngineOptions, cache *PageCache, log zerolog.Logger) *Fetcher {
	client := resty.New().
		SetTimeout(opts.RequestTimeout).
		SetHeader("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.5")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	return &Fetcher{
		client:  client,
		cache:   cache,
		sandbox: opts.Sandbox,
		log:     log,
	}
}

// Fetch retrieves rawURL. Cancellation of ctx surfaces as context.Canceled.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if rawURL == blankURL {
		return &Page{URL: blankURL, ContentType: "text/html", StatusCode: http.StatusOK}, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ContentError{URL: rawURL, Reason: "malformed URL"}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.fetchHTTP(ctx, u.String())
	case "file":
		return f.fetchFile(u)
	case "about":
		return nil, &ContentError{URL: rawURL, Reason: "unknown about page"}
	default:
		return nil, &ContentError{URL: rawURL, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, target string) (*Page, error) {
	req := f.client.R().SetContext(ctx)

	var cached *CachedPage
	if f.cache != nil {
		var err error
		cached, err = f.cache.Get(ctx, target)
		if err != nil {
			f.log.Warn().Err(err).Str("url", target).Msg("page cache lookup failed")
		}
		if cached != nil && cached.ETag != "" {
			req.SetHeader("If-None-Match", cached.ETag)
		}
	}

	resp, err := req.Get(target)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	finalURL := target
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}

	if resp.StatusCode() == http.StatusNotModified && cached != nil {
		if err := f.cache.Touch(ctx, target); err != nil {
			f.log.Warn().Err(err).Str("url", target).Msg("page cache touch failed")
		}
		f.log.Debug().Str("url", target).Msg("revalidated from page cache")
		return &Page{
			URL:         finalURL,
			Body:        cached.Body,
			ContentType: cached.ContentType,
			StatusCode:  http.StatusOK,
			FromCache:   true,
		}, nil
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(resp.Body()).String()
	}
	if !displayable(contentType) {
		return nil, &ContentError{URL: finalURL, Reason: fmt.Sprintf("unsupported content type %q", contentType)}
	}

	page := &Page{
		URL:         finalURL,
		Body:        resp.String(),
		ContentType: contentType,
		StatusCode:  resp.StatusCode(),
	}

	if etag := resp.Header().Get("ETag"); f.cache != nil && etag != "" && resp.StatusCode() == http.StatusOK {
		err := f.cache.Put(ctx, CachedPage{
			URL:         target,
			Body:        page.Body,
			ContentType: contentType,
			ETag:        etag,
		})
		if err != nil {
			f.log.Warn().Err(err).Str("url", target).Msg("page cache store failed")
		}
	}

	return page, nil
}

func (f *Fetcher) fetchFile(u *url.URL) (*Page, error) {
	if f.sandbox != port.SandboxNone {
		return nil, &ContentError{URL: u.String(), Reason: "file access denied by sandbox"}
	}
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Path, err)
	}
	// Local files carry no headers; the type comes from their content.
	contentType := mimetype.Detect(data).String()
	if !displayable(contentType) {
		return nil, &ContentError{URL: u.String(), Reason: fmt.Sprintf("unsupported content type %q", contentType)}
	}
	return &Page{
		URL:         u.String(),
		Body:        string(data),
		ContentType: contentType,
		StatusCode:  http.StatusOK,
	}, nil
}

// displayable accepts markup and plain text.
func displayable(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml", "text/plain":
		return true
	default:
		return false
	}
}

// classify maps a fetch failure onto the navigation error taxonomy.
func classify(err error) entity.NavigationErrorKind {
	var contentErr *ContentError
	switch {
	case errors.Is(err, context.Canceled):
		return entity.NavigationCancelled
	case errors.As(err, &contentErr):
		return entity.NavigationContentError
	default:
		return entity.NavigationNetworkFailure
	}
}
