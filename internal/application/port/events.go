package port

import (
	"fmt"

	"github.com/bnema/embedview/internal/domain/entity"
)

// Event is an engine notification addressed to one browser.
// The set of variants is closed; consumers switch on the concrete type.
type Event interface {
	Target() BrowserID
	isEvent()
}

// LoadStart reports that the main frame began a navigation.
type LoadStart struct {
	Browser BrowserID
	Gen     Generation
	URL     string
}

// LoadEnd reports that the main frame committed and finished loading.
type LoadEnd struct {
	Browser    BrowserID
	Gen        Generation
	URL        string
	Title      string
	StatusCode int
}

// LoadError reports a failed main-frame navigation.
type LoadError struct {
	Browser BrowserID
	Gen     Generation
	URL     string
	Kind    entity.NavigationErrorKind
	Message string
}

// TitleChanged reports a document title update after load.
type TitleChanged struct {
	Browser BrowserID
	Title   string
}

// ScriptResult completes an ExecuteJavaScript request.
// A non-empty Exception means the script threw.
type ScriptResult struct {
	Browser   BrowserID
	Request   entity.ScriptRequestID
	Value     string
	Exception string
}

// ScriptTimeout is posted by the bridge itself when an asynchronous
// evaluation outlives its deadline.
type ScriptTimeout struct {
	Browser BrowserID
	Request entity.ScriptRequestID
}

// BrowserClosed confirms engine-side teardown of a browser.
type BrowserClosed struct {
	Browser BrowserID
}

// FrameReady signals that a region of the view needs repainting.
type FrameReady struct {
	Browser BrowserID
	Rect    entity.Geometry
}

// PreferredSize carries the content size the page would like.
type PreferredSize struct {
	Browser BrowserID
	Size    entity.Size
}

func (e LoadStart) Target() BrowserID     { return e.Browser }
func (e LoadEnd) Target() BrowserID       { return e.Browser }
func (e LoadError) Target() BrowserID     { return e.Browser }
func (e TitleChanged) Target() BrowserID  { return e.Browser }
func (e ScriptResult) Target() BrowserID  { return e.Browser }
func (e ScriptTimeout) Target() BrowserID { return e.Browser }
func (e BrowserClosed) Target() BrowserID { return e.Browser }
func (e FrameReady) Target() BrowserID    { return e.Browser }
func (e PreferredSize) Target() BrowserID { return e.Browser }

func (LoadStart) isEvent()     {}
func (LoadEnd) isEvent()       {}
func (LoadError) isEvent()     {}
func (TitleChanged) isEvent()  {}
func (ScriptResult) isEvent()  {}
func (ScriptTimeout) isEvent() {}
func (BrowserClosed) isEvent() {}
func (FrameReady) isEvent()    {}
func (PreferredSize) isEvent() {}

// EventName returns a short name for logging.
func EventName(ev Event) string {
	switch ev.(type) {
	case LoadStart:
		return "load_start"
	case LoadEnd:
		return "load_end"
	case LoadError:
		return "load_error"
	case TitleChanged:
		return "title_changed"
	case ScriptResult:
		return "script_result"
	case ScriptTimeout:
		return "script_timeout"
	case BrowserClosed:
		return "browser_closed"
	case FrameReady:
		return "frame_ready"
	case PreferredSize:
		return "preferred_size"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
