package headless

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/grafana/sobek"
	"github.com/rs/zerolog"
)

// realm is the scripting context of one committed document.
// All methods except interrupt run on the owning browser worker.
type realm struct {
	vm    *sobek.Runtime
	doc   *goquery.Document
	url   string
	title string

	// onTitle is set once the document commits; assignments to
	// document.title made by inline scripts before that only update title.
	onTitle    func(title string)
	onNavigate func(target string)

	log zerolog.Logger
}

func newRealm(pageURL, markup string, log zerolog.Logger) (*realm, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	r := &realm{
		vm:    sobek.New(),
		doc:   doc,
		url:   pageURL,
		title: strings.TrimSpace(doc.Find("title").First().Text()),
		log:   log,
	}
	r.vm.SetMaxCallStackSize(1024)

	if err := r.setupGlobals(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *realm) setupGlobals() error {
	vm := r.vm
	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := vm.Set(name, sobek.Undefined()); err != nil {
			return err
		}
	}

	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		if err := console.Set(level, r.consoleFunc(level)); err != nil {
			return err
		}
	}

	noop := func(sobek.FunctionCall) sobek.Value { return sobek.Undefined() }

	globals := map[string]interface{}{
		"console":       console,
		"document":      r.documentObject(),
		"location":      r.locationObject(),
		"window":        vm.GlobalObject(),
		"setTimeout":    noop,
		"setInterval":   noop,
		"clearTimeout":  noop,
		"clearInterval": noop,
	}
	for name, value := range globals {
		if err := vm.Set(name, value); err != nil {
			return fmt.Errorf("define %s: %w", name, err)
		}
	}
	return nil
}

func (r *realm) consoleFunc(level string) func(sobek.FunctionCall) sobek.Value {
	return func(call sobek.FunctionCall) sobek.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		msg := strings.Join(parts, " ")

		var ev *zerolog.Event
		switch level {
		case "error":
			ev = r.log.Error()
		case "warn":
			ev = r.log.Warn()
		case "debug":
			ev = r.log.Debug()
		default:
			ev = r.log.Info()
		}
		ev.Str("source", "console").Str("url", r.url).Msg(msg)
		return sobek.Undefined()
	}
}

func (r *realm) documentObject() *sobek.Object {
	vm := r.vm
	document := vm.NewObject()

	getTitle := vm.ToValue(func(sobek.FunctionCall) sobek.Value {
		return vm.ToValue(r.title)
	})
	setTitle := vm.ToValue(func(call sobek.FunctionCall) sobek.Value {
		r.setTitle(call.Argument(0).String())
		return sobek.Undefined()
	})
	_ = document.DefineAccessorProperty("title", getTitle, setTitle, sobek.FLAG_TRUE, sobek.FLAG_TRUE)

	getURL := vm.ToValue(func(sobek.FunctionCall) sobek.Value {
		return vm.ToValue(r.url)
	})
	_ = document.DefineAccessorProperty("URL", getURL, nil, sobek.FLAG_TRUE, sobek.FLAG_TRUE)

	_ = document.Set("querySelector", func(call sobek.FunctionCall) sobek.Value {
		sel := r.doc.Find(call.Argument(0).String()).First()
		if sel.Length() == 0 {
			return sobek.Null()
		}
		return r.element(sel)
	})
	_ = document.Set("querySelectorAll", func(call sobek.FunctionCall) sobek.Value {
		var items []interface{}
		r.doc.Find(call.Argument(0).String()).Each(func(_ int, s *goquery.Selection) {
			items = append(items, r.element(s))
		})
		return vm.NewArray(items...)
	})
	_ = document.Set("getElementById", func(call sobek.FunctionCall) sobek.Value {
		id := call.Argument(0).String()
		var found *goquery.Selection
		r.doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if s.AttrOr("id", "") == id {
				found = s
				return false
			}
			return true
		})
		if found == nil {
			return sobek.Null()
		}
		return r.element(found)
	})

	if body := r.doc.Find("body").First(); body.Length() > 0 {
		_ = document.Set("body", r.element(body))
	}
	return document
}

// element snapshots a node into a read-only script object.
func (r *realm) element(sel *goquery.Selection) sobek.Value {
	obj := r.vm.NewObject()
	inner, _ := sel.Html()
	_ = obj.Set("tagName", strings.ToUpper(goquery.NodeName(sel)))
	_ = obj.Set("id", sel.AttrOr("id", ""))
	_ = obj.Set("className", sel.AttrOr("class", ""))
	_ = obj.Set("textContent", sel.Text())
	_ = obj.Set("innerHTML", inner)
	_ = obj.Set("getAttribute", func(call sobek.FunctionCall) sobek.Value {
		if v, ok := sel.Attr(call.Argument(0).String()); ok {
			return r.vm.ToValue(v)
		}
		return sobek.Null()
	})
	_ = obj.Set("hasAttribute", func(call sobek.FunctionCall) sobek.Value {
		_, ok := sel.Attr(call.Argument(0).String())
		return r.vm.ToValue(ok)
	})
	return obj
}

func (r *realm) locationObject() *sobek.Object {
	vm := r.vm
	location := vm.NewObject()

	assign := func(call sobek.FunctionCall) sobek.Value {
		r.navigate(call.Argument(0).String())
		return sobek.Undefined()
	}
	getHref := vm.ToValue(func(sobek.FunctionCall) sobek.Value {
		return vm.ToValue(r.url)
	})
	_ = location.DefineAccessorProperty("href", getHref, vm.ToValue(assign), sobek.FLAG_TRUE, sobek.FLAG_TRUE)
	_ = location.Set("assign", assign)
	_ = location.Set("replace", assign)
	_ = location.Set("toString", func(sobek.FunctionCall) sobek.Value {
		return vm.ToValue(r.url)
	})
	return location
}

func (r *realm) setTitle(title string) {
	r.title = title
	r.doc.Find("title").First().SetText(title)
	if r.onTitle != nil {
		r.onTitle(title)
	}
}

func (r *realm) navigate(ref string) {
	target, err := resolveReference(r.url, ref)
	if err != nil {
		panic(r.vm.NewTypeError("invalid URL %q", ref))
	}
	if r.onNavigate != nil {
		r.onNavigate(target)
	}
}

// runInline executes the document's inline classic scripts in order.
// Failures are logged and do not abort the load.
func (r *realm) runInline(budget time.Duration) {
	r.doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		switch strings.ToLower(s.AttrOr("type", "")) {
		case "", "text/javascript", "application/javascript":
		default:
			return
		}
		if _, exception := r.eval(s.Text(), budget); exception != "" {
			r.log.Warn().Int("script", i).Str("url", r.url).Str("exception", exception).Msg("inline script failed")
		}
	})
}

// eval runs script, interrupting it after budget. It returns either the
// stringified completion value or the exception text.
func (r *realm) eval(script string, budget time.Duration) (value, exception string) {
	var mu sync.Mutex
	finished := false
	if budget > 0 {
		timer := time.AfterFunc(budget, func() {
			mu.Lock()
			defer mu.Unlock()
			if !finished {
				r.vm.Interrupt("execution timeout exceeded")
			}
		})
		defer timer.Stop()
	}

	v, err := r.vm.RunString(script)

	mu.Lock()
	finished = true
	mu.Unlock()
	r.vm.ClearInterrupt()

	if err != nil {
		return "", exceptionText(err)
	}
	return r.export(v), ""
}

// interrupt aborts a running script from another goroutine.
func (r *realm) interrupt(reason string) {
	r.vm.Interrupt(reason)
}

func (r *realm) export(v sobek.Value) string {
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return ""
	}
	if obj, ok := v.(*sobek.Object); ok {
		if _, callable := sobek.AssertFunction(obj); !callable {
			if s, ok := r.stringify(obj); ok {
				return s
			}
		}
	}
	return v.String()
}

func (r *realm) stringify(v sobek.Value) (string, bool) {
	jsonObj := r.vm.Get("JSON")
	if jsonObj == nil {
		return "", false
	}
	fn, ok := sobek.AssertFunction(jsonObj.ToObject(r.vm).Get("stringify"))
	if !ok {
		return "", false
	}
	out, err := fn(jsonObj, v)
	if err != nil || out == nil || sobek.IsUndefined(out) {
		return "", false
	}
	return out.String(), true
}

func exceptionText(err error) string {
	var interrupted *sobek.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Sprintf("script interrupted: %v", interrupted.Value())
	}
	var exc *sobek.Exception
	if errors.As(err, &exc) {
		if val := exc.Value(); val != nil {
			return val.String()
		}
		return exc.Error()
	}
	return err.Error()
}

func resolveReference(base, ref string) (string, error) {
	target, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "about" {
		return target.String(), nil
	}
	return baseURL.ResolveReference(target).String(), nil
}
