package headless

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/domain/entity"
)

const scriptPage = `<html><head><title>Scripts</title></head>
<body>
<h1 id="main" class="hero" data-kind="greeting">Hello world</h1>
<ul><li>one</li><li>two</li></ul>
</body></html>`

func TestEngine_ExecuteJavaScript(t *testing.T) {
	e, rec := startEngine(t)
	id := createBrowser(t, e)
	loadHTML(t, e, rec, id, 1, scriptPage)

	tests := []struct {
		name      string
		script    string
		value     string
		exception string
	}{
		{name: "arithmetic", script: "1+1", value: "2"},
		{name: "string", script: "'a' + 'b'", value: "ab"},
		{name: "undefined", script: "undefined", value: ""},
		{name: "null", script: "null", value: ""},
		{name: "object as json", script: "({a: 1, b: [true]})", value: `{"a":1,"b":[true]}`},
		{name: "title", script: "document.title", value: "Scripts"},
		{name: "query text", script: "document.querySelector('#main').textContent", value: "Hello world"},
		{name: "query attribute", script: "document.querySelector('h1').getAttribute('data-kind')", value: "greeting"},
		{name: "missing attribute", script: "document.querySelector('h1').getAttribute('nope')", value: ""},
		{name: "query all", script: "document.querySelectorAll('li').map(function (li) { return li.textContent }).join(',')", value: "one,two"},
		{name: "no match", script: "document.querySelector('table') === null", value: "true"},
		{name: "by id", script: "document.getElementById('main').tagName", value: "H1"},
		{name: "location", script: "location.href", value: "https://example.test/page"},
		{name: "thrown error", script: "throw new Error('boom')", exception: "Error: boom"},
		{name: "thrown string", script: "throw 'bad'", exception: "bad"},
		{name: "reference error", script: "notDefined + 1", exception: "ReferenceError: notDefined is not defined"},
		{name: "require removed", script: "typeof require", value: "undefined"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, e, rec, id, entity.ScriptRequestID(i+1), tt.script)
			assert.Equal(t, tt.value, res.Value)
			assert.Equal(t, tt.exception, res.Exception)
		})
	}
}

func TestEngine_ScriptSyntaxError(t *testing.T) {
	e, rec := startEngine(t)
	id := createBrowser(t, e)

	res := evaluate(t, e, rec, id, 1, "function (")
	assert.Empty(t, res.Value)
	assert.Contains(t, res.Exception, "SyntaxError")
}

func TestEngine_ScriptInterruptedAfterBudget(t *testing.T) {
	e, rec := startEngine(t, func(o *port.EngineOptions) { o.RequestTimeout = 50 * time.Millisecond })
	id := createBrowser(t, e)

	res := evaluate(t, e, rec, id, 1, "while (true) {}")
	assert.Contains(t, res.Exception, "interrupted")

	// The realm stays usable afterwards.
	res = evaluate(t, e, rec, id, 2, "40 + 2")
	assert.Equal(t, "42", res.Value)
	assert.Empty(t, res.Exception)
}

func TestEngine_TitleAssignmentEmitsTitleChanged(t *testing.T) {
	e, rec := startEngine(t)
	id := createBrowser(t, e)
	loadHTML(t, e, rec, id, 1, scriptPage)

	res := evaluate(t, e, rec, id, 1, "document.title = 'Renamed'; document.title")
	assert.Equal(t, "Renamed", res.Value)

	changed := waitFor(t, rec, func(ev port.TitleChanged) bool { return ev.Browser == id })
	assert.Equal(t, "Renamed", changed.Title)
}

func TestEngine_LocationAssignIsPageInitiated(t *testing.T) {
	e, rec := startEngine(t)
	id := createBrowser(t, e)
	loadHTML(t, e, rec, id, 1, scriptPage)

	evaluate(t, e, rec, id, 1, "location.assign('/other')")

	start := waitFor(t, rec, func(ev port.LoadStart) bool { return ev.Gen == port.PageInitiated })
	assert.Equal(t, "https://example.test/other", start.URL)
}

func TestEngine_RepeatedLocationAssignCoalesces(t *testing.T) {
	e, rec := startEngine(t)
	id := createBrowser(t, e)
	loadHTML(t, e, rec, id, 1, scriptPage)

	res := evaluate(t, e, rec, id, 7,
		"for (var i = 0; i < 300; i++) { location.assign('/step/' + i) }; 'done'")
	assert.Equal(t, "done", res.Value)
	assert.Empty(t, res.Exception)

	start := waitFor(t, rec, func(ev port.LoadStart) bool { return ev.Gen == port.PageInitiated })
	assert.Equal(t, "https://example.test/step/299", start.URL)

	starts := 0
	for _, ev := range rec.snapshot() {
		if ls, ok := ev.(port.LoadStart); ok && ls.Gen == port.PageInitiated {
			starts++
		}
	}
	assert.Equal(t, 1, starts)
}

func TestEngine_InlineScriptsFollowSandbox(t *testing.T) {
	const page = `<html><head><title>Before</title>
<script>document.title = 'After'</script>
<script type="text/template">document.title = 'Template'</script>
</head></html>`

	tests := []struct {
		sandbox port.SandboxPolicy
		title   string
	}{
		{sandbox: port.SandboxRelaxed, title: "After"},
		{sandbox: port.SandboxNone, title: "After"},
		{sandbox: port.SandboxStrict, title: "Before"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sandbox), func(t *testing.T) {
			e, rec := startEngine(t, func(o *port.EngineOptions) { o.Sandbox = tt.sandbox })
			id := createBrowser(t, e)

			end := loadHTML(t, e, rec, id, 1, page)
			assert.Equal(t, tt.title, end.Title)

			// Titles set before commit are reported by LoadEnd only.
			for _, ev := range rec.snapshot() {
				_, isTitle := ev.(port.TitleChanged)
				assert.False(t, isTitle)
			}
		})
	}
}

func TestPageCache_PutGet(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenPageCache(ctx, t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	miss, err := cache.Get(ctx, "https://example.test/")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.Put(ctx, CachedPage{URL: "https://example.test/", Body: "v1", ETag: `"1"`}))
	require.NoError(t, cache.Put(ctx, CachedPage{URL: "https://example.test/", Body: "v2", ETag: `"2"`}))

	hit, err := cache.Get(ctx, "https://example.test/")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "v2", hit.Body)
	assert.Equal(t, `"2"`, hit.ETag)
	assert.False(t, hit.FetchedAt.IsZero())

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestResolveReference(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://example.test/a/b", "c", "https://example.test/a/c"},
		{"https://example.test/a/b", "/root", "https://example.test/root"},
		{"https://example.test/a", "https://other.test/", "https://other.test/"},
		{"about:blank", "https://other.test/x", "https://other.test/x"},
	}
	for _, tt := range tests {
		got, err := resolveReference(tt.base, tt.ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
