package styles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/embedview/internal/domain/entity"
)

func TestPageRenderer_RenderState(t *testing.T) {
	r := NewPageRenderer(NewTheme())

	state := entity.NewNavigationState()
	state.Push(entity.NewHistoryEntry("https://a.test/", "A"))
	state.Push(entity.NewHistoryEntry("https://b.test/", "B"))
	state.Cursor = 0
	state.Phase = entity.PhaseFailed
	state.URL = "https://a.test/"
	state.Title = "A"
	state.LastError = &entity.NavigationError{Kind: entity.NavigationNetworkFailure, URL: "https://c.test/", Message: "refused"}

	out := r.RenderState(state)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "https://a.test/")
	assert.Contains(t, out, "> A")
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "refused")
}

func TestPageRenderer_RenderResult(t *testing.T) {
	r := NewPageRenderer(NewTheme())

	assert.Contains(t, r.RenderResult("42", nil), "42")
	assert.Contains(t, r.RenderResult("", nil), "undefined")
	assert.Contains(t, r.RenderResult("", errors.New("boom")), "boom")
}
