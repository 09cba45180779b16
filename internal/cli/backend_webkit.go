//go:build webkitgtk

package cli

import (
	"github.com/bnema/embedview/internal/application/port"
	"github.com/bnema/embedview/internal/config"
	"github.com/bnema/embedview/internal/domain/entity"
	"github.com/bnema/embedview/internal/infrastructure/webkit"
)

func init() {
	registerBackend(config.BackendWebKitGTK, Backend{
		NewEngine: func() port.Engine { return webkit.New() },
		NewWindow: func(title string, geom entity.Geometry) port.NativeWindow {
			return webkit.NewToplevel(title, geom)
		},
	})
}
