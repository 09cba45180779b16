package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/embedview/internal/cli"
	"github.com/bnema/embedview/internal/cli/styles"
	"github.com/bnema/embedview/internal/domain/entity"
)

var (
	loadTimeout time.Duration
	viewWidth   int
	viewHeight  int
)

var openCmd = &cobra.Command{
	Use:   "open <url> [url...]",
	Short: "Load pages and print the resulting navigation state",
	Long: `Load each URL in turn into one browser host, waiting for every load to
settle, then print the committed URL, title, last error and history.

Examples:
  embedview open https://example.com
  embedview open https://example.com https://example.org`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	addViewFlags(openCmd)
}

func addViewFlags(c *cobra.Command) {
	c.Flags().DurationVar(&loadTimeout, "timeout", 30*time.Second, "maximum time to wait for a load")
	c.Flags().IntVar(&viewWidth, "width", cli.DefaultGeometry.Width, "view width in pixels")
	c.Flags().IntVar(&viewHeight, "height", cli.DefaultGeometry.Height, "view height in pixels")
}

func viewGeometry() entity.Geometry {
	return entity.NewGeometry(0, 0, viewWidth, viewHeight)
}

func runOpen(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewPageRenderer(app.Theme)

	ctx, cancel := signalContext(app.Context())
	defer cancel()

	return app.RunSession(ctx, viewGeometry(), func(ctx context.Context, s *cli.Session) error {
		var state entity.NavigationState
		for _, target := range args {
			var err error
			state, err = s.Open(ctx, target, loadTimeout)
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderState(state))
		if state.Phase == entity.PhaseFailed {
			return state.LastError
		}
		return nil
	})
}
