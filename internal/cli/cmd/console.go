package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/embedview/internal/cli"
	"github.com/bnema/embedview/internal/cli/model"
	"github.com/bnema/embedview/internal/cli/styles"
	"github.com/bnema/embedview/internal/domain/entity"
)

var consoleCmd = &cobra.Command{
	Use:   "console [url]",
	Short: "Interactive JavaScript console",
	Long: `Open a page (about:blank by default) and evaluate JavaScript
interactively. Evaluations are asynchronous: several can be in flight and
results are printed as they complete.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	addViewFlags(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	target := "about:blank"
	if len(args) == 1 {
		target = args[0]
	}
	renderer := styles.NewPageRenderer(app.Theme)
	if err := app.WatchConfig(); err != nil {
		app.Logger.Warn().Err(err).Msg("config reload disabled")
	}

	ctx, cancel := signalContext(app.Context())
	defer cancel()

	return app.RunSession(ctx, viewGeometry(), func(ctx context.Context, s *cli.Session) error {
		state, err := s.Open(ctx, target, loadTimeout)
		if err != nil {
			return err
		}
		if state.Phase == entity.PhaseFailed {
			fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderState(state))
		}

		m := model.NewConsoleModel(app.Theme, target, s.EvaluateAsync)
		_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
		return err
	})
}
