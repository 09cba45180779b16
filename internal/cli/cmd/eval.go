package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/embedview/internal/cli"
	"github.com/bnema/embedview/internal/domain/entity"
)

var evalCmd = &cobra.Command{
	Use:   "eval <url> <script>",
	Short: "Load a page and evaluate JavaScript in it",
	Long: `Load a page, wait for it to settle, then evaluate the script
synchronously and print its result. Objects are printed as JSON.

Examples:
  embedview eval https://example.com 'document.title'
  embedview eval https://example.com 'document.querySelectorAll("a").length'`,
	Args: cobra.ExactArgs(2),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	addViewFlags(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	target, script := args[0], args[1]

	ctx, cancel := signalContext(app.Context())
	defer cancel()

	return app.RunSession(ctx, viewGeometry(), func(ctx context.Context, s *cli.Session) error {
		state, err := s.Open(ctx, target, loadTimeout)
		if err != nil {
			return err
		}
		if state.Phase == entity.PhaseFailed {
			return state.LastError
		}

		result, err := s.Evaluate(ctx, script)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	})
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
