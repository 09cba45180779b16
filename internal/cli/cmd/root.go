// Package cmd provides Cobra CLI commands for embedview.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/embedview/internal/cli"
	"github.com/bnema/embedview/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	overrides cli.Overrides
	rootCmd   = &cobra.Command{
		Use:   "embedview",
		Short: "Drive an embedded web engine from the command line",
		Long: `embedview - an embedding bridge between a host UI loop and a web engine.

Pages are loaded into a browser host, navigation state is tracked with
history, and JavaScript can be evaluated synchronously or asynchronously.

The headless backend needs no display. Builds tagged webkitgtk add the
WebKitGTK backend for a real window.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(overrides)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&overrides.Backend, "backend", "", "engine backend (headless, webkitgtk)")
	rootCmd.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
