package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/embedview/internal/cli"
	"github.com/bnema/embedview/internal/cli/styles"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Run: func(cmd *cobra.Command, _ []string) {
		renderer := styles.NewAboutRenderer(styles.NewTheme())
		fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(buildInfo))
		fmt.Fprintf(cmd.OutOrStdout(), "\nbackends: %v\n", cli.Backends())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
