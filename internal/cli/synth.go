// internal/cli/synth.go
package svbench

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mwiater/svbench/internal/synth"
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Run the synthesis tooling over every extracted design",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		codeRoot, _ := cmd.Flags().GetString("input")
		reports, _ := cmd.Flags().GetString("reports")

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return synth.New(getConfig().Synth).ProcessTree(ctx, codeRoot, reports)
	},
}

func init() {
	rootCmd.AddCommand(synthCmd)
	synthCmd.Flags().String("input", "code", "root directory of extracted .sv files")
	synthCmd.Flags().String("reports", reportsRoot, "root directory for collected metrics files")
}
