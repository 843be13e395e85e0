// internal/cli/extract.go
package svbench

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/svbench/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract SystemVerilog source from recorded LLM answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputRoot, _ := cmd.Flags().GetString("input")
		outputRoot, _ := cmd.Flags().GetString("output")
		return extract.ProcessTree(inputRoot, outputRoot)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().String("input", "outputs", "root directory of response records")
	extractCmd.Flags().String("output", "code", "root directory for extracted .sv files")
}
