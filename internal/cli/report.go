// internal/cli/report.go
package svbench

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate collected metrics into summary tables",
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.PersistentFlags().String("reports", reportsRoot, "root directory of collected metrics files")
}
