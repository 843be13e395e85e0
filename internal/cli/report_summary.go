// internal/cli/report_summary.go
package svbench

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/svbench/internal/console"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/metrics"
)

// reportSummaryCmd produces the grouped LLM x RAG x Protocol metric table.
var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Group metrics by LLM, RAG, and protocol",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("reports")

		records, err := metrics.CollectRecords(root)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no metric files found under %s", root)
		}

		rows := metrics.Summarize(records)
		if err := metrics.WriteSummaryCSV("final_metric_table.txt", rows); err != nil {
			return err
		}
		if err := metrics.WriteSummaryMarkdown("final_metric_table.md", rows); err != nil {
			return err
		}

		fmt.Print(metrics.RenderSummary(rows))
		logging.LogEvent("%s summary saved as final_metric_table.txt and final_metric_table.md", console.Success("OK"))
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportSummaryCmd)
}
