// internal/cli/report_scores.go
package svbench

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mwiater/svbench/internal/console"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/metrics"
)

// reportScoresCmd produces the per-design table plus the LLM x Protocol
// quality ranking.
var reportScoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Rank LLMs by lint and synthesis score per protocol",
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

		if err := metrics.WriteFileTable(filepath.Join(root, "final_metrics_table.txt"), records); err != nil {
			return err
		}
		if err := metrics.WriteFileTableMarkdown("final_metrics_table.md", records); err != nil {
			return err
		}

		rows := metrics.Scores(records)
		if err := metrics.WriteScoresCSV("llm_protocol_score_summary.csv", rows); err != nil {
			return err
		}
		if err := metrics.WriteScoresMarkdown("llm_protocol_score_summary.md", rows); err != nil {
			return err
		}

		fmt.Print(metrics.RenderScores(rows))
		logging.LogEvent("%s score summary saved as llm_protocol_score_summary.csv and llm_protocol_score_summary.md", console.Success("OK"))
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportScoresCmd)
}
