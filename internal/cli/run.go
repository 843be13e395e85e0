// internal/cli/run.go
package svbench

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/console"
	"github.com/mwiater/svbench/internal/dispatch"
	"github.com/mwiater/svbench/internal/logging"
	"github.com/mwiater/svbench/internal/prompts"
	"github.com/mwiater/svbench/internal/providerfactory"
	"github.com/mwiater/svbench/internal/providers"
	"github.com/mwiater/svbench/internal/rag"
)

// Directory roots shared with the external tooling.
const (
	reportsRoot = "reports"
	refinedRoot = "refined"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Dispatch protocol prompts to an LLM backend and record the answers",
	Args:  cobra.NoArgs,
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("dataset", "easy", "dataset name to process")
	runCmd.Flags().String("output", "outputs", "root directory for response records")
	runCmd.Flags().String("model", "alias-code", "model name to use for processing")
	runCmd.Flags().String("protocol", "i2c", "protocol type to process")
	runCmd.Flags().Bool("use_rag", false, "enable retrieval-augmented generation")
	runCmd.Flags().Bool("iter", false, "refine a previous run against its lint report")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	model, _ := cmd.Flags().GetString("model")
	protocol, _ := cmd.Flags().GetString("protocol")
	dataset, _ := cmd.Flags().GetString("dataset")
	outputRoot, _ := cmd.Flags().GetString("output")
	useRAG, _ := cmd.Flags().GetBool("use_rag")
	iter, _ := cmd.Flags().GetBool("iter")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	completer, err := providerfactory.New(ctx, cfg, model)
	if err != nil {
		return err
	}
	defer completer.Close()

	loaded, err := prompts.Load(cfg.ConfigPath, protocol)
	if err != nil {
		return err
	}
	texts := prompts.Texts(loaded)

	if iter {
		return runRefinement(ctx, cfg, completer, model, protocol, dataset, outputRoot, useRAG, texts)
	}

	if useRAG {
		texts, err = augmentPrompts(ctx, cfg, protocol, texts)
		if err != nil {
			return err
		}
	}

	record := dispatch.Run(ctx, completer, model, texts)
	outputPath := dispatch.OutputPath(outputRoot, protocol, model, dataset, useRAG)
	if err := record.Save(outputPath); err != nil {
		return err
	}
	logging.LogEvent("%s responses saved to %s", console.Success("OK"), outputPath)
	return nil
}

// augmentPrompts prepends the same retrieved documentation context to every
// prompt of the run.
func augmentPrompts(ctx context.Context, cfg *appconfig.Config, protocol string, texts []string) ([]string, error) {
	docPath, ok := cfg.RAG.Docs[protocol]
	if !ok {
		return nil, fmt.Errorf("no reference document configured for protocol %q", protocol)
	}

	embedder, err := rag.NewOpenAIEmbedder(cfg.Backends.OpenAI, cfg.RAG.EmbeddingModelName(), cfg.RequestTimeout())
	if err != nil {
		return nil, err
	}

	augmenter, err := rag.NewAugmenter(ctx, embedder, docPath, cfg.RAG.ChunkWords(), cfg.RAG.OverlapWords(), cfg.RAG.TopChunks())
	if err != nil {
		return nil, err
	}

	return augmenter.ApplyAll(ctx, texts)
}

// runRefinement replays a recorded run against its lint report. A missing
// record is generated first; a missing or clean lint report ends the run
// without a refinement pass.
func runRefinement(ctx context.Context, cfg *appconfig.Config, completer providers.Completer, model, protocol, dataset, outputRoot string, useRAG bool, texts []string) error {
	outputPath := dispatch.OutputPath(outputRoot, protocol, model, dataset, useRAG)
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		logging.LogEvent("Output file not found. Generating initial output.")
		record := dispatch.Run(ctx, completer, model, texts)
		if err := record.Save(outputPath); err != nil {
			return err
		}
	}

	top := cfg.DesignTop(protocol)
	if top == "" {
		return fmt.Errorf("no design top configured for protocol %q", protocol)
	}

	lintPath := dispatch.LintReportPath(reportsRoot, protocol, model, top, useRAG)
	issues, err := dispatch.ParseLintReport(lintPath)
	if err != nil {
		logging.LogEvent("Lint file not found: %s. Skipping refinement.", lintPath)
		return nil
	}
	if issues.Empty() {
		logging.LogEvent("No errors found in the lint report. No refinement needed.")
		return nil
	}

	previous, err := dispatch.LoadRecord(outputPath)
	if err != nil {
		return err
	}

	refined, err := dispatch.Refine(ctx, completer, model, previous, issues)
	if err != nil {
		return err
	}

	refinedPath := dispatch.OutputPath(refinedRoot, protocol, model, dataset, useRAG)
	if err := refined.Save(refinedPath); err != nil {
		return err
	}
	logging.LogEvent("%s refined output saved to %s", console.Success("OK"), refinedPath)
	return nil
}
