// internal/synth/synth.go
// Package synth drives the external synthesis flow over a tree of extracted
// SystemVerilog files. Each file gets a make invocation plus the report
// script, and the resulting metrics file is copied next to its siblings under
// the reports root.
package synth

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mwiater/svbench/internal/appconfig"
	"github.com/mwiater/svbench/internal/console"
	"github.com/mwiater/svbench/internal/logging"
)

// Runner executes one external command. Tests substitute a recording fake.
type Runner func(ctx context.Context, dir, name string, args ...string) error

func execRunner(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Synthesizer runs the configured tooling over extracted source files.
type Synthesizer struct {
	cfg    appconfig.SynthConfig
	runner Runner
}

// New builds a Synthesizer using the real command runner.
func New(cfg appconfig.SynthConfig) *Synthesizer {
	return &Synthesizer{cfg: cfg, runner: execRunner}
}

// NewWithRunner exists for tests.
func NewWithRunner(cfg appconfig.SynthConfig, runner Runner) *Synthesizer {
	return &Synthesizer{cfg: cfg, runner: runner}
}

// DesignTop derives the synthesis top from an extracted filename: everything
// before the _code marker.
func DesignTop(name string) string {
	base := filepath.Base(name)
	if idx := strings.Index(base, "_code"); idx != -1 {
		return base[:idx]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProcessTree walks codeRoot for .sv files and synthesizes each one. Tool
// failures are logged and skipped so one broken design cannot sink the batch;
// the affected design simply ends up without a metrics file.
func (s *Synthesizer) ProcessTree(ctx context.Context, codeRoot, reportsRoot string) error {
	return filepath.WalkDir(codeRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sv") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		s.processFile(ctx, codeRoot, reportsRoot, path)
		return nil
	})
}

func (s *Synthesizer) processFile(ctx context.Context, codeRoot, reportsRoot, path string) {
	top := DesignTop(path)
	logging.LogEvent("Running synth on: %s (top %s)", filepath.Base(path), top)

	srcArg := fmt.Sprintf("HDL_SRCS=%s", path)
	topArg := fmt.Sprintf("DESIGN_TOP=%s", top)
	if err := s.runner(ctx, s.cfg.WorkDir, s.cfg.MakeCommand(), s.cfg.MakeTarget(), srcArg, topArg); err != nil {
		logging.LogEvent("%s synth failed for %s: %v", console.Failure("FAIL"), filepath.Base(path), err)
	}

	if err := s.runner(ctx, s.cfg.WorkDir, s.cfg.ReportScriptPath()); err != nil {
		logging.LogEvent("%s report script failed for %s: %v", console.Failure("FAIL"), filepath.Base(path), err)
	}

	if err := s.collectMetrics(codeRoot, reportsRoot, path); err != nil {
		logging.LogEvent("%s metrics missing for %s: %v", console.Notice("WARN"), filepath.Base(path), err)
	}
}

// collectMetrics copies the tool's metrics file to
// <reportsRoot>/<rel>/<base>_metrics.txt, mirroring the code tree layout.
func (s *Synthesizer) collectMetrics(codeRoot, reportsRoot, path string) error {
	source := s.cfg.MetricsFilePath()
	if s.cfg.WorkDir != "" && !filepath.IsAbs(source) {
		source = filepath.Join(s.cfg.WorkDir, source)
	}

	rel, err := filepath.Rel(codeRoot, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("relativize %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), ".sv")
	target := filepath.Join(reportsRoot, rel, base+"_metrics.txt")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	if err := copyFile(source, target); err != nil {
		return err
	}
	logging.LogEvent("%s metrics saved as: %s", console.Success("OK"), target)
	return nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", target, err)
	}
	return out.Close()
}
