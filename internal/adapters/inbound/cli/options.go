package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/config"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/report"
	"github.com/abdidvp/reviewkit/internal/application"
	"github.com/abdidvp/reviewkit/internal/domain"
)

func defaultConfigName() string { return config.DefaultFileName }

// targetFlags select what a run covers.
type targetFlags struct {
	file    string
	project string
	gitDiff string
	repo    string
}

func (t *targetFlags) register(cmd *cobra.Command, withDiff bool) {
	cmd.Flags().StringVar(&t.file, "file", "", "Analyze a single file")
	cmd.Flags().StringVar(&t.project, "project", "", "Analyze every supported file under a directory")
	names := []string{"file", "project"}
	if withDiff {
		cmd.Flags().StringVar(&t.gitDiff, "git-diff", "", "Analyze files changed in a revision range (A..B, or R for R..working tree)")
		cmd.Flags().StringVar(&t.repo, "repo", ".", "Repository used with --git-diff")
		names = append(names, "git-diff")
	}
	cmd.MarkFlagsMutuallyExclusive(names...)
	cmd.MarkFlagsOneRequired(names...)
}

func (t *targetFlags) target() application.Target {
	return application.Target{File: t.file, Project: t.project, GitDiff: t.gitDiff, Repo: t.repo}
}

// runFlags are shared by the review and style commands.
type runFlags struct {
	excludes []string
	format   report.Format
	output   string
	workers  int
}

func (r *runFlags) register(cmd *cobra.Command) {
	r.format = report.FormatText
	cmd.Flags().StringSliceVar(&r.excludes, "exclude", nil, "Extra directory substrings to ignore (comma-separated)")
	cmd.Flags().Var(&r.format, "format", "Report format: text, json, markdown or html")
	cmd.Flags().StringVarP(&r.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().IntVar(&r.workers, "workers", 0, "Files analyzed in parallel (default: number of CPUs)")
}

// loadConfig resolves the configuration document: --config when given,
// otherwise the default file in the working directory when present.
func loadConfig(g *globals, logger *slog.Logger) (domain.Config, error) {
	path := g.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			path = config.DefaultFileName
		}
	}
	cfg, err := config.New(logger).Load(path)
	if err != nil {
		return domain.Config{}, err
	}
	logger.Debug("configuration loaded", "path", path, "checks", len(cfg.EnabledChecks))
	return cfg, nil
}

// writeReport renders r to stdout, or atomically to path when one is given.
func writeReport(cmd *cobra.Command, format report.Format, path string, r *domain.Report) error {
	renderer, err := report.New(format)
	if err != nil {
		return err
	}
	if path == "" {
		return renderer.Render(cmd.OutOrStdout(), r)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, r); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := filestore.New().WriteAtomic(path, buf.String()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("saving report: directory of %s does not exist", path)
		}
		return fmt.Errorf("saving report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to: %s\n", path)
	return nil
}
