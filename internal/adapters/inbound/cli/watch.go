package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/report"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/watcher"
	"github.com/abdidvp/reviewkit/internal/application"
	"github.com/abdidvp/reviewkit/internal/domain"
)

func newWatchCmd(g *globals) *cobra.Command {
	var (
		path     string
		mode     string
		format   = report.FormatText
		debounce time.Duration
		excludes []string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run review or style checks on files as they change",
		Long:  "Watch a directory tree and print a report for each batch of changed files until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != domain.ToolReview && mode != domain.ToolStyle {
				return fmt.Errorf("unknown mode %q (valid: review, style)", mode)
			}
			renderer, err := report.New(format)
			if err != nil {
				return err
			}
			logger := g.logger(cmd)
			cfg, err := loadConfig(g, logger)
			if err != nil {
				return err
			}
			cfg = cfg.WithExcludes(excludes)

			sc := scanner.New(logger)
			w, err := watcher.New(path, debounce, watcher.Filter{
				Accept:  func(p string) bool { return sc.AcceptUnder(path, p, cfg) },
				SkipDir: cfg.IsIgnoredDir,
			}, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			reviewSvc := application.NewReviewService(sc, filestore.New(), nil, application.WithLogger(logger))
			styleSvc := application.NewStyleService(sc, filestore.New(), nil, application.WithLogger(logger))

			logger.Info("watching for changes", "path", path, "mode", mode)
			return w.Run(cmd.Context(), func(ctx context.Context, paths []string) {
				var (
					r   *domain.Report
					err error
				)
				if mode == domain.ToolStyle {
					r, err = styleSvc.CheckPaths(ctx, paths, cfg, false)
				} else {
					r, err = reviewSvc.ReviewPaths(ctx, paths, cfg)
				}
				if err != nil {
					logger.Error("analysis failed", "error", err)
					return
				}
				if err := renderer.Render(cmd.OutOrStdout(), r); err != nil {
					logger.Error("rendering report", "error", err)
				}
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Directory to watch")
	cmd.Flags().StringVar(&mode, "mode", domain.ToolReview, "What to run on change: review or style")
	cmd.Flags().Var(&format, "format", "Report format: text, json, markdown or html")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before a batch of changes is analyzed")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Extra directory substrings to ignore (comma-separated)")

	return cmd
}
