package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/gitdiff"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/reviewkit/internal/application"
	"github.com/abdidvp/reviewkit/internal/domain"
)

func newReviewCmd(g *globals) *cobra.Command {
	var (
		target targetFlags
		run    runFlags
		checks []string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review code for security, performance, quality and best-practice issues",
		Long: "Apply the rule catalog to a file, a project or the files changed in a revision range. " +
			"Exits with status 1 when any critical issue is found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd)
			cfg, err := loadConfig(g, logger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("checks") {
				cats, err := domain.ParseChecks(checks)
				if err != nil {
					return err
				}
				cfg = cfg.WithChecks(cats)
			}
			cfg = cfg.WithExcludes(run.excludes)

			svc := application.NewReviewService(
				scanner.New(logger),
				filestore.New(),
				gitdiff.New(),
				application.WithWorkers(run.workers),
				application.WithLogger(logger),
			)
			r, err := svc.Review(cmd.Context(), target.target(), cfg)
			if err != nil {
				return err
			}
			if err := writeReport(cmd, run.format, run.output, r); err != nil {
				return err
			}
			if r.HasSeverity(domain.SeverityCritical) {
				return ErrIssuesFound
			}
			return nil
		},
	}

	target.register(cmd, true)
	run.register(cmd)
	cmd.Flags().StringSliceVar(&checks, "checks", []string{"all"}, "Checks to run: security, performance, quality, best_practices, or all")

	return cmd
}
