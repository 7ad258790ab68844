package cli

import (
	"github.com/spf13/cobra"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/gitdiff"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/reviewkit/internal/application"
)

func newStyleCmd(g *globals) *cobra.Command {
	var (
		target    targetFlags
		run       runFlags
		fix       bool
		checkOnly bool
		preset    string
	)

	cmd := &cobra.Command{
		Use:   "style",
		Short: "Check code style and optionally fix it",
		Long: "Check indentation, line length, trailing whitespace, semicolons, naming and final newlines. " +
			"With --fix, mechanical issues are repaired in place. Exits with status 1 when any issue remains unfixed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd)
			cfg, err := loadConfig(g, logger)
			if err != nil {
				return err
			}
			if preset != "" {
				if cfg, err = cfg.WithPreset(preset); err != nil {
					return err
				}
			}
			cfg = cfg.WithExcludes(run.excludes)

			svc := application.NewStyleService(
				scanner.New(logger),
				filestore.New(),
				gitdiff.New(),
				application.WithWorkers(run.workers),
				application.WithLogger(logger),
			)
			r, err := svc.Check(cmd.Context(), target.target(), cfg, fix && !checkOnly)
			if err != nil {
				return err
			}
			if err := writeReport(cmd, run.format, run.output, r); err != nil {
				return err
			}
			if r.Unfixed() > 0 {
				return ErrIssuesFound
			}
			return nil
		},
	}

	target.register(cmd, true)
	run.register(cmd)
	cmd.Flags().StringVar(&run.output, "report", "", "Alias for --output")
	cmd.Flags().BoolVar(&fix, "fix", false, "Fix issues with an automatic remedy and rewrite the files")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only report issues (default)")
	cmd.Flags().StringVar(&preset, "style", "", "Style preset: pep8, black, airbnb or standard")
	cmd.MarkFlagsMutuallyExclusive("fix", "check")
	cmd.MarkFlagsMutuallyExclusive("report", "output")

	return cmd
}
