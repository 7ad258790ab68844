package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abdidvp/reviewkit/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// ErrIssuesFound is returned when a run finishes with blocking issues: any
// critical issue for review, any unfixed issue for style. The report has
// already been written, so callers only set the exit status.
var ErrIssuesFound = errors.New("blocking issues found")

// globals are the persistent flags shared by every command.
type globals struct {
	verbose    bool
	configPath string
}

func (g *globals) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), g.verbose)
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "reviewkit",
		Short: "Rule-based code review and style enforcement",
		Long: "reviewkit scans source files for security, performance, quality and best-practice issues, " +
			"checks code style, and can fix the style issues that have a mechanical remedy.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Configuration document (default: ./"+defaultConfigName()+" when present)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newReviewCmd(g))
	cmd.AddCommand(newStyleCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the command line with ctx, which carries cancellation on
// interrupt.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
