package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/config"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
	"github.com/abdidvp/reviewkit/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		preset string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a " + config.DefaultFileName + " configuration file",
		Long:  "Write a " + config.DefaultFileName + " holding the built-in defaults, optionally with a style preset applied.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			dest := filepath.Join(absPath, config.DefaultFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultFileName)
				}
			}

			cfg := domain.DefaultConfig()
			if preset != "" {
				if cfg, err = cfg.WithPreset(preset); err != nil {
					return err
				}
			}
			content, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			if err := filestore.New().WriteAtomic(dest, string(content)); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.DefaultFileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "style", "", "Style preset to bake in: pep8, black, airbnb or standard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+config.DefaultFileName)

	return cmd
}
