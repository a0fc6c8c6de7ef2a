package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/install"
)

// newUseCmd creates the use command, which pins the global default version.
func newUseCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "use <version>",
		Short: "Select a terragrunt version as the global default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version := args[0]

			installed, err := install.New(cfg, log).IsInstalled(version)
			if err != nil {
				return err
			}
			if !installed {
				return fmt.Errorf("terragrunt v%s is not installed (run 'tgenv install %s' first)", version, version)
			}

			if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
				return fmt.Errorf("create install root: %w", err)
			}
			if err := os.WriteFile(cfg.GlobalVersionFile(), []byte(version+"\n"), 0o644); err != nil {
				return fmt.Errorf("write version file: %w", err)
			}

			log.Info().Str("version", version).Msg("switched default terragrunt version")
			return nil
		},
	}
}
