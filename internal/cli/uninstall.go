package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/install"
)

// newUninstallCmd creates the uninstall command.
func newUninstallCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed terragrunt version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return install.New(cfg, log).Uninstall(args[0])
		},
	}
}
