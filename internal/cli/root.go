// Package cli wires the tgenv command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rinrailin/tgenv/internal/config"
)

// NewRootCmd creates the root tgenv command with all subcommands attached.
// Configuration is loaded once by the caller and threaded into every
// subcommand; nothing below this point reads the environment.
func NewRootCmd(ver string, cfg *config.Config, log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "tgenv",
		Short:         "Terragrunt version manager",
		Long:          "tgenv installs and selects versions of the terragrunt binary.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInstallCmd(cfg, log),
		newUninstallCmd(cfg, log),
		newUseCmd(cfg, log),
		newListCmd(cfg, log),
		newListRemoteCmd(cfg, log),
		newVersionNameCmd(cfg),
	)

	return root
}
