package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/install"
	"github.com/rinrailin/tgenv/internal/version"
)

// newListCmd creates the list command, showing installed versions with the
// currently selected one marked.
func newListCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed terragrunt versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			versions, err := install.New(cfg, log).ListInstalled()
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			lookup := version.FileLookup{GlobalPath: cfg.GlobalVersionFile()}
			current, err := lookup.Current(cwd)
			if err != nil {
				// The pin file is advisory here; listing still works.
				current = ""
			}

			for _, v := range versions {
				marker := " "
				if v == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, v)
			}
			return nil
		},
	}
}

// newListRemoteCmd creates the list-remote command, printing the published
// version index newest first.
func newListRemoteCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list-remote",
		Short: "List terragrunt versions available for install",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			versions, err := version.NewResolver(cfg, log).ListRemote(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
