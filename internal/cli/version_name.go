package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/version"
)

// newVersionNameCmd creates the version-name command, printing the version
// pinned for the current directory (project pin first, global default
// second).
func newVersionNameCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version-name",
		Short: "Print the terragrunt version in effect for this directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			lookup := version.FileLookup{GlobalPath: cfg.GlobalVersionFile()}
			current, err := lookup.Current(cwd)
			if err != nil {
				return err
			}
			if current == "" {
				return fmt.Errorf("no version is pinned (run 'tgenv use <version>' or create %s)", version.PinFileName)
			}

			fmt.Fprintln(cmd.OutOrStdout(), current)
			return nil
		},
	}
}
