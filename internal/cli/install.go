package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/install"
	"github.com/rinrailin/tgenv/internal/platform"
	"github.com/rinrailin/tgenv/internal/version"
)

// newInstallCmd creates the install command, the main pipeline of the tool.
func newInstallCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "install [version]",
		Short: "Install a terragrunt version",
		Long: `Installs a terragrunt version into $TGENV_ROOT/versions/<version>.

The version may be an exact version ("0.45.2"), "latest", "latest:<regexp>"
to pick the newest version matching a pattern, or "min-required" to pick the
lowest version satisfying the terragrunt_version_constraint declared in the
current directory's terragrunt.hcl. With no argument, the nearest
.terragrunt-version file decides.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				lookup := version.FileLookup{GlobalPath: cfg.GlobalVersionFile()}
				raw, err = lookup.Requested(cwd)
				if err != nil {
					return err
				}
			}
			if raw == "" {
				return version.ErrNotSpecified
			}

			spec := version.ParseSpecifier(raw)
			resolver := version.NewResolver(cfg, log)

			var resolved string
			if spec.Kind == version.KindMinRequired {
				resolved, err = version.ResolveMinRequired(ctx, resolver, cwd)
			} else {
				resolved, err = resolver.Resolve(ctx, spec)
			}
			if err != nil {
				return err
			}

			key, err := platform.Detect(ctx, cfg.Arch, log)
			if err != nil {
				return err
			}

			return install.New(cfg, log).Install(ctx, resolved, key)
		},
	}
}
