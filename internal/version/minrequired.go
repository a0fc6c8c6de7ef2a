package version

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// projectConfigName is the terragrunt configuration file inspected for a
// version constraint when "min-required" is requested.
const projectConfigName = "terragrunt.hcl"

// constraintAttribute is the terragrunt setting declaring which tool
// versions the project accepts.
const constraintAttribute = "terragrunt_version_constraint"

// ErrMinRequiredUnsupported is returned when min-required resolution cannot
// produce a version: the project declares no usable constraint, or no
// published version satisfies it. Callers map it to a distinct exit code.
var ErrMinRequiredUnsupported = errors.New("min-required is currently not supported")

// ProjectConstraint extracts the terragrunt_version_constraint declared by
// the project in dir.
func ProjectConstraint(dir string) (string, error) {
	path := filepath.Join(dir, projectConfigName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no %s in %s", ErrMinRequiredUnsupported, projectConfigName, dir)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return "", fmt.Errorf("%w: parse %s: %s", ErrMinRequiredUnsupported, path, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return "", fmt.Errorf("%w: unexpected configuration syntax in %s", ErrMinRequiredUnsupported, path)
	}

	attr, ok := body.Attributes[constraintAttribute]
	if !ok {
		return "", fmt.Errorf("%w: %s does not declare %s", ErrMinRequiredUnsupported, path, constraintAttribute)
	}

	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || value.Type() != cty.String {
		return "", fmt.Errorf("%w: %s must be a constant string", ErrMinRequiredUnsupported, constraintAttribute)
	}

	return value.AsString(), nil
}

// ResolveMinRequired computes the lowest published version satisfying the
// project constraint in dir. The remote list arrives newest first, so the
// scan runs back to front; the first satisfying entry from the old end is
// the minimum.
func ResolveMinRequired(ctx context.Context, r *Resolver, dir string) (string, error) {
	raw, err := ProjectConstraint(dir)
	if err != nil {
		return "", err
	}

	constraint, err := semver.NewConstraint(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid constraint %q: %v", ErrMinRequiredUnsupported, raw, err)
	}

	versions, err := r.ListRemote(ctx)
	if err != nil {
		return "", err
	}

	for i := len(versions) - 1; i >= 0; i-- {
		v, parseErr := semver.NewVersion(versions[i])
		if parseErr != nil {
			continue
		}
		if constraint.Check(v) {
			r.log.Debug().Str("constraint", raw).Str("resolved", versions[i]).Msg("resolved min-required version")
			return versions[i], nil
		}
	}

	return "", fmt.Errorf("%w: no published version satisfies %q", ErrMinRequiredUnsupported, raw)
}
