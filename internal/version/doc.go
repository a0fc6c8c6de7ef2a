// Package version resolves user-supplied version specifiers against the
// remote index of published terragrunt releases.
//
// Four specifier forms are understood: a literal version, "latest",
// "latest:<regexp>", and "min-required". The first three reduce to a
// pattern applied to the remote list; min-required instead inspects the
// project's terragrunt.hcl for a version constraint and picks the lowest
// published version satisfying it.
//
// The remote index is an external collaborator with one documented
// precondition: it lists versions newest first. Nothing in this package
// re-sorts it.
package version
