package version

import (
	"regexp"
	"strings"
)

// Kind enumerates the ways a version can be requested.
type Kind int

const (
	// KindExact requests one literal version, e.g. "0.45.2".
	KindExact Kind = iota
	// KindLatest requests the newest stable release (exact dotted triple,
	// no pre-release or build suffix).
	KindLatest
	// KindLatestFiltered requests the newest release matching a
	// user-supplied regular expression, e.g. "latest:^0\.44\.".
	KindLatestFiltered
	// KindMinRequired requests the lowest version compatible with the
	// constraint declared by the project in the working directory.
	KindMinRequired
)

// stableVersionPattern matches exact dotted triples, excluding pre-release
// and build suffixes. It is the filter behind the bare "latest" specifier.
const stableVersionPattern = `^\d+\.\d+\.\d+$`

// Specifier is a parsed version request. Value carries the literal version
// for KindExact and the raw filter pattern for KindLatestFiltered.
type Specifier struct {
	Kind  Kind
	Value string
}

// ParseSpecifier interprets the user-supplied specifier string. Anything
// that is not one of the reserved forms is treated as a literal version.
func ParseSpecifier(raw string) Specifier {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "latest":
		return Specifier{Kind: KindLatest}
	case strings.HasPrefix(raw, "latest:"):
		return Specifier{Kind: KindLatestFiltered, Value: strings.TrimPrefix(raw, "latest:")}
	case raw == "min-required":
		return Specifier{Kind: KindMinRequired}
	default:
		return Specifier{Kind: KindExact, Value: raw}
	}
}

// Pattern derives the regular expression applied against the remote version
// list. Literal versions become anchored exact matches; filter patterns are
// compiled as given. KindMinRequired has no pattern and must be resolved
// through the constraint collaborator instead.
func (s Specifier) Pattern() (*regexp.Regexp, error) {
	switch s.Kind {
	case KindLatest:
		return regexp.MustCompile(stableVersionPattern), nil
	case KindLatestFiltered:
		return regexp.Compile(s.Value)
	default:
		return regexp.Compile("^" + regexp.QuoteMeta(s.Value) + "$")
	}
}

// String reconstructs the user-facing form of the specifier, used in
// diagnostics such as the no-match error.
func (s Specifier) String() string {
	switch s.Kind {
	case KindLatest:
		return "latest"
	case KindLatestFiltered:
		return "latest:" + s.Value
	case KindMinRequired:
		return "min-required"
	default:
		return s.Value
	}
}
