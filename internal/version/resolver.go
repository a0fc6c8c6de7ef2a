package version

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rinrailin/tgenv/internal/config"
)

const (
	// listTimeout bounds the version index fetch. Downloads of artifacts
	// get their own, longer timeout in the installer.
	listTimeout = 30 * time.Second
	// userAgent is sent with every request to the version index.
	userAgent = "tgenv/1.0"
)

// ErrNotSpecified is returned when no specifier was given and the
// version-file lookup produced nothing.
var ErrNotSpecified = errors.New("version is not specified")

// NoMatchError reports that no remote version satisfied the request.
type NoMatchError struct {
	Requested string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no versions matching %q found in remote", e.Requested)
}

// versionToken extracts a version string from one line of the index feed.
// The feed is nominally one version per line, but real-world feeds wrap the
// version in tag syntax, so the first version-shaped token wins.
var versionToken = regexp.MustCompile(`v?(\d+\.\d+\.\d+[0-9A-Za-z.+-]*)`)

// Resolver turns a Specifier into one concrete version by consulting the
// remote version index.
//
// Precondition on the index: it lists versions newest first. The resolver
// deliberately does not re-sort; re-sorting would silently change "latest"
// semantics if the upstream ordering assumption were ever violated.
type Resolver struct {
	client  *http.Client
	listURL string
	log     zerolog.Logger
}

// NewResolver creates a resolver against the configured version index.
func NewResolver(cfg *config.Config, log zerolog.Logger) *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: listTimeout},
		listURL: cfg.ListURL,
		log:     log,
	}
}

// ListRemote fetches the full remote version list, newest first.
func (r *Resolver) ListRemote(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch version list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch version list: unexpected status code %d", resp.StatusCode)
	}

	var versions []string
	scanner := bufio.NewScanner(resp.Body)
	// Tag-soup lines can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m := versionToken.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		versions = append(versions, m[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read version list: %w", err)
	}

	r.log.Debug().Int("count", len(versions)).Str("url", r.listURL).Msg("fetched remote version list")
	return versions, nil
}

// Resolve produces exactly one concrete version for a specifier, or fails.
// The remote list is filtered by the derived pattern and the first surviving
// entry (the newest, per the ordering precondition) wins.
func (r *Resolver) Resolve(ctx context.Context, spec Specifier) (string, error) {
	if spec.Kind == KindMinRequired {
		return "", fmt.Errorf("min-required must be resolved through the project constraint")
	}

	pattern, err := spec.Pattern()
	if err != nil {
		return "", fmt.Errorf("invalid version filter %q: %w", spec.Value, err)
	}

	versions, err := r.ListRemote(ctx)
	if err != nil {
		return "", err
	}

	for _, v := range versions {
		if pattern.MatchString(v) {
			r.log.Debug().Str("requested", spec.String()).Str("resolved", v).Msg("resolved version")
			return v, nil
		}
	}

	return "", &NoMatchError{Requested: spec.String()}
}
