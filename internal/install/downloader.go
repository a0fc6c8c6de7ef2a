package install

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// downloadTimeout bounds a single artifact fetch.
	downloadTimeout = 5 * time.Minute
	// userAgent is sent with every download request.
	userAgent = "tgenv/1.0"
)

// Downloader fetches release files over HTTP. One attempt per fetch: this
// tool deliberately carries no retry or resume logic, a failed download is
// simply a failed install.
type Downloader struct {
	client   *http.Client
	progress io.Writer
}

// NewDownloader creates a downloader. progress receives a percentage
// indicator while a fetch with a known length is running; nil disables it.
func NewDownloader(progress io.Writer) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: downloadTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		progress: progress,
	}
}

// Fetch downloads url to destPath. The body lands in a sibling temp file
// first and is renamed into place, so destPath never holds a partial file.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	var body io.Reader = resp.Body
	if d.progress != nil && resp.ContentLength > 0 {
		pr := &progressReader{
			r:     resp.Body,
			total: resp.ContentLength,
			w:     d.progress,
			label: filepath.Base(destPath),
		}
		defer pr.finish()
		body = pr
	}

	if _, err := io.Copy(tmpFile, body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// progressReader writes a carriage-return percentage indicator as the body
// streams through it.
type progressReader struct {
	r       io.Reader
	w       io.Writer
	label   string
	total   int64
	read    int64
	lastPct int
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)

	pct := int(p.read * 100 / p.total)
	if pct != p.lastPct {
		p.lastPct = pct
		fmt.Fprintf(p.w, "\r%s ... %3d%%", p.label, pct)
	}

	return n, err
}

// finish terminates the indicator line once the stream is drained.
func (p *progressReader) finish() {
	fmt.Fprintln(p.w)
}
