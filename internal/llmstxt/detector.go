package llmstxt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/skillforge-labs/skillforge/internal/branding"
	"github.com/skillforge-labs/skillforge/internal/logfields"
)

// DefaultTimeout bounds each probe when the Detector has no client.
const DefaultTimeout = 5 * time.Second

// Variant is one llms.txt flavour.
type Variant struct {
	Filename string
	Name     string
}

// Variants in probe order, most complete first.
var Variants = []Variant{
	{Filename: "llms-full.txt", Name: "full"},
	{Filename: "llms.txt", Name: "standard"},
	{Filename: "llms-small.txt", Name: "small"},
}

// Hit is a variant found on a site.
type Hit struct {
	URL      string
	Variant  string
	Filename string
}

// ErrInvalidURL is returned for URLs without a scheme and host.
var ErrInvalidURL = errors.New("invalid documentation URL")

// Detector probes sites with HEAD requests.
type Detector struct {
	Client *http.Client
}

// NewDetector returns a Detector whose client times out after timeout.
func NewDetector(timeout time.Duration) *Detector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Detector{Client: &http.Client{Timeout: timeout}}
}

func (d *Detector) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// Detect returns the first variant served at the site root of baseURL, or
// nil when none is.
func (d *Detector) Detect(ctx context.Context, baseURL string) (*Hit, error) {
	root, err := siteRoot(baseURL)
	if err != nil {
		return nil, err
	}
	for _, v := range Variants {
		if hit := d.probe(ctx, root, v); hit != nil {
			return hit, nil
		}
	}
	return nil, nil
}

// DetectAll returns every variant served at the site root, in probe order.
func (d *Detector) DetectAll(ctx context.Context, baseURL string) ([]Hit, error) {
	root, err := siteRoot(baseURL)
	if err != nil {
		return nil, err
	}
	var hits []Hit
	for _, v := range Variants {
		if hit := d.probe(ctx, root, v); hit != nil {
			hits = append(hits, *hit)
		}
	}
	return hits, nil
}

// probe reports a hit only for HTTP 200. Transport errors count as a miss.
func (d *Detector) probe(ctx context.Context, root string, v Variant) *Hit {
	target := root + "/" + v.Filename
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := d.client().Do(req)
	if err != nil {
		slog.Debug("llms.txt probe failed", logfields.URL(target), logfields.Error(err))
		return nil
	}
	resp.Body.Close()
	slog.Debug("llms.txt probe", logfields.URL(target), logfields.Status(resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	return &Hit{URL: target, Variant: v.Name, Filename: v.Filename}
}

// Download saves the body of rawURL to dest, creating parent directories.
func (d *Detector) Download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := d.client().Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", rawURL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	slog.Debug("Downloaded llms.txt", logfields.URL(rawURL), logfields.Path(dest), logfields.Size(n))
	return nil
}

// siteRoot reduces baseURL to scheme://host.
func siteRoot(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
