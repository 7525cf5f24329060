package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillforge-labs/skillforge/internal/branding"
	"github.com/skillforge-labs/skillforge/internal/logfields"
)

// ErrUnsupportedFormat is returned for sources that cannot be converted to
// Markdown, such as PDF and Office documents.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrTooLarge is returned for remote documents over MaxBodyBytes.
var ErrTooLarge = errors.New("document too large")

// MaxBodyBytes caps how much of a remote document is read. Larger documents
// fail rather than being truncated.
const MaxBodyBytes = 32 << 20

// Converter turns a URL or local path into Markdown.
type Converter interface {
	Convert(ctx context.Context, source string) (string, error)
}

type format int

const (
	formatUnknown format = iota
	formatHTML
	formatText
	formatBinary
)

var extFormats = map[string]format{
	".html":     formatHTML,
	".htm":      formatHTML,
	".xhtml":    formatHTML,
	".md":       formatText,
	".markdown": formatText,
	".mdx":      formatText,
	".txt":      formatText,
	".rst":      formatText,
	".pdf":      formatBinary,
	".doc":      formatBinary,
	".docx":     formatBinary,
	".ppt":      formatBinary,
	".pptx":     formatBinary,
	".xls":      formatBinary,
	".xlsx":     formatBinary,
	".epub":     formatBinary,
}

// Document converts HTTP(S) URLs and local files.
type Document struct {
	Client *http.Client
}

// NewDocument returns a Document whose client times out after timeout.
func NewDocument(timeout time.Duration) *Document {
	return &Document{Client: &http.Client{Timeout: timeout}}
}

// Convert fetches or reads source and returns it as Markdown.
func (d *Document) Convert(ctx context.Context, source string) (string, error) {
	if IsURL(source) {
		return d.convertURL(ctx, source)
	}
	return convertFile(source)
}

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (d *Document) convertURL(ctx context.Context, rawURL string) (string, error) {
	u, _ := url.Parse(rawURL)
	if extFormats[strings.ToLower(path.Ext(u.Path))] == formatBinary {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())
	req.Header.Set("Accept", "text/html, text/markdown, text/plain;q=0.9, */*;q=0.5")

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %s: HTTP %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if len(body) > MaxBodyBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, rawURL, MaxBodyBytes)
	}
	slog.Debug("Fetched document", logfields.URL(rawURL), logfields.Status(resp.StatusCode), logfields.Size(int64(len(body))))

	f := formatFromContentType(resp.Header.Get("Content-Type"))
	if f == formatUnknown {
		f = extFormats[strings.ToLower(path.Ext(u.Path))]
	}
	return render(f, string(body), rawURL)
}

func convertFile(p string) (string, error) {
	f := extFormats[strings.ToLower(filepath.Ext(p))]
	if f == formatBinary {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return render(f, string(data), p)
}

func render(f format, body, source string) (string, error) {
	if f == formatUnknown {
		if strings.ContainsRune(body, 0) {
			f = formatBinary
		} else if LooksLikeHTML(body) {
			f = formatHTML
		} else {
			f = formatText
		}
	}

	switch f {
	case formatHTML:
		md, err := HTMLToMarkdown(body)
		if err != nil {
			return "", fmt.Errorf("converting %s: %w", source, err)
		}
		return md, nil
	case formatText:
		return body, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
	}
}

func formatFromContentType(ct string) format {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return formatUnknown
	}
	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return formatHTML
	case mediaType == "text/markdown" || mediaType == "text/x-markdown" || mediaType == "text/plain":
		return formatText
	case mediaType == "application/pdf",
		strings.HasPrefix(mediaType, "application/vnd.openxmlformats-officedocument"),
		mediaType == "application/msword",
		mediaType == "application/vnd.ms-excel",
		mediaType == "application/vnd.ms-powerpoint":
		return formatBinary
	}
	return formatUnknown
}
