package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/clone"
	"github.com/skillforge-labs/skillforge/internal/convert"
	"github.com/skillforge-labs/skillforge/internal/inventory"
	"github.com/skillforge-labs/skillforge/internal/lifecycle"
	"github.com/skillforge-labs/skillforge/internal/llmstxt"
	"github.com/skillforge-labs/skillforge/internal/locator"
	"github.com/skillforge-labs/skillforge/internal/logfields"
	"github.com/skillforge-labs/skillforge/internal/platform"
)

// DocsSubdir holds converted documentation inside a materials directory.
const DocsSubdir = "docs_fetched"

// Targeter chooses where new material is written. *locator.Resolver
// satisfies it.
type Targeter interface {
	Boundary() (string, bool)
	DefaultWriteTarget(name string) (string, locator.Mode)
}

// Detector finds llms.txt indexes. *llmstxt.Detector satisfies it.
type Detector interface {
	Detect(ctx context.Context, baseURL string) (*llmstxt.Hit, error)
}

// Request describes one fetch.
type Request struct {
	GitURL       string
	DocsSource   string
	Name         string
	Output       string
	Depth        int
	Branch       string
	SingleBranch bool
	Clean        bool
}

// Result describes what a fetch produced.
type Result struct {
	Name     string
	Dir      string
	Mode     locator.Mode
	Aborted  bool
	Cloned   bool
	Commit   string
	DocsFile string
	// DocsErr is set when conversion failed after a successful clone.
	DocsErr  error
	LLMSHit  *llmstxt.Hit
	Headings []Heading
	Stats    inventory.DirStats
}

// Fetcher runs fetch requests. Detector may be nil to skip the llms.txt hint.
type Fetcher struct {
	Targets   Targeter
	Cloner    clone.Cloner
	Converter convert.Converter
	Detector  Detector
	Prompter  lifecycle.Prompter
	Out       io.Writer
	// HomeDir expands a leading "~" in Request.Output.
	HomeDir string
	// Remove deletes an existing output when Request.Clean is set.
	// Defaults to platform.RemoveAll.
	Remove func(path string) error
}

// Validate checks a request and returns the material name it will use.
func Validate(req Request) (string, error) {
	if req.GitURL == "" && req.DocsSource == "" {
		return "", fmt.Errorf("%w: at least one of a git URL or a docs source is required", ErrInvalidRequest)
	}
	if req.DocsSource != "" && req.Name == "" {
		return "", fmt.Errorf("%w: a name is required when fetching docs", ErrInvalidRequest)
	}
	if req.Depth < 0 {
		return "", fmt.Errorf("%w: depth must not be negative", ErrInvalidRequest)
	}

	name := req.Name
	if req.GitURL != "" {
		name = clone.RepoName(req.GitURL)
	}
	if err := lifecycle.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: cannot use %q as a directory name: %v", ErrInvalidRequest, name, err)
	}
	if req.Name != "" {
		if err := lifecycle.ValidateName(req.Name); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	return name, nil
}

// Run executes req. A declined overwrite confirmation returns a Result with
// Aborted set and no error.
func (f *Fetcher) Run(ctx context.Context, req Request) (*Result, error) {
	name, err := Validate(req)
	if err != nil {
		return nil, err
	}
	res := &Result{Name: name}

	res.Dir, res.Mode, err = f.outputDir(req, name)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(res.Dir); err == nil {
		proceed, err := f.handleExisting(res.Dir, req.Clean)
		if err != nil {
			return nil, err
		}
		if !proceed {
			res.Aborted = true
			return res, nil
		}
	}

	if err := os.MkdirAll(res.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if req.GitURL != "" {
		if err := f.cloneRepo(ctx, req, res); err != nil {
			return res, err
		}
	}

	if req.DocsSource != "" {
		if err := f.fetchDocs(ctx, req, res); err != nil {
			if !res.Cloned {
				return res, err
			}
			res.DocsErr = err
			f.printf("\n⚠️  Documentation fetch failed, but repository was cloned\n")
		}
	}

	res.Stats = inventory.Stats(res.Dir)
	f.printSummary(res)
	return res, nil
}

func (f *Fetcher) outputDir(req Request, name string) (string, locator.Mode, error) {
	if req.Output != "" {
		out := expandHome(req.Output, f.HomeDir)
		abs, err := filepath.Abs(out)
		if err != nil {
			return "", locator.ModeManual, fmt.Errorf("resolving output path: %w", err)
		}
		return abs, locator.ModeManual, nil
	}

	dir, mode := f.Targets.DefaultWriteTarget(name)
	switch mode {
	case locator.ModeProject:
		boundary, _ := f.Targets.Boundary()
		f.printf("\n📍 Project mode detected\n")
		f.printf("   Project root: %s\n", boundary)
		f.printf("   Materials will be saved in: %s\n", filepath.Dir(dir))
	default:
		f.printf("\n📍 Global mode\n")
		f.printf("   Materials will be saved in: %s\n", filepath.Dir(dir))
	}
	return dir, mode, nil
}

func (f *Fetcher) handleExisting(dir string, clean bool) (bool, error) {
	if clean {
		f.printf("\n🧹 Cleaning existing directory: %s\n", dir)
		remove := f.Remove
		if remove == nil {
			remove = platform.RemoveAll
		}
		if err := remove(dir); err != nil {
			return false, fmt.Errorf("cleaning %s: %w", dir, err)
		}
		return true, nil
	}

	f.printf("\n⚠️  Output directory already exists: %s\n", dir)
	ok, err := f.Prompter.Confirm("   Continue anyway? (y/n): ")
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		f.printf("   Aborted\n")
	}
	return ok, nil
}

func (f *Fetcher) cloneRepo(ctx context.Context, req Request, res *Result) error {
	f.printf("\n%s\nCLONING REPOSITORY\n%s\n", rule, rule)
	f.printf("URL: %s\nOutput: %s\n\n", req.GitURL, res.Dir)

	opts := clone.Options{Depth: req.Depth, Branch: req.Branch, SingleBranch: req.SingleBranch}
	if err := f.Cloner.Clone(ctx, req.GitURL, res.Dir, opts); err != nil {
		f.printf("\n❌ Clone failed: %v\n", err)
		return &CollaboratorError{Op: "clone", Err: err}
	}
	res.Cloned = true
	f.printf("\n✅ Clone successful: %s\n", res.Dir)

	if commit, err := clone.HeadCommit(res.Dir); err == nil {
		res.Commit = commit
	} else {
		slog.Debug("Could not read HEAD of clone", logfields.Path(res.Dir), logfields.Error(err))
	}
	return nil
}

func (f *Fetcher) fetchDocs(ctx context.Context, req Request, res *Result) error {
	f.printf("\n%s\nFETCHING DOCUMENTATION\n%s\n", rule, rule)
	f.printf("Source: %s\nName: %s\n", req.DocsSource, req.Name)

	if f.Detector != nil && convert.IsURL(req.DocsSource) && !strings.HasSuffix(strings.ToLower(req.DocsSource), ".txt") {
		f.printf("\n🔍 Checking for llms.txt...\n")
		hit, err := f.Detector.Detect(ctx, req.DocsSource)
		switch {
		case err != nil:
			slog.Debug("llms.txt detection failed", logfields.URL(req.DocsSource), logfields.Error(err))
		case hit != nil:
			res.LLMSHit = hit
			f.printf("✅ Found: %s (%s)\n", hit.URL, hit.Variant)
			f.printf("\n💡 llms.txt is much faster than converting pages.\n")
			f.printf("   Recommended: fetch --docs %s --name %s\n", hit.URL, req.Name)
			f.printf("\n   Continuing with regular conversion...\n")
		default:
			f.printf("❌ No llms.txt found, using regular conversion\n")
		}
	}

	docsDir := filepath.Join(res.Dir, DocsSubdir)
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return &CollaboratorError{Op: "docs", Err: err}
	}

	f.printf("\n📥 Converting documentation...\n")
	markdown, err := f.Converter.Convert(ctx, req.DocsSource)
	if err != nil {
		f.printf("\n❌ Documentation fetch failed: %v\n", err)
		return &CollaboratorError{Op: "docs", Err: err}
	}

	file := filepath.Join(docsDir, req.Name+".md")
	if err := os.WriteFile(file, []byte(markdown), 0644); err != nil {
		return &CollaboratorError{Op: "docs", Err: err}
	}
	res.DocsFile = file
	res.Headings = Outline([]byte(markdown))
	f.printf("\n✅ Documentation fetched successfully\n   Saved to: %s\n", file)
	return nil
}

const rule = "============================================================"

func (f *Fetcher) printSummary(res *Result) {
	f.printf("\n%s\nNEXT STEPS\n%s\n\n", rule, rule)
	f.printf("📂 Source materials are ready at:\n   %s\n\n", res.Dir)

	s := res.Stats
	f.printf("📊 Directory contents:\n")
	f.printf("   Total files: %d\n", s.TotalFiles)
	for _, line := range []struct {
		label string
		n     int
	}{
		{"Python files", s.Python},
		{"Markdown files", s.Markdown},
		{"JavaScript/TypeScript files", s.JavaScript},
		{"JSON files", s.JSON},
	} {
		if line.n > 0 {
			f.printf("   %s: %d\n", line.label, line.n)
		}
	}
	f.printf("   Total size: %.2f MB\n", float64(s.TotalSize)/(1024*1024))
	if res.Commit != "" {
		f.printf("   Commit: %s\n", res.Commit)
	}
	if res.DocsFile != "" {
		f.printf("   Documentation sections: %d\n", len(res.Headings))
	}

	f.printf("\n🚀 To create a skill from these materials, ask for:\n\n")
	f.printf("   \"Create a skill from the materials in %s\"\n", res.Dir)
}

func (f *Fetcher) printf(format string, args ...any) {
	if f.Out != nil {
		fmt.Fprintf(f.Out, format, args...)
	}
}

func expandHome(p, home string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		home = h
	}
	return filepath.Join(home, p[1:])
}
