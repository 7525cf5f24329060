package locator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skillforge-labs/skillforge/internal/branding"
	"github.com/skillforge-labs/skillforge/internal/config"
	"github.com/skillforge-labs/skillforge/internal/logfields"
)

// Layout holds the directory names that shape both materials roots.
type Layout struct {
	StateDir        string   // per-project tool state directory, e.g. ".claude"
	MaterialsSubdir string   // materials directory inside StateDir
	GlobalDir       string   // materials directory under $HOME
	Markers         []string // boundary marker names
}

// DefaultLayout returns the layout baked into branding.yaml.
func DefaultLayout() Layout {
	return Layout{
		StateDir:        branding.StateDir(),
		MaterialsSubdir: branding.MaterialsSubdir(),
		GlobalDir:       branding.GlobalMaterialsDir(),
		Markers:         branding.BoundaryMarkers(),
	}
}

// Resolver computes the candidate materials roots for one invocation. Every
// method re-reads the filesystem; nothing is cached between calls.
type Resolver struct {
	// StartDir is where the upward boundary search begins.
	StartDir string
	// HomeDir anchors the global root unless GlobalOverride is set.
	HomeDir string
	// GlobalOverride replaces <HomeDir>/<Layout.GlobalDir> when non-empty.
	GlobalOverride string
	// SelfDir is the tool's own source tree; it never counts as a boundary.
	SelfDir string
	Layout  Layout

	// Exists reports whether a path exists. Defaults to os.Stat.
	Exists func(path string) bool
	// IsDir reports whether a path is an existing directory. Defaults to os.Stat.
	IsDir func(path string) bool
}

// New builds a Resolver from the process environment. An empty start means
// the current working directory. The start path is made absolute and has
// symlinks resolved here so the search itself stays a pure path walk.
func New(start string) (*Resolver, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		start = wd
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolving start path %s: %w", start, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	r := &Resolver{
		StartDir:       abs,
		HomeDir:        home,
		GlobalOverride: globalOverride(),
		SelfDir:        DetectSelfDir(),
		Layout:         DefaultLayout(),
	}
	slog.Debug("Resolver initialised", logfields.Path(abs), slog.String("self_dir", r.SelfDir))
	return r, nil
}

// globalOverride checks the <PREFIX>_GLOBAL_MATERIALS env var first,
// then the "materials.global_dir" config key.
func globalOverride() string {
	if v := os.Getenv(branding.EnvVar("GLOBAL_MATERIALS")); v != "" {
		return v
	}
	return config.Get("materials.global_dir")
}

// DetectSelfDir locates the tool's own source tree: the <PREFIX>_SELF_DIR
// env var if set, otherwise the executable's directory or its parent when
// that directory is named after the tool and holds its definition file.
// Returns "" when neither matches.
func DetectSelfDir() string {
	if v := os.Getenv(branding.EnvVar("SELF_DIR")); v != "" {
		return canonical(v)
	}

	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	for _, candidate := range []string{dir, filepath.Dir(dir)} {
		if IsToolDir(candidate, statExists) {
			return candidate
		}
	}
	return ""
}

// canonical makes p absolute and resolves symlinks so it compares equal to
// the start path computed by New. An unresolvable p is returned cleaned.
func canonical(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// IsToolDir reports whether dir is the tool's own source tree.
func IsToolDir(dir string, exists func(string) bool) bool {
	if filepath.Base(dir) != branding.ToolDirName() {
		return false
	}
	return exists(filepath.Join(dir, branding.DefinitionFile()))
}

// Boundary returns the nearest project boundary above StartDir.
func (r *Resolver) Boundary() (string, bool) {
	return FindBoundary(r.StartDir, MarkerCheck(r.exists, r.Layout.Markers), r.SelfDir)
}

// ProjectRoot returns <boundary>/<state-dir>/<materials-subdir> when a
// boundary exists, regardless of whether that directory exists.
func (r *Resolver) ProjectRoot() (string, bool) {
	boundary, ok := r.Boundary()
	if !ok {
		return "", false
	}
	return filepath.Join(boundary, r.Layout.StateDir, r.Layout.MaterialsSubdir), true
}

// GlobalRoot returns the global materials root, regardless of whether it exists.
func (r *Resolver) GlobalRoot() string {
	if r.GlobalOverride != "" {
		return r.GlobalOverride
	}
	return filepath.Join(r.HomeDir, r.Layout.GlobalDir)
}

// SearchedRoots returns every root considered for this invocation, project
// first, whether or not it exists on disk.
func (r *Resolver) SearchedRoots() []Root {
	var roots []Root
	if p, ok := r.ProjectRoot(); ok {
		roots = append(roots, Root{Mode: ModeProject, Path: p})
	}
	roots = append(roots, Root{Mode: ModeGlobal, Path: r.GlobalRoot()})
	return roots
}

// CandidateRoots returns the roots that currently exist, project before
// global. It never creates directories.
func (r *Resolver) CandidateRoots() []Root {
	var roots []Root
	for _, root := range r.SearchedRoots() {
		if r.isDir(root.Path) {
			roots = append(roots, root)
		}
	}
	return roots
}

// DefaultWriteTarget returns where new material called name should be
// written: under the project root if a boundary was found, else under the
// global root. The returned directory may not exist yet.
func (r *Resolver) DefaultWriteTarget(name string) (string, Mode) {
	if p, ok := r.ProjectRoot(); ok {
		return filepath.Join(p, name), ModeProject
	}
	return filepath.Join(r.GlobalRoot(), name), ModeGlobal
}

func (r *Resolver) exists(path string) bool {
	if r.Exists != nil {
		return r.Exists(path)
	}
	return statExists(path)
}

func (r *Resolver) isDir(path string) bool {
	if r.IsDir != nil {
		return r.IsDir(path)
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func statExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
