package clone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/skillforge-labs/skillforge/internal/logfields"
)

// Options controls how a repository is cloned. Zero values mean full
// history of the default branch.
type Options struct {
	Depth        int
	Branch       string
	SingleBranch bool
}

// Cloner clones url into dest.
type Cloner interface {
	Clone(ctx context.Context, url, dest string, opts Options) error
}

// Default returns GitCLI when git is on PATH and GoGit otherwise.
func Default(stdout, stderr io.Writer) Cloner {
	if _, err := exec.LookPath("git"); err == nil {
		return &GitCLI{Stdout: stdout, Stderr: stderr}
	}
	slog.Debug("git not found on PATH, using go-git")
	return &GoGit{Progress: stdout}
}

// GitCLI runs `git clone`. Success is decided solely by the exit status.
type GitCLI struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Args returns the git arguments for cloning url into dest.
func Args(url, dest string, opts Options) []string {
	args := []string{"clone"}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.SingleBranch {
		args = append(args, "--single-branch")
	}
	return append(args, url, dest)
}

func (g *GitCLI) Clone(ctx context.Context, url, dest string, opts Options) error {
	args := Args(url, dest, opts)
	slog.Debug("Running git", slog.String("args", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = g.Stdout
	cmd.Stderr = g.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("git clone exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("running git clone: %w", err)
	}
	return nil
}

// GoGit clones in-process with go-git.
type GoGit struct {
	Progress io.Writer
}

func (g *GoGit) Clone(ctx context.Context, url, dest string, opts Options) error {
	cloneOptions := &git.CloneOptions{
		URL:          url,
		Progress:     g.Progress,
		Depth:        opts.Depth,
		SingleBranch: opts.SingleBranch,
	}
	if opts.Branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}

	repo, err := git.PlainCloneContext(ctx, dest, false, cloneOptions)
	if err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	if ref, err := repo.Head(); err == nil {
		slog.Debug("Repository cloned", logfields.URL(url), logfields.Path(dest), slog.String("commit", shortHash(ref.Hash())))
	}
	return nil
}

// RepoName derives a directory name from a repository URL: the last path
// element without a trailing "/" or ".git".
func RepoName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	} else if i := strings.LastIndex(rawURL, ":"); i >= 0 {
		// scp-like syntax: git@host:owner/repo.git
		p = rawURL[i+1:]
	}
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimSuffix(p, ".git")
}

// HeadCommit returns the abbreviated HEAD commit of the repository at dir.
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	return shortHash(ref.Hash()), nil
}

// IsRepository reports whether dir holds a git repository.
func IsRepository(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:8]
}
