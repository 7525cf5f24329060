package fetch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge-labs/skillforge/internal/clone"
	"github.com/skillforge-labs/skillforge/internal/lifecycle"
	"github.com/skillforge-labs/skillforge/internal/llmstxt"
	"github.com/skillforge-labs/skillforge/internal/locator"
)

type fakeTargets struct {
	root     string
	mode     locator.Mode
	boundary string
}

func (f fakeTargets) Boundary() (string, bool) { return f.boundary, f.boundary != "" }
func (f fakeTargets) DefaultWriteTarget(name string) (string, locator.Mode) {
	return filepath.Join(f.root, name), f.mode
}

type fakeCloner struct {
	calls []clone.Options
	urls  []string
	err   error
}

func (f *fakeCloner) Clone(ctx context.Context, url, dest string, opts clone.Options) error {
	f.calls = append(f.calls, opts)
	f.urls = append(f.urls, url)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(filepath.Join(dest, "main.py"), []byte("print('x')\n"), 0644)
}

type fakeConverter struct {
	markdown string
	err      error
	sources  []string
}

func (f *fakeConverter) Convert(ctx context.Context, source string) (string, error) {
	f.sources = append(f.sources, source)
	return f.markdown, f.err
}

type fakeDetector struct {
	hit   *llmstxt.Hit
	calls int
}

func (f *fakeDetector) Detect(ctx context.Context, baseURL string) (*llmstxt.Hit, error) {
	f.calls++
	return f.hit, nil
}

type harness struct {
	root      string
	out       *bytes.Buffer
	cloner    *fakeCloner
	converter *fakeConverter
	detector  *fakeDetector
	fetcher   *Fetcher
}

func newHarness(t *testing.T, mode locator.Mode, input string) *harness {
	t.Helper()
	tmp := t.TempDir()
	h := &harness{
		root:      filepath.Join(tmp, "materials"),
		out:       &bytes.Buffer{},
		cloner:    &fakeCloner{},
		converter: &fakeConverter{markdown: "# Title\n\n## Install\n\ntext\n\n## Usage\n"},
		detector:  &fakeDetector{},
	}
	targets := fakeTargets{root: h.root, mode: mode}
	if mode == locator.ModeProject {
		targets.boundary = tmp
	}
	h.fetcher = &Fetcher{
		Targets:   targets,
		Cloner:    h.cloner,
		Converter: h.converter,
		Detector:  h.detector,
		Prompter:  lifecycle.NewPrompter(strings.NewReader(input), h.out),
		Out:       h.out,
		HomeDir:   filepath.Join(tmp, "home"),
	}
	return h
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    string
		wantErr bool
	}{
		{"nothing", Request{}, "", true},
		{"docs without name", Request{DocsSource: "https://d"}, "", true},
		{"git only", Request{GitURL: "https://github.com/u/tool.git"}, "tool", false},
		{"docs with name", Request{DocsSource: "https://d", Name: "guide"}, "guide", false},
		{"git names the directory", Request{GitURL: "https://github.com/u/tool", DocsSource: "https://d", Name: "guide"}, "tool", false},
		{"hidden name", Request{DocsSource: "https://d", Name: ".secret"}, "", true},
		{"path name", Request{DocsSource: "https://d", Name: "../escape"}, "", true},
		{"negative depth", Request{GitURL: "https://github.com/u/tool", Depth: -1}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_CloneIntoProjectRoot(t *testing.T) {
	h := newHarness(t, locator.ModeProject, "")

	res, err := h.fetcher.Run(context.Background(), Request{
		GitURL:       "https://github.com/user/awesome-tool.git",
		Depth:        1,
		Branch:       "main",
		SingleBranch: true,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(h.root, "awesome-tool"), res.Dir)
	assert.Equal(t, locator.ModeProject, res.Mode)
	assert.True(t, res.Cloned)
	assert.Equal(t, []clone.Options{{Depth: 1, Branch: "main", SingleBranch: true}}, h.cloner.calls)
	assert.Equal(t, 1, res.Stats.Python)
	assert.Contains(t, h.out.String(), "Project mode detected")
	assert.Contains(t, h.out.String(), "Python files: 1")
	assert.Zero(t, h.detector.calls)
}

func TestRun_DocsIntoGlobalRoot(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "")
	h.detector.hit = &llmstxt.Hit{URL: "https://docs.example.com/llms-full.txt", Variant: "full", Filename: "llms-full.txt"}

	res, err := h.fetcher.Run(context.Background(), Request{DocsSource: "https://docs.example.com/guide", Name: "example"})
	require.NoError(t, err)

	assert.Equal(t, locator.ModeGlobal, res.Mode)
	assert.False(t, res.Cloned)
	require.Equal(t, filepath.Join(h.root, "example", DocsSubdir, "example.md"), res.DocsFile)
	data, err := os.ReadFile(res.DocsFile)
	require.NoError(t, err)
	assert.Equal(t, h.converter.markdown, string(data))
	assert.Len(t, res.Headings, 3)
	assert.Equal(t, h.detector.hit, res.LLMSHit)

	out := h.out.String()
	assert.Contains(t, out, "Global mode")
	assert.Contains(t, out, "https://docs.example.com/llms-full.txt")
	assert.Contains(t, out, "Documentation sections: 3")
}

func TestRun_TextSourceSkipsDetection(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "")

	_, err := h.fetcher.Run(context.Background(), Request{DocsSource: "https://docs.example.com/llms.txt", Name: "example"})
	require.NoError(t, err)
	assert.Zero(t, h.detector.calls)
}

func TestRun_ExplicitOutputIsManual(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "")

	res, err := h.fetcher.Run(context.Background(), Request{GitURL: "https://github.com/u/repo", Output: "~/custom/repo"})
	require.NoError(t, err)
	assert.Equal(t, locator.ModeManual, res.Mode)
	assert.Equal(t, filepath.Join(h.fetcher.HomeDir, "custom", "repo"), res.Dir)
	assert.NotContains(t, h.out.String(), "Global mode")
}

func TestRun_ExistingOutputDeclined(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "n\n")
	existing := filepath.Join(h.root, "repo")
	require.NoError(t, os.MkdirAll(existing, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(existing, "keep.txt"), []byte("keep"), 0644))

	res, err := h.fetcher.Run(context.Background(), Request{GitURL: "https://github.com/u/repo"})
	require.NoError(t, err)
	assert.True(t, res.Aborted)
	assert.Empty(t, h.cloner.calls)
	assert.FileExists(t, filepath.Join(existing, "keep.txt"))
	assert.Contains(t, h.out.String(), "Aborted")
}

func TestRun_ExistingOutputConfirmed(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "y\n")
	require.NoError(t, os.MkdirAll(filepath.Join(h.root, "repo"), 0755))

	res, err := h.fetcher.Run(context.Background(), Request{GitURL: "https://github.com/u/repo"})
	require.NoError(t, err)
	assert.False(t, res.Aborted)
	assert.Len(t, h.cloner.calls, 1)
}

func TestRun_CleanRemovesExisting(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "")
	existing := filepath.Join(h.root, "repo")
	require.NoError(t, os.MkdirAll(existing, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(existing, "stale.txt"), []byte("old"), 0644))

	_, err := h.fetcher.Run(context.Background(), Request{GitURL: "https://github.com/u/repo", Clean: true})
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(existing, "stale.txt"))
	assert.FileExists(t, filepath.Join(existing, "main.py"))
}

func TestRun_CloneFailureIsFatal(t *testing.T) {
	h := newHarness(t, locator.ModeGlobal, "")
	h.cloner.err = errors.New("exit status 128")

	_, err := h.fetcher.Run(context.Background(), Request{GitURL: "https://github.com/u/repo", DocsSource: "https://d/x", Name: "x"})
	var ce *CollaboratorError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "clone", ce.Op)
	assert.Empty(t, h.converter.sources, "docs are not fetched after a failed clone")
}

func TestRun_DocsFailure(t *testing.T) {
	t.Run("fatal without clone", func(t *testing.T) {
		h := newHarness(t, locator.ModeGlobal, "")
		h.converter.err = errors.New("boom")

		_, err := h.fetcher.Run(context.Background(), Request{DocsSource: "/tmp/x.md", Name: "x"})
		var ce *CollaboratorError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "docs", ce.Op)
	})

	t.Run("warning after clone", func(t *testing.T) {
		h := newHarness(t, locator.ModeGlobal, "")
		h.converter.err = errors.New("boom")

		res, err := h.fetcher.Run(context.Background(), Request{GitURL: "https://github.com/u/repo", DocsSource: "/tmp/x.md", Name: "x"})
		require.NoError(t, err)
		assert.True(t, res.Cloned)
		assert.Error(t, res.DocsErr)
		assert.Contains(t, h.out.String(), "Documentation fetch failed, but repository was cloned")
	})
}

func TestOutline(t *testing.T) {
	got := Outline([]byte("# One\n\ntext\n\n## Two *em*\n\nSetext\n------\n\n```\n# not a heading\n```\n"))
	require.Len(t, got, 3)
	assert.Equal(t, Heading{Level: 1, Text: "One"}, got[0])
	assert.Equal(t, 2, got[1].Level)
	assert.Equal(t, "Two *em*", got[1].Text)
	assert.Equal(t, Heading{Level: 2, Text: "Setext"}, got[2])
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", "x"), expandHome("~/x", "/home/u"))
	assert.Equal(t, "/home/u", expandHome("~", "/home/u"))
	assert.Equal(t, "/abs/x", expandHome("/abs/x", "/home/u"))
	assert.Equal(t, "~user/x", expandHome("~user/x", "/home/u"))
}
