//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillforge-labs/skillforge/internal/lifecycle"
	"github.com/skillforge-labs/skillforge/internal/locator"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // stands in for $HOME; global materials live below it
	ConfigDir  string // SKILLFORGE_CONFIG_DIR
	ProjectDir string // a mock project with a .git marker
	WorkDir    string // a nested directory inside the project
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ConfigDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	env.WorkDir = filepath.Join(env.ProjectDir, "src", "pkg")

	t.Setenv("SKILLFORGE_CONFIG_DIR", env.ConfigDir)
	t.Setenv("SKILLFORGE_GLOBAL_MATERIALS", "")
	t.Setenv("SKILLFORGE_SELF_DIR", "")

	for _, dir := range []string{filepath.Join(env.ProjectDir, ".git"), env.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	return env
}

// resolver returns a locator rooted at start with the test home directory.
func (e *testEnv) resolver(start string) *locator.Resolver {
	return &locator.Resolver{
		StartDir: start,
		HomeDir:  e.HomeDir,
		Layout:   locator.DefaultLayout(),
	}
}

func (e *testEnv) projectRoot() string {
	return filepath.Join(e.ProjectDir, ".claude", "temp-materials")
}

func (e *testEnv) globalRoot() string {
	return filepath.Join(e.HomeDir, "skill-materials")
}

// manager returns a lifecycle manager answering prompts from input.
func manager(r *locator.Resolver, input string) (*lifecycle.Manager, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return lifecycle.NewManager(r, lifecycle.NewPrompter(strings.NewReader(input), out), out), out
}

// writeMaterial creates root/name with a single file of size bytes.
func writeMaterial(t *testing.T, root, name string, size int) {
	t.Helper()
	writeFile(t, filepath.Join(root, name, "data.bin"), strings.Repeat("x", size))
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
