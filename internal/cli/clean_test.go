package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillforge-labs/skillforge/internal/lifecycle"
	"github.com/skillforge-labs/skillforge/internal/locator"
)

type fixedRoots struct {
	roots []locator.Root
}

func (f fixedRoots) SearchedRoots() []locator.Root { return f.roots }
func (f fixedRoots) CandidateRoots() []locator.Root {
	var out []locator.Root
	for _, r := range f.roots {
		if info, err := os.Stat(r.Path); err == nil && info.IsDir() {
			out = append(out, r)
		}
	}
	return out
}

func setupRoots(t *testing.T, project, global []string) fixedRoots {
	t.Helper()
	tmp := t.TempDir()
	roots := fixedRoots{roots: []locator.Root{
		{Mode: locator.ModeProject, Path: filepath.Join(tmp, "proj", ".claude", "temp-materials")},
		{Mode: locator.ModeGlobal, Path: filepath.Join(tmp, "home", "skill-materials")},
	}}
	for i, names := range [][]string{project, global} {
		for _, n := range names {
			dir := filepath.Join(roots.roots[i].Path, n)
			if err := os.MkdirAll(dir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, "f"), []byte("data"), 0644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return roots
}

func newTestManager(roots fixedRoots, input string, out *bytes.Buffer) *lifecycle.Manager {
	return lifecycle.NewManager(roots, lifecycle.NewPrompter(strings.NewReader(input), out), out)
}

func TestCleanMaterials_NoRoots(t *testing.T) {
	roots := setupRoots(t, nil, nil)
	out := &bytes.Buffer{}

	if err := cleanMaterials(out, newTestManager(roots, "", out), "", cleanOptions{}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	if !strings.Contains(out.String(), "No materials directories found") {
		t.Errorf("output:\n%s", out)
	}
	for _, r := range roots.roots {
		if !strings.Contains(out.String(), r.Path) {
			t.Errorf("output does not list searched root %s", r.Path)
		}
	}
}

func TestCleanMaterials_NameNotFoundFails(t *testing.T) {
	roots := setupRoots(t, nil, []string{"present"})
	out := &bytes.Buffer{}

	err := cleanMaterials(out, newTestManager(roots, "", out), "absent", cleanOptions{force: true})
	if !errors.Is(err, lifecycle.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCleanMaterials_NameForce(t *testing.T) {
	roots := setupRoots(t, []string{"dup"}, []string{"dup"})
	out := &bytes.Buffer{}

	if err := cleanMaterials(out, newTestManager(roots, "", out), "dup", cleanOptions{force: true}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	if _, err := os.Stat(filepath.Join(roots.roots[0].Path, "dup")); !os.IsNotExist(err) {
		t.Error("project copy should be deleted")
	}
	if _, err := os.Stat(filepath.Join(roots.roots[1].Path, "dup")); err != nil {
		t.Error("global copy should remain")
	}
}

func TestCleanMaterials_NameRemovalFailureFails(t *testing.T) {
	roots := setupRoots(t, nil, []string{"stuck"})
	out := &bytes.Buffer{}
	m := newTestManager(roots, "", out)
	m.Remove = func(string) error { return os.ErrPermission }

	err := cleanMaterials(out, m, "stuck", cleanOptions{force: true})
	if !errors.Is(err, lifecycle.ErrRemovalFailed) {
		t.Fatalf("err = %v, want ErrRemovalFailed", err)
	}
	if !strings.Contains(out.String(), "Error deleting stuck") {
		t.Errorf("output:\n%s", out)
	}
}

func TestCleanMaterials_NameDeclinedSucceeds(t *testing.T) {
	roots := setupRoots(t, nil, []string{"keep"})
	out := &bytes.Buffer{}

	if err := cleanMaterials(out, newTestManager(roots, "n\n", out), "keep", cleanOptions{}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	if _, err := os.Stat(filepath.Join(roots.roots[1].Path, "keep")); err != nil {
		t.Error("declined entry should remain")
	}
}

func TestCleanMaterials_List(t *testing.T) {
	roots := setupRoots(t, []string{"p"}, []string{"g1", "g2"})
	out := &bytes.Buffer{}

	if err := cleanMaterials(out, newTestManager(roots, "", out), "", cleanOptions{list: true}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	for _, want := range []string{"1. p", "2. g1", "3. g2", "Total: 3 materials"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCleanMaterials_AllRequiresPhrase(t *testing.T) {
	roots := setupRoots(t, []string{"p"}, []string{"g"})
	out := &bytes.Buffer{}

	if err := cleanMaterials(out, newTestManager(roots, "yes\n", out), "", cleanOptions{all: true}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	if _, err := os.Stat(filepath.Join(roots.roots[1].Path, "g")); err != nil {
		t.Error("nothing should be deleted without the exact phrase")
	}

	out.Reset()
	if err := cleanMaterials(out, newTestManager(roots, "DELETE ALL\n", out), "", cleanOptions{all: true}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted 2/2 materials") {
		t.Errorf("output:\n%s", out)
	}
}

func TestCleanMaterials_NameWithFlagsRejected(t *testing.T) {
	roots := setupRoots(t, nil, []string{"g"})
	out := &bytes.Buffer{}
	if err := cleanMaterials(out, newTestManager(roots, "", out), "g", cleanOptions{all: true}); err == nil {
		t.Fatal("expected error for name combined with --all")
	}
}

func TestCleanMaterials_Interactive(t *testing.T) {
	roots := setupRoots(t, nil, []string{"alpha", "beta"})
	out := &bytes.Buffer{}

	if err := cleanMaterials(out, newTestManager(roots, "2\ny\nquit\n", out), "", cleanOptions{}); err != nil {
		t.Fatalf("cleanMaterials: %v", err)
	}
	if _, err := os.Stat(filepath.Join(roots.roots[1].Path, "beta")); !os.IsNotExist(err) {
		t.Error("beta should be deleted")
	}
	if _, err := os.Stat(filepath.Join(roots.roots[1].Path, "alpha")); err != nil {
		t.Error("alpha should remain")
	}
}

func TestListMaterials_JSON(t *testing.T) {
	roots := setupRoots(t, []string{"p"}, []string{"g"})
	out := &bytes.Buffer{}

	if err := listMaterials(out, roots, true); err != nil {
		t.Fatalf("listMaterials: %v", err)
	}
	var got []listEntry
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].Mode != "project" || got[1].Mode != "global" || got[0].Size != 4 {
		t.Errorf("entries = %+v", got)
	}
}

func TestListMaterials_EmptyJSONIsArray(t *testing.T) {
	roots := setupRoots(t, nil, nil)
	out := &bytes.Buffer{}
	if err := listMaterials(out, roots, true); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("output = %q, want []", out)
	}
}
