package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveAll(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "material")
	if err := os.MkdirAll(filepath.Join(target, "nested", "deeper"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "nested", "deeper", "f.txt"), []byte("x"), 0444); err != nil {
		t.Fatal(err)
	}

	if err := RemoveAll(target); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, stat err = %v", target, err)
	}
}

func TestRemoveAllMissingPath(t *testing.T) {
	if err := RemoveAll(filepath.Join(t.TempDir(), "does-not-exist")); err != nil {
		t.Errorf("RemoveAll on missing path returned %v, want nil", err)
	}
}
