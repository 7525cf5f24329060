package inventory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/locator"
	"github.com/skillforge-labs/skillforge/internal/logfields"
)

// HiddenPrefix marks entries excluded from every listing and deletion flow.
const HiddenPrefix = "."

// Entry is one material directory directly inside a root.
type Entry struct {
	Name string
	Path string
	Size int64
	Mode locator.Mode
}

// SizeString returns the entry size formatted for display.
func (e Entry) SizeString() string {
	return FormatSize(e.Size)
}

// IsHidden reports whether name is excluded by the hidden-entry convention.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// List returns every visible entry under roots, preserving root order and
// then name order within each root. Entries with the same name in different
// roots are reported separately. A root that vanished since it was resolved
// is skipped silently; a root that exists but cannot be read is skipped and
// reported in the returned error alongside the entries that were collected.
func List(roots []locator.Root) ([]Entry, error) {
	entries := []Entry{}
	var unreadable []string

	for _, root := range roots {
		dirEntries, err := os.ReadDir(root.Path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			slog.Warn("Skipping unreadable materials root", logfields.Path(root.Path), logfields.Error(err))
			unreadable = append(unreadable, root.Path)
			continue
		}

		// os.ReadDir returns entries sorted by filename.
		for _, d := range dirEntries {
			if !d.IsDir() || IsHidden(d.Name()) {
				continue
			}
			path := filepath.Join(root.Path, d.Name())
			entries = append(entries, Entry{
				Name: d.Name(),
				Path: path,
				Size: DirSize(path),
				Mode: root.Mode,
			})
		}
	}

	if len(unreadable) > 0 {
		return entries, fmt.Errorf("reading materials roots: %s", strings.Join(unreadable, ", "))
	}
	return entries, nil
}

// Lookup returns the entry called name inside root, if root holds a visible
// directory of that name.
func Lookup(root locator.Root, name string) (Entry, bool) {
	if IsHidden(name) {
		return Entry{}, false
	}
	path := filepath.Join(root.Path, name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return Entry{}, false
	}
	return Entry{Name: name, Path: path, Size: DirSize(path), Mode: root.Mode}, true
}

// Total returns the combined size of entries.
func Total(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}

// ByMode returns the entries tagged with mode, in their original order.
func ByMode(entries []Entry, mode locator.Mode) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Mode == mode {
			out = append(out, e)
		}
	}
	return out
}
