package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/inventory"
	"github.com/skillforge-labs/skillforge/internal/locator"
	"github.com/skillforge-labs/skillforge/internal/logfields"
	"github.com/skillforge-labs/skillforge/internal/platform"
)

// BulkPhrase must be typed exactly to confirm deleting every entry at once.
const BulkPhrase = "DELETE ALL"

// RootSource supplies the materials roots for one invocation.
// *locator.Resolver satisfies it.
type RootSource interface {
	CandidateRoots() []locator.Root
	SearchedRoots() []locator.Root
}

// Manager runs deletion operations and reports every outcome to Out.
type Manager struct {
	Roots    RootSource
	Prompter Prompter
	Out      io.Writer
	// Remove deletes a directory tree. Defaults to platform.RemoveAll.
	Remove func(path string) error
}

// BatchResult summarizes a DeleteAll call.
type BatchResult struct {
	Requested int
	Deleted   int
	Cancelled bool
	Failed    []string
}

// NewManager returns a Manager that removes entries with platform.RemoveAll.
func NewManager(roots RootSource, prompter Prompter, out io.Writer) *Manager {
	return &Manager{
		Roots:    roots,
		Prompter: prompter,
		Out:      out,
		Remove:   platform.RemoveAll,
	}
}

// Inventory lists the entries across the current candidate roots.
func (m *Manager) Inventory() ([]inventory.Entry, error) {
	return inventory.List(m.Roots.CandidateRoots())
}

// DeleteEntry removes e after an explicit confirmation naming the entry and
// its size, unless skipConfirmation is set. It reports what happened and
// returns true only when the directory was removed.
func (m *Manager) DeleteEntry(e inventory.Entry, skipConfirmation bool) bool {
	return m.deleteEntry(e, skipConfirmation) == removed
}

type outcome int

const (
	declined outcome = iota
	removed
	failed
)

func (m *Manager) deleteEntry(e inventory.Entry, skipConfirmation bool) outcome {
	if !skipConfirmation {
		fmt.Fprintf(m.Out, "\n⚠️  About to delete: %s (%s)\n", e.Name, e.SizeString())
		ok, err := m.Prompter.Confirm(fmt.Sprintf("   Delete %s (%s)? (y/n): ", e.Name, e.SizeString()))
		if err != nil {
			fmt.Fprintf(m.Out, "   Skipped %s: reading confirmation: %v\n", e.Name, err)
			return declined
		}
		if !ok {
			fmt.Fprintf(m.Out, "   Skipped %s\n", e.Name)
			return declined
		}
	}

	// Entries come from a snapshot; the directory may be gone by now.
	if _, err := os.Lstat(e.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(m.Out, "   ✗ %s no longer exists\n", e.Name)
		} else {
			fmt.Fprintf(m.Out, "   ✗ Error deleting %s: %v\n", e.Name, err)
		}
		slog.Debug("Entry unavailable", logfields.Name(e.Name), logfields.Path(e.Path), logfields.Error(err))
		return failed
	}

	remove := m.Remove
	if remove == nil {
		remove = platform.RemoveAll
	}
	if err := remove(e.Path); err != nil {
		slog.Debug("Removal failed", logfields.Name(e.Name), logfields.Path(e.Path), logfields.Error(err))
		fmt.Fprintf(m.Out, "   ✗ Error deleting %s: %v\n", e.Name, err)
		return failed
	}

	slog.Debug("Removed material", logfields.Name(e.Name), logfields.Path(e.Path), logfields.Mode(e.Mode.String()), logfields.Size(e.Size))
	fmt.Fprintf(m.Out, "   ✓ Deleted: %s (%s)\n", e.Name, e.SizeString())
	return removed
}

// DeleteAll removes every entry after a single compound confirmation: the
// operator must type BulkPhrase exactly, otherwise nothing is deleted.
// Individual failures are reported and counted but never stop the batch.
func (m *Manager) DeleteAll(entries []inventory.Entry, skipConfirmation bool) BatchResult {
	result := BatchResult{Requested: len(entries)}
	if len(entries) == 0 {
		fmt.Fprintln(m.Out, "Nothing to clean.")
		return result
	}

	if !skipConfirmation {
		fmt.Fprintf(m.Out, "\n⚠️  WARNING: This will delete ALL %d materials (%s)!\n",
			len(entries), inventory.FormatSize(inventory.Total(entries)))
		answer, err := m.Prompter.Ask(fmt.Sprintf("   Type '%s' to confirm: ", BulkPhrase))
		if err != nil || answer != BulkPhrase {
			fmt.Fprintln(m.Out, "   Cancelled")
			result.Cancelled = true
			return result
		}
	}

	for _, e := range entries {
		if m.DeleteEntry(e, true) {
			result.Deleted++
		} else {
			result.Failed = append(result.Failed, e.Name)
		}
	}

	fmt.Fprintf(m.Out, "\n✓ Deleted %d/%d materials\n", result.Deleted, result.Requested)
	return result
}

// DeleteByName deletes the first entry called name across the candidate
// roots in order, so a project entry shadows a global one of the same name.
// It returns a *NotFoundError naming every searched root when no root holds
// the entry, and ErrRemovalFailed when the entry was found but not removed.
// A declined confirmation is (false, nil).
func (m *Manager) DeleteByName(name string, skipConfirmation bool) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}

	roots := m.Roots.CandidateRoots()
	for _, root := range roots {
		entry, ok := inventory.Lookup(root, name)
		if !ok {
			continue
		}
		fmt.Fprintf(m.Out, "   Found in: %s mode - %s\n", root.Mode, root.Path)
		switch m.deleteEntry(entry, skipConfirmation) {
		case removed:
			return true, nil
		case failed:
			return false, fmt.Errorf("%w: %s", ErrRemovalFailed, entry.Path)
		}
		return false, nil
	}

	searched := roots
	if len(searched) == 0 {
		searched = m.Roots.SearchedRoots()
	}
	return false, &NotFoundError{Name: name, Searched: searched}
}

// ValidateName rejects empty names, hidden names and anything that is not a
// single path element.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case inventory.IsHidden(name):
		return fmt.Errorf("%w: %q is hidden", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || name != filepath.Base(name) || name == "..":
		return fmt.Errorf("%w: %q must be a single directory name", ErrInvalidName, name)
	}
	return nil
}
