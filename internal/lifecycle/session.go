package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/inventory"
	"github.com/skillforge-labs/skillforge/internal/locator"
)

// Interactive keywords.
const (
	KeywordQuit = "quit"
	KeywordAll  = "all"
)

// Session is one interactive cleanup run over a fixed inventory snapshot.
// The snapshot is never re-scanned, so an index keeps pointing at the same
// entry for the whole session.
type Session struct {
	m       *Manager
	roots   []locator.Root
	entries []inventory.Entry
	deleted []bool
}

// NewSession snapshots entries for an interactive run. roots is used only
// for display headers.
func NewSession(m *Manager, entries []inventory.Entry, roots []locator.Root) *Session {
	snapshot := make([]inventory.Entry, len(entries))
	copy(snapshot, entries)
	return &Session{
		m:       m,
		roots:   roots,
		entries: snapshot,
		deleted: make([]bool, len(snapshot)),
	}
}

// Entries returns the session snapshot.
func (s *Session) Entries() []inventory.Entry {
	return s.entries
}

// Run prints the indexed inventory and processes selections until the
// operator quits, chooses the bulk keyword, or input ends. It returns the
// number of entries deleted during the session.
func (s *Session) Run() (int, error) {
	out := s.m.Out
	PrintList(out, s.entries, s.roots)
	if len(s.entries) == 0 {
		return 0, nil
	}

	fmt.Fprintln(out, "\nOptions:")
	fmt.Fprintf(out, "   1-%d: Delete a specific material\n", len(s.entries))
	fmt.Fprintf(out, "   '%s': Delete all materials\n", KeywordAll)
	fmt.Fprintf(out, "   '%s': Exit\n", KeywordQuit)

	deleted := 0
	for {
		answer, err := s.m.Prompter.Ask("\nYour choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				s.printExit(out, deleted)
				return deleted, nil
			}
			return deleted, fmt.Errorf("reading selection: %w", err)
		}

		choice := strings.ToLower(strings.TrimSpace(answer))
		switch choice {
		case KeywordQuit:
			s.printExit(out, deleted)
			return deleted, nil
		case KeywordAll:
			result := s.m.DeleteAll(s.pending(), false)
			return deleted + result.Deleted, nil
		}

		n, convErr := strconv.Atoi(choice)
		if convErr != nil {
			fmt.Fprintf(out, "   Invalid input. Enter 1-%d, '%s' or '%s'\n", len(s.entries), KeywordAll, KeywordQuit)
			continue
		}
		idx := n - 1
		if idx < 0 || idx >= len(s.entries) {
			fmt.Fprintf(out, "   Invalid index. Choose 1-%d\n", len(s.entries))
			continue
		}
		if s.deleted[idx] {
			fmt.Fprintf(out, "   %s was already deleted in this session\n", s.entries[idx].Name)
			continue
		}
		if s.m.DeleteEntry(s.entries[idx], false) {
			s.deleted[idx] = true
			deleted++
		}
	}
}

// pending returns the snapshot entries not yet deleted in this session.
func (s *Session) pending() []inventory.Entry {
	var out []inventory.Entry
	for i, e := range s.entries {
		if !s.deleted[i] {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) printExit(w io.Writer, deleted int) {
	if deleted == 0 {
		fmt.Fprintln(w, "Exiting without changes")
		return
	}
	fmt.Fprintf(w, "Exiting (%d deleted)\n", deleted)
}
