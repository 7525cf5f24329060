package lifecycle

import (
	"fmt"
	"io"

	"github.com/skillforge-labs/skillforge/internal/inventory"
	"github.com/skillforge-labs/skillforge/internal/locator"
)

// PrintList writes entries grouped by mode with a contiguous 1-based index
// spanning both groups, followed by a total. roots supplies the header paths.
func PrintList(w io.Writer, entries []inventory.Entry, roots []locator.Root) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo materials found.")
		return
	}

	fmt.Fprintf(w, "\nSource materials:\n\n")

	index := 1
	for _, mode := range []locator.Mode{locator.ModeProject, locator.ModeGlobal} {
		group := inventory.ByMode(entries, mode)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s mode (%s):\n", titleMode(mode), rootPath(roots, mode))
		for _, e := range group {
			fmt.Fprintf(w, "     %d. %-28s %10s\n", index, e.Name, e.SizeString())
			index++
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Total: %d materials, %s\n", len(entries), inventory.FormatSize(inventory.Total(entries)))
}

// PrintNoRoots explains that no materials root exists and lists where the
// tool looked.
func PrintNoRoots(w io.Writer, searched []locator.Root) {
	fmt.Fprintln(w, "\nNo materials directories found.")
	fmt.Fprintln(w, "   Checked:")
	for _, r := range searched {
		fmt.Fprintf(w, "   - %s (%s mode)\n", r.Path, r.Mode)
	}
}

func titleMode(m locator.Mode) string {
	switch m {
	case locator.ModeProject:
		return "Project"
	case locator.ModeGlobal:
		return "Global"
	default:
		return m.String()
	}
}

func rootPath(roots []locator.Root, mode locator.Mode) string {
	for _, r := range roots {
		if r.Mode == mode {
			return r.Path
		}
	}
	return "?"
}
