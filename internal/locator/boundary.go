package locator

import (
	"path/filepath"
)

// FindBoundary walks upward from start and returns the nearest directory for
// which hasMarker reports true. A match equal to exclude is passed over and
// the walk continues from its parent. The walk stops at the filesystem root,
// which is never tested itself.
//
// FindBoundary never touches the filesystem; start and exclude should already
// be absolute, cleaned paths.
func FindBoundary(start string, hasMarker func(dir string) bool, exclude string) (string, bool) {
	current := filepath.Clean(start)
	if exclude != "" {
		exclude = filepath.Clean(exclude)
	}

	for {
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		if hasMarker(current) && current != exclude {
			return current, true
		}
		current = parent
	}
}

// MarkerCheck adapts an existence check into a boundary predicate that
// reports true when any of markers exists directly inside dir.
func MarkerCheck(exists func(path string) bool, markers []string) func(dir string) bool {
	return func(dir string) bool {
		for _, m := range markers {
			if exists(filepath.Join(dir, m)) {
				return true
			}
		}
		return false
	}
}
