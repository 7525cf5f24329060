package inventory

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirSize returns the total size in bytes of regular files under path.
// Symlinks are not followed and contribute nothing. A directory that cannot
// be read contributes whatever was counted before the failure.
func DirSize(path string) int64 {
	var total int64
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	for _, e := range entries {
		child := filepath.Join(path, e.Name())
		switch {
		case e.Type().IsRegular():
			info, err := e.Info()
			if err != nil {
				continue
			}
			total += info.Size()
		case e.IsDir():
			total += DirSize(child)
		}
	}
	return total
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with one decimal in base-1024 units,
// e.g. "10.0 B", "1.5 KB", "2.0 TB".
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range sizeUnits {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}
