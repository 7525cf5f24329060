package inventory

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// DirStats summarizes the contents of a fetched material directory.
type DirStats struct {
	TotalFiles int
	Python     int
	Markdown   int
	JavaScript int // .js, .jsx, .ts and .tsx
	JSON       int
	TotalSize  int64
}

// Stats walks dir and counts files by family, skipping any .git subtree.
func Stats(dir string) DirStats {
	var s DirStats
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}

		s.TotalFiles++
		if info, infoErr := d.Info(); infoErr == nil && d.Type().IsRegular() {
			s.TotalSize += info.Size()
		}

		switch ext := strings.ToLower(filepath.Ext(d.Name())); ext {
		case ".py":
			s.Python++
		case ".md":
			s.Markdown++
		case ".js", ".jsx", ".ts", ".tsx":
			s.JavaScript++
		case ".json":
			s.JSON++
		}
		return nil
	})
	return s
}
