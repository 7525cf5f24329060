package packager

import (
	"path"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/branding"
)

// AllowedDirs are the top-level directories whose files are archived.
var AllowedDirs = []string{"scripts", "references", "assets"}

const (
	cacheDir    = "__pycache__"
	cacheSuffix = ".pyc"
)

// Included reports whether the file at rel, a slash-separated path relative
// to the skill directory, belongs in the archive.
func Included(rel string) bool {
	rel = path.Clean(strings.TrimPrefix(rel, "./"))
	parts := strings.Split(rel, "/")
	if len(parts) == 1 {
		return parts[0] == branding.DefinitionFile()
	}
	if !allowedDir(parts[0]) {
		return false
	}
	for _, p := range parts {
		if p == cacheDir {
			return false
		}
	}
	return !strings.HasSuffix(parts[len(parts)-1], cacheSuffix)
}

func allowedDir(name string) bool {
	for _, d := range AllowedDirs {
		if d == name {
			return true
		}
	}
	return false
}
