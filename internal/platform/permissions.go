package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Chmod sets file permissions. On Windows this only toggles the read-only
// attribute because Windows does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" && mode&0200 == 0 {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeWritable walks root and adds the owner write bit to every file and
// directory it can reach. Errors on individual entries are ignored.
func MakeWritable(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		if info.Mode().Perm()&0200 == 0 {
			_ = Chmod(path, info.Mode().Perm()|0200)
		}
		return nil
	})
}
