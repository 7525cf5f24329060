package platform

import (
	"fmt"
	"os"
	"runtime"
)

// RemoveAll recursively deletes path. A missing path is not an error.
// On Windows a failed first attempt is retried once after MakeWritable,
// which covers read-only object files inside cloned repositories.
func RemoveAll(path string) error {
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}
	if runtime.GOOS != "windows" {
		return err
	}

	MakeWritable(path)
	if retryErr := os.RemoveAll(path); retryErr != nil {
		return fmt.Errorf("removing %s after clearing read-only bits: %w", path, retryErr)
	}
	return nil
}
