package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/locator"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("material not found")
	// ErrInvalidName rejects names that could escape a materials root or
	// refer to a hidden entry.
	ErrInvalidName = errors.New("invalid material name")
	// ErrRemovalFailed means a found entry could not be deleted. The cause
	// has already been reported to the operator.
	ErrRemovalFailed = errors.New("material could not be deleted")
)

// NotFoundError reports a name absent from every searched root.
type NotFoundError struct {
	Name     string
	Searched []locator.Root
}

func (e *NotFoundError) Error() string {
	parts := make([]string, 0, len(e.Searched))
	for _, r := range e.Searched {
		parts = append(parts, fmt.Sprintf("%s (%s mode)", r.Path, r.Mode))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("material %q not found: no materials roots to search", e.Name)
	}
	return fmt.Sprintf("material %q not found; searched %s", e.Name, strings.Join(parts, ", "))
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
