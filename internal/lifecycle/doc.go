// Package lifecycle performs guarded, irreversible deletion of material
// entries. Single deletions ask for a yes/no answer naming the entry and its
// size; bulk deletion demands the literal phrase "DELETE ALL". Removal errors
// are reported per entry and never abort a batch. The interactive Session
// works from an inventory snapshot taken once, so indexes stay stable while
// entries are deleted underneath it.
package lifecycle
