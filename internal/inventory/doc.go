// Package inventory enumerates material entries across the candidate roots
// returned by the locator, sizing each one with a recursive walk that does not
// follow symlinks and tolerates unreadable subtrees.
package inventory
