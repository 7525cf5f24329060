// Package fetch gathers source materials for a skill: it clones a
// repository, converts a documentation source to Markdown, or both, into a
// materials directory chosen by the locator.
package fetch
