// Package clone fetches git repositories into materials directories.
//
// The git binary is used when it is on PATH. Otherwise an in-process go-git
// clone is used.
package clone
