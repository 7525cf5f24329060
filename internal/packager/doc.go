// Package packager builds distributable zip archives from skill directories.
//
// Only the definition file and files under allow-listed top-level
// directories are archived. Everything else in the directory is reported as
// skipped so the author can see what was left out.
package packager
