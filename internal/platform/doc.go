// Package platform provides cross-platform filesystem operations used when
// destroying fetched materials. On Unix systems it uses os.RemoveAll and chmod
// directly. On Windows, where git marks pack files read-only, removal retries
// after clearing the read-only bit on every file in the tree.
package platform
