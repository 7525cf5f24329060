// Package convert turns documentation sources into Markdown.
//
// HTML pages are reduced to their main content and converted with
// html-to-markdown. Markdown and plain text pass through unchanged. Binary
// document formats are rejected with ErrUnsupportedFormat.
package convert
