// Package llmstxt probes documentation sites for llms.txt indexes and
// downloads them.
//
// See https://llmstxt.org/ for the convention.
package llmstxt
