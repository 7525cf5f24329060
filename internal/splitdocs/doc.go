// Package splitdocs splits an aggregated documentation dump, such as an
// llms-full.txt file, into section files chosen by YAML rules.
package splitdocs
