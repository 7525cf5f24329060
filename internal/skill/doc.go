// Package skill validates skill definition directories.
//
// A skill directory holds a SKILL.md whose YAML frontmatter is checked
// against an embedded JSON schema before the directory may be packaged.
package skill
