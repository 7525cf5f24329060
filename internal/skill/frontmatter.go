package skill

import (
	"bytes"
	"errors"
)

var (
	// ErrNoFrontmatter is returned when a document does not open with "---".
	ErrNoFrontmatter = errors.New("no YAML frontmatter found")
	// ErrUnclosedFrontmatter is returned when the closing "---" is missing.
	ErrUnclosedFrontmatter = errors.New("frontmatter is missing its closing delimiter")
)

// SplitFrontmatter separates `---` delimited YAML frontmatter from the
// Markdown body. CRLF line endings are accepted.
func SplitFrontmatter(content []byte) (frontmatter, body []byte, err error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	const delim = "---\n"
	if !bytes.HasPrefix(content, []byte(delim)) {
		return nil, content, ErrNoFrontmatter
	}
	rest := content[len(delim):]
	if bytes.HasPrefix(rest, []byte(delim)) {
		return []byte{}, rest[len(delim):], nil
	}

	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// Closing delimiter as the final line without a newline.
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("---")], []byte{}, nil
		}
		return nil, nil, ErrUnclosedFrontmatter
	}
	return rest[:idx+1], rest[idx+1+len(delim):], nil
}
