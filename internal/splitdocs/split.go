package splitdocs

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillforge-labs/skillforge/internal/logfields"
)

// SourcePrefix starts the line naming the page that the following lines
// came from.
const SourcePrefix = "Source: "

// Section is one output file.
type Section struct {
	File    string
	Path    string
	Lines   int
	Bytes   int64
	Skipped bool // no lines matched
}

// Split reads r and writes one file per rule into outDir. A Source line
// selects the first rule with a matching pattern, and it and the lines after
// it belong to that rule until the next Source line. Lines before the first
// Source line, or under a source no rule matches, are dropped. Sections are
// returned in rule order.
func Split(r io.Reader, rules []Rule, outDir string) ([]Section, error) {
	compiled, err := compile(rules)
	if err != nil {
		return nil, err
	}

	buffers := make([]strings.Builder, len(compiled))
	lineCounts := make([]int, len(compiled))
	current := -1

	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			if strings.HasPrefix(line, SourcePrefix) {
				current = match(compiled, strings.TrimSpace(line))
			}
			if current >= 0 {
				buffers[current].WriteString(line)
				lineCounts[current]++
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading input: %w", readErr)
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	sections := make([]Section, 0, len(compiled))
	for i, cr := range compiled {
		s := Section{File: cr.file, Path: filepath.Join(outDir, cr.file), Lines: lineCounts[i]}
		if lineCounts[i] == 0 {
			s.Skipped = true
			sections = append(sections, s)
			continue
		}
		content := buffers[i].String()
		if err := os.WriteFile(s.Path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", s.Path, err)
		}
		s.Bytes = int64(len(content))
		slog.Debug("Wrote section", logfields.File(s.File), logfields.Size(s.Bytes), logfields.Count(s.Lines))
		sections = append(sections, s)
	}
	return sections, nil
}

func match(rules []compiledRule, source string) int {
	for i, cr := range rules {
		for _, re := range cr.patterns {
			if re.MatchString(source) {
				return i
			}
		}
	}
	return -1
}
