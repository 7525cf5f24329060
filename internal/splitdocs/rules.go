package splitdocs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// Rule routes pages whose source matches any pattern into File.
type Rule struct {
	File     string   `yaml:"file"`
	Patterns []string `yaml:"patterns"`
}

type compiledRule struct {
	file     string
	patterns []*regexp.Regexp
}

// LoadRules reads a YAML list of rules from path.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes a YAML list of rules.
func ParseRules(data []byte) ([]Rule, error) {
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("parsing rules: no rules defined")
	}
	return rules, nil
}

func compile(rules []Rule) ([]compiledRule, error) {
	seen := make(map[string]bool, len(rules))
	out := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if r.File == "" || r.File != filepath.Base(r.File) || r.File == "." || r.File == ".." {
			return nil, fmt.Errorf("rule %d: file %q must be a plain file name", i+1, r.File)
		}
		if seen[r.File] {
			return nil, fmt.Errorf("rule %d: duplicate file %q", i+1, r.File)
		}
		seen[r.File] = true
		if len(r.Patterns) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no patterns", i+1, r.File)
		}

		cr := compiledRule{file: r.File}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): pattern %q: %w", i+1, r.File, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		out = append(out, cr)
	}
	return out, nil
}
