package splitdocs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesYAML = `
- file: getting-started.md
  patterns: [introduction, installation]
- file: core-concepts.md
  patterns: ['concepts/agents', 'concepts/tools$']
- file: empty.md
  patterns: [nothing-matches-this]
`

const dump = `preamble dropped
Source: https://docs.example.com/introduction
# Intro
Welcome.
Source: https://docs.example.com/concepts/agents
# Agents
Source: https://docs.example.com/concepts/tools/extra
# Not matched: anchored pattern
Source: https://docs.example.com/installation
# Install
last line without newline`

func TestSplit(t *testing.T) {
	rules, err := ParseRules([]byte(rulesYAML))
	require.NoError(t, err)
	out := t.TempDir()

	sections, err := Split(strings.NewReader(dump), rules, out)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	started, err := os.ReadFile(filepath.Join(out, "getting-started.md"))
	require.NoError(t, err)
	assert.Equal(t,
		"Source: https://docs.example.com/introduction\n# Intro\nWelcome.\n"+
			"Source: https://docs.example.com/installation\n# Install\nlast line without newline",
		string(started))
	assert.Equal(t, 6, sections[0].Lines)

	concepts, err := os.ReadFile(filepath.Join(out, "core-concepts.md"))
	require.NoError(t, err)
	assert.Equal(t, "Source: https://docs.example.com/concepts/agents\n# Agents\n", string(concepts))
	assert.Equal(t, int64(len(concepts)), sections[1].Bytes)

	assert.True(t, sections[2].Skipped)
	assert.NoFileExists(t, filepath.Join(out, "empty.md"))
}

func TestSplit_FirstMatchingRuleWins(t *testing.T) {
	rules := []Rule{
		{File: "a.md", Patterns: []string{"docs"}},
		{File: "b.md", Patterns: []string{"docs/b"}},
	}
	out := t.TempDir()
	sections, err := Split(strings.NewReader("Source: https://x/docs/b\nbody\n"), rules, out)
	require.NoError(t, err)
	assert.Equal(t, 2, sections[0].Lines)
	assert.True(t, sections[1].Skipped)
}

func TestSplit_InvalidRules(t *testing.T) {
	tests := map[string][]Rule{
		"bad regexp":     {{File: "a.md", Patterns: []string{"("}}},
		"no patterns":    {{File: "a.md"}},
		"path file":      {{File: "../a.md", Patterns: []string{"x"}}},
		"empty file":     {{File: "", Patterns: []string{"x"}}},
		"duplicate file": {{File: "a.md", Patterns: []string{"x"}}, {File: "a.md", Patterns: []string{"y"}}},
	}
	for name, rules := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Split(strings.NewReader(""), rules, t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rulesYAML), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "core-concepts.md", rules[1].File)
	assert.Equal(t, []string{"concepts/agents", "concepts/tools$"}, rules[1].Patterns)

	_, err = ParseRules([]byte("[]"))
	assert.Error(t, err)
	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
