// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building. Go's //go:embed
// bakes it into the binary, and the hard defaults below apply to any key the
// file leaves out.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string   `yaml:"cli_name"`
	DisplayName    string   `yaml:"display_name"`
	Description    string   `yaml:"description"`
	HomeDir        string   `yaml:"home_dir"`
	EnvPrefix      string   `yaml:"env_prefix"`
	GoModule       string   `yaml:"go_module"`
	GitHubRepo     string   `yaml:"github_repo"`
	StateDir       string   `yaml:"state_dir"`
	MaterialsDir   string   `yaml:"materials_subdir"`
	GlobalDir      string   `yaml:"global_materials_dir"`
	Markers        []string `yaml:"boundary_markers"`
	ToolDirName    string   `yaml:"tool_dir_name"`
	DefinitionFile string   `yaml:"definition_file"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:        "skillforge",
			DisplayName:    "Skill Forge",
			Description:    "Fetch, inspect and clean up source materials for skill authoring",
			HomeDir:        ".skillforge",
			EnvPrefix:      "SKILLFORGE",
			GoModule:       "github.com/skillforge-labs/skillforge",
			GitHubRepo:     "skillforge-labs/skillforge",
			StateDir:       ".claude",
			MaterialsDir:   "temp-materials",
			GlobalDir:      "skill-materials",
			Markers:        []string{".git", ".claude"},
			ToolDirName:    "skill-forge",
			DefinitionFile: "SKILL.md",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "skillforge").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME holding config (e.g., ".skillforge").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SKILLFORGE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// StateDir returns the per-project tool state directory name (e.g., ".claude").
func StateDir() string { load(); return defaults.StateDir }

// MaterialsSubdir returns the materials directory name inside StateDir.
func MaterialsSubdir() string { load(); return defaults.MaterialsDir }

// GlobalMaterialsDir returns the materials directory name under $HOME.
func GlobalMaterialsDir() string { load(); return defaults.GlobalDir }

// BoundaryMarkers returns the directory names that identify a project root.
func BoundaryMarkers() []string {
	load()
	out := make([]string, len(defaults.Markers))
	copy(out, defaults.Markers)
	return out
}

// ToolDirName returns the directory name of the tool's own source tree.
func ToolDirName() string { load(); return defaults.ToolDirName }

// DefinitionFile returns the marker file of a packageable skill (e.g., "SKILL.md").
func DefinitionFile() string { load(); return defaults.DefinitionFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "SKILLFORGE_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
