package skill

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/skillforge-labs/skillforge/internal/branding"
)

//go:embed schema/skill.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of validating a skill directory.
type ValidationResult struct {
	Valid  bool
	Name   string // frontmatter name, when present
	Issues []ValidationIssue
}

// ValidationIssue represents a single problem found in SKILL.md.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name")
	Message string
	Keyword string // Failing schema keyword, or "frontmatter" / "semver"
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Summary joins the issues into one line.
func (r *ValidationResult) Summary() string {
	if r.Valid {
		return "Skill is valid!"
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("skill.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("skill.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks the SKILL.md inside dir. The error return is for I/O or
// schema compilation failures; content problems are reported as issues.
func Validate(dir string) (*ValidationResult, error) {
	data, err := os.ReadFile(filepath.Join(dir, branding.DefinitionFile()))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", branding.DefinitionFile(), err)
	}
	return ValidateContent(data)
}

// ValidateContent checks raw SKILL.md content.
func ValidateContent(data []byte) (*ValidationResult, error) {
	fm, _, err := SplitFrontmatter(data)
	if err != nil {
		return invalid(ValidationIssue{Keyword: "frontmatter", Message: err.Error()}), nil
	}

	var raw interface{}
	if err := yaml.Unmarshal(fm, &raw); err != nil {
		return invalid(ValidationIssue{Keyword: "frontmatter", Message: "invalid YAML in frontmatter: " + err.Error()}), nil
	}
	fields, ok := normalizeYAML(raw).(map[string]interface{})
	if !ok {
		return invalid(ValidationIssue{Keyword: "frontmatter", Message: "frontmatter must be a YAML dictionary"}), nil
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	jsonData, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	result := &ValidationResult{}
	if name, ok := fields["name"].(string); ok {
		result.Name = name
	}

	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		result.Issues = append(result.Issues, extractIssues(validationErr)...)
	}

	if v, ok := fields["version"].(string); ok {
		if _, err := semver.NewVersion(v); err != nil {
			result.Issues = append(result.Issues, ValidationIssue{
				Path:    "/version",
				Keyword: "semver",
				Message: fmt.Sprintf("%q is not a semantic version", v),
			})
		}
	}

	result.Valid = len(result.Issues) == 0
	return result, nil
}

func invalid(issue ValidationIssue) *ValidationResult {
	return &ValidationResult{Issues: []ValidationIssue{issue}}
}

// extractIssues flattens the error tree into leaf issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}

	seen := make(map[string]bool)
	var out []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "$ref" || keyword == "allOf" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

// normalizeYAML converts YAML-decoded values into JSON-encodable ones.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
