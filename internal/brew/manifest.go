// Package brew applies the declarative Homebrew package manifest: taps,
// formulae, casks, and optional cask groups toggled by env/config (AI,
// PRODUCTIVITY, SOCIAL). Items already known to brew are skipped.
package brew

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/dotup-cli/dotup/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
)

//go:embed packages.yaml
var rawManifest []byte

//go:embed schema/packages.schema.json
var schemaBytes []byte

// Manifest is the declarative desired set of Homebrew packages.
type Manifest struct {
	Taps     []string         `yaml:"taps"`
	Formulae []string         `yaml:"formulae"`
	Casks    []string         `yaml:"casks"`
	Groups   map[string]Group `yaml:"groups"`
}

// Group is an optional set of casks gated behind a boolean toggle
// (e.g., AI=1 dotup brew).
type Group struct {
	Description string   `yaml:"description"`
	Casks       []string `yaml:"casks"`
}

// GroupNames returns the manifest's group names in sorted order.
func (m *Manifest) GroupNames() []string {
	names := make([]string, 0, len(m.Groups))
	for name := range m.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectedCasks returns the base casks plus casks from every enabled
// group, in manifest order, without duplicates.
func (m *Manifest) SelectedCasks(enabled map[string]bool) []string {
	seen := make(map[string]bool, len(m.Casks))
	var casks []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			casks = append(casks, name)
		}
	}

	for _, c := range m.Casks {
		add(c)
	}
	for _, name := range m.GroupNames() {
		if !enabled[name] {
			continue
		}
		for _, c := range m.Groups[name].Casks {
			add(c)
		}
	}
	return casks
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// LoadManifest parses and schema-validates manifest bytes.
func LoadManifest(data []byte) (*Manifest, error) {
	compileOnce.Do(func() {
		compiled, compileErr = schema.Compile("packages.schema.json", schemaBytes)
	})
	if compileErr != nil {
		return nil, fmt.Errorf("loading packages schema: %w", compileErr)
	}

	result, err := schema.ValidateYAML(compiled, data)
	if err != nil {
		return nil, fmt.Errorf("validating package manifest: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid package manifest: %s", result.Issues[0])
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing package manifest: %w", err)
	}
	return &m, nil
}

// Default returns the embedded package manifest.
func Default() (*Manifest, error) {
	return LoadManifest(rawManifest)
}
