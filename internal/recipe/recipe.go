// Package recipe defines the recipe manifest: the per-language template
// bundle (typescript, python, golang) used to seed new projects. A
// manifest names the recipe's app types, the docs it renders, and the
// tools a project of that kind expects on the machine.
package recipe

import (
	"fmt"
	"sync"

	"github.com/dotup-cli/dotup/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"

	_ "embed"
)

//go:embed schema/recipe.schema.json
var schemaBytes []byte

// ManifestFileName is the manifest file inside each recipe directory.
const ManifestFileName = "recipe.yaml"

// Recipe is a parsed recipe manifest.
type Recipe struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	AppTypes    []string `yaml:"app_types"`
	Tools       []Tool   `yaml:"tools"`
	Docs        []string `yaml:"docs"`
}

// Tool is a CLI a project of this recipe expects, optionally with a
// minimum version enforced by doctor.
type Tool struct {
	Name       string `yaml:"name"`
	MinVersion string `yaml:"min_version"`
	Optional   bool   `yaml:"optional"`
}

// HasAppType reports whether the recipe declares the given app type.
func (r *Recipe) HasAppType(appType string) bool {
	for _, t := range r.AppTypes {
		if t == appType {
			return true
		}
	}
	return false
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Parse parses and schema-validates recipe manifest bytes.
func Parse(data []byte) (*Recipe, error) {
	compileOnce.Do(func() {
		compiled, compileErr = schema.Compile("recipe.schema.json", schemaBytes)
	})
	if compileErr != nil {
		return nil, fmt.Errorf("loading recipe schema: %w", compileErr)
	}

	result, err := schema.ValidateYAML(compiled, data)
	if err != nil {
		return nil, fmt.Errorf("validating recipe manifest: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid recipe manifest: %s", result.Issues[0])
	}

	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing recipe manifest: %w", err)
	}
	return &r, nil
}
