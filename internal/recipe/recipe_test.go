package recipe

import (
	"strings"
	"testing"
)

const validManifest = `
name: typescript
description: TypeScript project conventions
app_types:
  - web
  - cli
  - api
tools:
  - name: fnm
    min_version: "1.35.0"
  - name: bun
    optional: true
docs:
  - CONVENTIONS.md
`

func TestParseValidManifest(t *testing.T) {
	r, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if r.Name != "typescript" {
		t.Errorf("Name = %q", r.Name)
	}
	if len(r.Tools) != 2 || r.Tools[0].MinVersion != "1.35.0" {
		t.Errorf("Tools = %+v", r.Tools)
	}
	if !r.Tools[1].Optional {
		t.Error("bun should be optional")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing docs":    "name: python\ndescription: x\n",
		"bad name":        "name: TypeScript\ndescription: x\ndocs: [a]\n",
		"tool sans name":  "name: go\ndescription: x\ndocs: [a]\ntools:\n  - min_version: \"1.0\"\n",
		"unknown field":   "name: go\ndescription: x\ndocs: [a]\nfiles: [a]\n",
		"empty docs list": "name: go\ndescription: x\ndocs: []\n",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			if err == nil {
				t.Errorf("Parse accepted invalid manifest:\n%s", doc)
			} else if !strings.Contains(err.Error(), "recipe manifest") {
				t.Errorf("unexpected error text: %v", err)
			}
		})
	}
}

func TestHasAppType(t *testing.T) {
	r, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasAppType("web") {
		t.Error("web app type not found")
	}
	if r.HasAppType("desktop") {
		t.Error("undeclared app type reported present")
	}
}
