// Package scaffold seeds project directories from embedded recipes. It
// powers `dotup scaffold` (rails + recipe docs), `dotup seed` (docs
// only), and `dotup init` (rails only). Existing files are never
// overwritten: re-running reports them as already present.
package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/recipe"
)

//go:embed templates
var templatesFS embed.FS

const recipesDir = "templates/recipes"

// templateFile maps an embedded template to its output path. Output
// dot-directories (.agents/, .architecture/) cannot be stored under
// their real names because embed skips dotfiles.
type templateFile struct {
	src string
	dst string
}

// railsFiles is the structural convention every scaffolded or
// initialized project gets.
var railsFiles = []templateFile{
	{src: "templates/rails/AGENTS.md.tmpl", dst: "AGENTS.md"},
	{src: "templates/rails/PROJECT_BRIEF.md.tmpl", dst: "PROJECT_BRIEF.md"},
	{src: "templates/rails/agents/guidelines.md.tmpl", dst: ".agents/guidelines.md"},
	{src: "templates/rails/agents/workflows.md.tmpl", dst: ".agents/workflows.md"},
	{src: "templates/rails/architecture/overview.md.tmpl", dst: ".architecture/overview.md"},
	{src: "templates/rails/architecture/decisions.md.tmpl", dst: ".architecture/decisions/0001-use-decision-records.md"},
}

// Data holds the variables available to recipe and rails templates.
type Data struct {
	Name        string // project name, from the target directory
	Recipe      string // recipe name ("typescript")
	Description string // recipe description
	AppType     string // selected app type, may be empty
	Author      string // from config git_email, may be empty
	Year        int
}

// NewData derives template data for a project directory.
func NewData(projectDir, recipeName, appType, author string) *Data {
	return &Data{
		Name:    filepath.Base(filepath.Clean(projectDir)),
		Recipe:  recipeName,
		AppType: appType,
		Author:  author,
		Year:    time.Now().Year(),
	}
}

// Names returns the embedded recipe names in sorted order.
func Names() ([]string, error) {
	entries, err := templatesFS.ReadDir(recipesDir)
	if err != nil {
		return nil, fmt.Errorf("reading embedded recipes: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load parses an embedded recipe's manifest.
func Load(name string) (*recipe.Recipe, error) {
	data, err := templatesFS.ReadFile(path.Join(recipesDir, name, recipe.ManifestFileName))
	if err != nil {
		names, listErr := Names()
		if listErr != nil {
			return nil, fmt.Errorf("unknown recipe %q", name)
		}
		return nil, fmt.Errorf("unknown recipe %q (available: %s)", name, strings.Join(names, ", "))
	}
	return recipe.Parse(data)
}

// Scaffold renders rails plus recipe docs into dir.
func Scaffold(ctx context.Context, w io.Writer, recipeName, appType, dir string, data *Data) (*apply.Summary, error) {
	r, err := Load(recipeName)
	if err != nil {
		return nil, err
	}

	appType, err = resolveAppType(r, appType)
	if err != nil {
		return nil, err
	}
	data.AppType = appType
	data.Description = r.Description

	files := append([]templateFile{}, railsFiles...)
	files = append(files, docFiles(r)...)
	return render(ctx, w, dir, files, data)
}

// Seed renders only the recipe docs into dir.
func Seed(ctx context.Context, w io.Writer, recipeName, dir string, data *Data) (*apply.Summary, error) {
	r, err := Load(recipeName)
	if err != nil {
		return nil, err
	}
	data.Description = r.Description
	return render(ctx, w, dir, docFiles(r), data)
}

// InitRails renders only the rails into dir, for existing projects.
func InitRails(ctx context.Context, w io.Writer, dir string, data *Data) (*apply.Summary, error) {
	return render(ctx, w, dir, railsFiles, data)
}

func docFiles(r *recipe.Recipe) []templateFile {
	files := make([]templateFile, 0, len(r.Docs))
	for _, doc := range r.Docs {
		files = append(files, templateFile{
			src: path.Join(recipesDir, r.Name, doc+".tmpl"),
			dst: doc,
		})
	}
	return files
}

func resolveAppType(r *recipe.Recipe, appType string) (string, error) {
	if len(r.AppTypes) == 0 {
		if appType != "" {
			return "", fmt.Errorf("recipe %s has no app types", r.Name)
		}
		return "", nil
	}
	if appType == "" {
		// First declared app type is the recipe's default.
		return r.AppTypes[0], nil
	}
	if !r.HasAppType(appType) {
		return "", fmt.Errorf("recipe %s has no app type %q (available: %s)",
			r.Name, appType, strings.Join(r.AppTypes, ", "))
	}
	return appType, nil
}

// render applies the file set idempotently: existing files are skipped,
// never rewritten.
func render(ctx context.Context, w io.Writer, dir string, files []templateFile, data *Data) (*apply.Summary, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	var items []apply.Item
	for _, file := range files {
		file := file
		outPath := filepath.Join(dir, file.dst)
		items = append(items, apply.Item{
			Name: file.dst,
			Kind: "file",
			Exists: func(ctx context.Context) (bool, error) {
				_, err := os.Stat(outPath)
				if err == nil {
					return true, nil
				}
				if os.IsNotExist(err) {
					return false, nil
				}
				return false, err
			},
			Apply: func(ctx context.Context) error {
				return renderFile(file.src, outPath, data)
			},
		})
	}

	return apply.Run(ctx, w, items)
}

func renderFile(src, outPath string, data *Data) error {
	tmplBytes, err := templatesFS.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", src, err)
	}

	tmpl, err := template.New(filepath.Base(src)).Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", src, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	return os.WriteFile(outPath, buf.Bytes(), 0644)
}
