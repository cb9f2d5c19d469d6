// Package templates renders the TypeScript sources the generator emits.
// The built-in templates live under ts/ in the embedded tree and are
// addressed by base name, so "model" renders ts/model.tmpl. A custom
// directory may replace any of them, or add partials, with a file of the
// same base name either at its root or under ts/.
package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/remkoboschker/ng-openapi-gen/internal/typescript"
	embeddedtmpl "github.com/remkoboschker/ng-openapi-gen/templates"
)

// Language is the directory of the template set inside the embedded tree
// and, optionally, inside a custom directory.
const Language = "ts"

const ext = ".tmpl"

// Engine renders a named template with data.
type Engine interface {
	Execute(name string, data any) (string, error)
}

type TextTemplateEngine struct {
	templates *template.Template
	funcs     template.FuncMap
	embedded  fs.FS
	customDir string
	overrides []string
	additions []string
}

// NewTypeScript loads the built-in TypeScript templates with the TypeScript
// helper functions, overridden from customDir when it is set.
func NewTypeScript(customDir string) (*TextTemplateEngine, error) {
	return NewEngine(embeddedtmpl.FS, customDir, typescript.TemplateFuncs())
}

func NewEngine(embedded fs.FS, customDir string, funcs template.FuncMap) (*TextTemplateEngine, error) {
	e := &TextTemplateEngine{
		embedded:  embedded,
		customDir: customDir,
		funcs:     funcs,
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// Overrides lists the built-in templates replaced from the custom directory.
func (e *TextTemplateEngine) Overrides() []string {
	return e.overrides
}

// Additions lists custom templates that have no built-in counterpart.
func (e *TextTemplateEngine) Additions() []string {
	return e.additions
}

// templateName maps a slash separated path relative to a template root to
// its template name. Only files at the root or directly under Language
// belong to the set.
func templateName(rel string) (string, bool) {
	if !strings.HasSuffix(rel, ext) {
		return "", false
	}
	dir, file := path.Split(rel)
	if dir != "" && dir != Language+"/" {
		return "", false
	}
	return strings.TrimSuffix(file, ext), true
}

func (e *TextTemplateEngine) load() error {
	e.templates = template.New("").Funcs(e.funcs)

	err := fs.WalkDir(e.embedded, Language, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name, ok := templateName(p)
		if d.IsDir() || !ok {
			return nil
		}
		content, err := fs.ReadFile(e.embedded, p)
		if err != nil {
			return fmt.Errorf("reading embedded template %s: %w", p, err)
		}
		if _, err := e.templates.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing embedded template %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading embedded templates: %w", err)
	}

	if e.customDir == "" {
		return nil
	}
	err = filepath.WalkDir(e.customDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(e.customDir, p)
		if err != nil {
			return err
		}
		name, ok := templateName(filepath.ToSlash(rel))
		if !ok {
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading custom template %s: %w", p, err)
		}
		if slices.Contains(e.overrides, name) || slices.Contains(e.additions, name) {
			return fmt.Errorf("custom template %s is defined twice", name)
		}
		if e.templates.Lookup(name) != nil {
			e.overrides = append(e.overrides, name)
		} else {
			e.additions = append(e.additions, name)
		}
		if _, err := e.templates.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing custom template %s: %w", p, err)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading custom templates: %w", err)
	}
	return nil
}

func (e *TextTemplateEngine) Execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}
