// Package models emits one TypeScript file per type descriptor plus the
// models index.
package models

import (
	"fmt"
	"path"

	"github.com/remkoboschker/ng-openapi-gen/internal/descriptor"
	"github.com/remkoboschker/ng-openapi-gen/internal/templates"
)

const (
	Dir       = "models"
	IndexFile = "models.ts"
)

type Target struct{}

func New() *Target {
	return &Target{}
}

func (t *Target) Name() string {
	return "models"
}

type templateData struct {
	Type *descriptor.TypeDescriptor
}

type indexData struct {
	Types []*descriptor.TypeDescriptor
}

// Generate renders every type of m and hands each file to emit.
func (t *Target) Generate(engine templates.Engine, m *descriptor.Model, emit func(name, content string)) error {
	for _, td := range m.Types {
		content, err := engine.Execute("model", templateData{Type: td})
		if err != nil {
			return fmt.Errorf("rendering model %s: %w", td.Name, err)
		}
		emit(path.Join(Dir, td.FileName+".ts"), content)
	}

	content, err := engine.Execute("models-index", indexData{Types: m.Types})
	if err != nil {
		return fmt.Errorf("rendering models index: %w", err)
	}
	emit(IndexFile, content)
	return nil
}
