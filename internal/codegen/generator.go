// Package codegen sequences a run: document to descriptors, pruning, then
// rendering through the template engine.
package codegen

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/remkoboschker/ng-openapi-gen/internal/config"
	"github.com/remkoboschker/ng-openapi-gen/internal/descriptor"
	"github.com/remkoboschker/ng-openapi-gen/internal/model"
	"github.com/remkoboschker/ng-openapi-gen/internal/targets/models"
	"github.com/remkoboschker/ng-openapi-gen/internal/targets/services"
	"github.com/remkoboschker/ng-openapi-gen/internal/templates"
)

type Generator struct {
	config *config.Config
	engine templates.Engine
	logger *slog.Logger
}

type Output struct {
	Filename string
	Content  string
}

// Result is everything a run produced.
type Result struct {
	Model   *descriptor.Model
	Pruned  []string
	Outputs []Output
}

type target interface {
	Name() string
	Generate(engine templates.Engine, m *descriptor.Model, emit func(name, content string)) error
}

func New(cfg *config.Config, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	engine, err := templates.NewTypeScript(cfg.Templates.Dir)
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}
	for _, name := range engine.Overrides() {
		logger.Info("using custom template", "template", name)
	}
	for _, name := range engine.Additions() {
		logger.Debug("loaded custom partial", "template", name)
	}

	return &Generator{
		config: cfg,
		engine: engine,
		logger: logger,
	}, nil
}

// Describe builds the descriptor model of doc and prunes it when configured.
// It returns the pruned type names.
func (g *Generator) Describe(doc *model.Document) (*descriptor.Model, []string, error) {
	m, err := descriptor.Build(doc, g.config, g.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building descriptors: %w", err)
	}

	var pruned []string
	if g.config.PruneUnusedTypes {
		pruned = m.Prune()
		for _, name := range pruned {
			g.logger.Debug("pruned unused type", "type", name)
		}
	}
	return m, pruned, nil
}

// Generate runs the whole pipeline and returns the rendered files. Nothing
// is written.
func (g *Generator) Generate(doc *model.Document) (*Result, error) {
	m, pruned, err := g.Describe(doc)
	if err != nil {
		return nil, err
	}

	result := &Result{Model: m, Pruned: pruned}
	emit := func(name, content string) {
		result.Outputs = append(result.Outputs, Output{Filename: name, Content: content})
	}
	for _, t := range []target{models.New(), services.New()} {
		if err := t.Generate(g.engine, m, emit); err != nil {
			return nil, fmt.Errorf("generating %s: %w", t.Name(), err)
		}
	}

	g.logger.Debug("rendered files", "count", len(result.Outputs))
	return result, nil
}
