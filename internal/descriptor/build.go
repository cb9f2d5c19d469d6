// Package descriptor turns an OpenAPI document into the target-neutral
// descriptors that templates render: one TypeDescriptor per named schema and
// one ServiceDescriptor per tag, each holding its OperationDescriptors.
//
// Building is deterministic. Two builds of the same document with the same
// options produce equal models, including the order of every list.
package descriptor

import (
	"log/slog"
	"slices"

	"github.com/remkoboschker/ng-openapi-gen/internal/config"
	"github.com/remkoboschker/ng-openapi-gen/internal/model"
	"github.com/remkoboschker/ng-openapi-gen/internal/naming"
)

// Info summarizes the API itself.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	RootURL     string `json:"rootUrl,omitempty"`
}

// Model is the result of a build.
type Model struct {
	Info       Info                   `json:"info"`
	Types      []*TypeDescriptor      `json:"types"`
	Services   []*ServiceDescriptor   `json:"services"`
	Operations []*OperationDescriptor `json:"operations"`
	Warnings   []Warning              `json:"warnings,omitempty"`

	refClass func(string) string
}

// Type returns the type with the given generated name, or nil.
func (m *Model) Type(name string) *TypeDescriptor {
	for _, t := range m.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Service returns the service with the given generated name, or nil.
func (m *Model) Service(name string) *ServiceDescriptor {
	for _, s := range m.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Build derives the descriptor model of doc. A broken reference fails the
// build with a *BrokenReferenceError; everything else that is odd about the
// document becomes a warning.
func Build(doc *model.Document, cfg *config.Config, logger *slog.Logger) (*Model, error) {
	return NewContext(doc, cfg, logger).Build()
}

// Build runs a full build on the context.
func (c *Context) Build() (*Model, error) {
	m := &Model{
		Info: Info{
			Title:       c.doc.Info.Title,
			Version:     c.doc.Info.Version,
			Description: c.doc.Info.Description,
		},
		refClass: c.refClass,
	}
	if len(c.doc.Servers) > 0 {
		m.Info.RootURL = c.doc.Servers[0].URL
	}

	c.assignClasses()
	for _, entry := range c.doc.Components.Schemas {
		td, err := c.buildType(entry.Name, entry.Value)
		if err != nil {
			return nil, err
		}
		m.Types = append(m.Types, td)
	}
	c.logger.Debug("built types", "count", len(m.Types))

	byTag, tags, err := c.buildOperations(m)
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		if !c.cfg.TagIncluded(tag) {
			c.logger.Info("skipping tag", "tag", tag)
			continue
		}
		svc, err := c.buildService(c.doc.Tag(tag), byTag[tag])
		if err != nil {
			return nil, err
		}
		m.Services = append(m.Services, svc)
	}
	c.logger.Debug("built services", "count", len(m.Services), "operations", len(m.Operations))

	m.Warnings = c.Warnings()
	return m, nil
}

// buildOperations visits every operation in document order and groups them
// by tag. Tags are returned in first-seen order. Only operations with at
// least one included tag are listed on m.
func (c *Context) buildOperations(m *Model) (map[string][]*OperationDescriptor, []string, error) {
	ids := newIDRegistry()
	byTag := map[string][]*OperationDescriptor{}
	var tags []string

	for _, entry := range c.doc.Paths {
		item := entry.Value
		if item == nil {
			continue
		}
		for _, method := range model.HTTPMethods {
			spec := item.Operation(method)
			if spec == nil {
				continue
			}
			location := entry.Name + "." + method
			id := c.operationID(spec, location)
			id, previous := ids.claim(id, location)
			if previous != "" {
				c.warn(WarnDuplicateOperationID, location,
					"duplicate operation id of %s and %s, assuming %s for %s", previous, location, id, location)
			}

			op, err := c.buildOperation(id, entry.Name, method, item, spec)
			if err != nil {
				return nil, nil, err
			}
			if len(op.Tags) == 0 {
				c.warn(WarnNoTags, location, "no tags set on operation %s, assuming %s", id, c.cfg.DefaultTag)
				op.Tags = []string{c.cfg.DefaultTag}
			}
			for _, tag := range op.Tags {
				if _, seen := byTag[tag]; !seen {
					tags = append(tags, tag)
				}
				byTag[tag] = append(byTag[tag], op)
			}
			if slices.ContainsFunc(op.Tags, c.cfg.TagIncluded) {
				m.Operations = append(m.Operations, op)
			}
		}
	}
	return byTag, tags, nil
}

func (c *Context) operationID(spec *model.Operation, location string) string {
	if spec.OperationID != "" {
		return naming.MethodName(spec.OperationID)
	}
	id := naming.MethodName(location)
	c.warn(WarnMissingOperationID, location, "operation %s has no operationId, assuming %s", location, id)
	return id
}
