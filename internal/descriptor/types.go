package descriptor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
	"github.com/remkoboschker/ng-openapi-gen/internal/naming"
)

// Kind is the shape a named type is emitted as.
type Kind string

const (
	KindObject Kind = "object"
	KindEnum   Kind = "enum"
	KindAlias  Kind = "alias"
)

// TypeDescriptor describes one named schema of components.schemas.
type TypeDescriptor struct {
	Name         string           `json:"name"`
	SchemaName   string           `json:"schemaName"`
	FileName     string           `json:"fileName"`
	Description  string           `json:"description,omitempty"`
	Deprecated   bool             `json:"deprecated,omitempty"`
	Kind         Kind             `json:"kind"`
	Dependencies DependencyRecord `json:"dependencies"`

	// Object types.
	Properties           []PropertyDescriptor `json:"properties,omitempty"`
	SuperTypes           []string             `json:"superTypes,omitempty"`
	AdditionalProperties *TypeExpr            `json:"additionalProperties,omitempty"`

	// Enum types.
	EnumValues []EnumValue `json:"enumValues,omitempty"`

	// Alias types.
	Alias *TypeExpr `json:"alias,omitempty"`

	Schema *model.Schema `json:"-"`
}

// PropertyDescriptor is one property of an object type.
type PropertyDescriptor struct {
	Name        string    `json:"name"`
	Type        *TypeExpr `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Description string    `json:"description,omitempty"`
	Deprecated  bool      `json:"deprecated,omitempty"`
}

// EnumValue is one constant of an enum type. Value holds the raw value;
// Quoted is set for string enums.
type EnumValue struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Quoted bool   `json:"quoted,omitempty"`
}

func fileName(typeName string) string {
	return naming.FileName(typeName)
}

// buildType derives the descriptor for the schema registered under name.
func (c *Context) buildType(name string, s *model.Schema) (*TypeDescriptor, error) {
	if s == nil {
		s = &model.Schema{}
	}
	if err := c.checkCycle(name, s); err != nil {
		return nil, err
	}
	typeName := c.modelClass(name)
	td := &TypeDescriptor{
		Name:        typeName,
		SchemaName:  name,
		FileName:    fileName(typeName),
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Schema:      s,
	}

	typ := s.PrimaryType()
	isObject := typ == model.TypeObject || len(s.Properties) > 0 || len(s.AllOf) > 0
	isEnum := len(s.Enum) > 0 && c.enumStyle() != naming.EnumStyleAlias &&
		(typ == model.TypeString || typ == model.TypeNumber || typ == model.TypeInteger)

	switch {
	case isObject:
		td.Kind = KindObject
		props := map[string]PropertyDescriptor{}
		c.collectObject(td, s, props)
		for _, n := range slices.Sorted(maps.Keys(props)) {
			td.Properties = append(td.Properties, props[n])
		}
	case isEnum:
		td.Kind = KindEnum
		td.EnumValues = c.enumValues(s, typ)
	default:
		td.Kind = KindAlias
		td.Alias = c.expr(s)
	}

	deps := c.newDependencies(typeName)
	if err := deps.collect(s, false, model.SchemaRef(name)); err != nil {
		return nil, err
	}
	td.Dependencies = deps.record()
	return td, nil
}

// checkCycle fails when the schema registered under name reaches itself
// through $ref and composition alone. Such a type has no finite shape;
// cycles through properties, items or map values are fine.
func (c *Context) checkCycle(name string, s *model.Schema) error {
	self := model.SchemaRef(name)
	seen := map[string]bool{}

	var visit func(s *model.Schema) error
	visit = func(s *model.Schema) error {
		if s == nil {
			return nil
		}
		if s.Ref != "" {
			if s.Ref == self {
				return &BrokenReferenceError{Ref: s.Ref, Location: self,
					Err: fmt.Errorf("%w: %s refers to itself without an object in between", model.ErrBrokenReference, name)}
			}
			target, ok := model.SchemaName(s.Ref)
			if !ok || seen[s.Ref] {
				return nil
			}
			seen[s.Ref] = true
			next, _ := c.doc.Components.Schemas.Get(target)
			return visit(next)
		}
		for _, group := range [][]*model.Schema{s.AllOf, s.OneOf, s.AnyOf} {
			for _, member := range group {
				if err := visit(member); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return visit(s)
}

// collectObject gathers super types and properties. Referenced allOf members
// become super types; inline members are flattened in, followed by the
// schema's own properties. A later property with the same name wins.
func (c *Context) collectObject(td *TypeDescriptor, s *model.Schema, props map[string]PropertyDescriptor) {
	for _, part := range s.AllOf {
		if part == nil {
			continue
		}
		if part.Ref != "" {
			super := c.refClass(part.Ref)
			if !slices.Contains(td.SuperTypes, super) {
				td.SuperTypes = append(td.SuperTypes, super)
			}
			continue
		}
		c.collectObject(td, part, props)
	}
	if s.PrimaryType() != model.TypeObject && len(s.Properties) == 0 {
		return
	}
	for _, p := range s.Properties {
		props[p.Name] = c.property(p.Name, p.Value, s.IsRequired(p.Name))
	}
	if ap := s.AdditionalProperties; ap != nil && ap.Allowed {
		td.AdditionalProperties = c.expr(ap.Schema)
	}
}

func (c *Context) property(name string, s *model.Schema, required bool) PropertyDescriptor {
	p := PropertyDescriptor{Name: name, Type: c.expr(s), Required: required}
	if s != nil {
		p.Description = s.Description
		p.Deprecated = s.Deprecated
	}
	return p
}

// enumValues names each enum constant. Values that normalize to the same
// name get a _N suffix.
func (c *Context) enumValues(s *model.Schema, typ model.SchemaType) []EnumValue {
	style := c.enumStyle()
	taken := map[string]bool{}
	var values []EnumValue
	for _, v := range s.Enum {
		if v == nil {
			continue
		}
		raw := fmt.Sprint(v)
		name := naming.EnumName(raw, style)
		if name == "" {
			name = naming.EnumName("empty", style)
		}
		if taken[name] {
			name = uniqueName(name, func(n string) bool { return taken[n] })
		}
		taken[name] = true
		values = append(values, EnumValue{Name: name, Value: raw, Quoted: typ == model.TypeString})
	}
	return values
}
