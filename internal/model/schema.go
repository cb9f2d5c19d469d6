package model

import "slices"

type Schema struct {
	Ref         string    `json:"$ref,omitempty"`
	Type        TypeSet   `json:"type,omitempty"`
	Format      string    `json:"format,omitempty"`
	Description string    `json:"description,omitempty"`
	Nullable    bool      `json:"nullable,omitempty"`
	Deprecated  bool      `json:"deprecated,omitempty"`
	Enum        []any     `json:"enum,omitempty"`
	Required    []string  `json:"required,omitempty"`
	Items       *Schema   `json:"items,omitempty"`
	AllOf       []*Schema `json:"allOf,omitempty"`
	OneOf       []*Schema `json:"oneOf,omitempty"`
	AnyOf       []*Schema `json:"anyOf,omitempty"`

	Properties           Ordered[*Schema]      `json:"properties,omitempty"`
	AdditionalProperties *AdditionalProperties `json:"additionalProperties,omitempty"`
}

// PrimaryType returns the first declared type other than "null", or "" when
// the schema carries no type information.
func (s *Schema) PrimaryType() SchemaType {
	for _, t := range s.Type {
		if t != TypeNull {
			return t
		}
	}
	if len(s.Type) > 0 {
		return TypeNull
	}
	return ""
}

// IsNullable reports whether null is an accepted value, either through the
// 3.0 nullable keyword or a 3.1 type list containing "null".
func (s *Schema) IsNullable() bool {
	return s.Nullable || (len(s.Type) > 1 && slices.Contains(s.Type, TypeNull))
}

// IsRequired reports whether the named property is listed as required.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
	TypeNull    SchemaType = "null"
)

// TypeSet holds the "type" keyword, which is a single string in OpenAPI 3.0
// and may be a list in 3.1.
type TypeSet []SchemaType

// AdditionalProperties is either a boolean or a schema for map values.
type AdditionalProperties struct {
	Allowed bool    `json:"allowed"`
	Schema  *Schema `json:"schema,omitempty"`
}

// ValueSchema returns the schema for map values, or nil when unconstrained.
func (a *AdditionalProperties) ValueSchema() *Schema {
	if a == nil {
		return nil
	}
	return a.Schema
}
