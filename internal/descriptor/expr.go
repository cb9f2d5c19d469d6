package descriptor

import (
	"fmt"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

// ExprKind tags the variant held by a TypeExpr.
type ExprKind string

const (
	ExprRef          ExprKind = "ref"
	ExprUnion        ExprKind = "union"
	ExprIntersection ExprKind = "intersection"
	ExprArray        ExprKind = "array"
	ExprObject       ExprKind = "object"
	ExprLiteral      ExprKind = "literal"
	ExprPrimitive    ExprKind = "primitive"
	ExprBinary       ExprKind = "binary"
	ExprUnknown      ExprKind = "unknown"
	ExprVoid         ExprKind = "void"
)

// TypeExpr is a target-neutral type expression. Which fields are set depends
// on Kind:
//
//	ref          Name is the generated type name
//	union        Members
//	intersection Members
//	array        Elem
//	object       Fields and optionally Index
//	literal      Value, Quoted when it is a string
//	primitive    Name is one of string, number, boolean, null
type TypeExpr struct {
	Kind     ExprKind    `json:"kind"`
	Name     string      `json:"name,omitempty"`
	Members  []*TypeExpr `json:"members,omitempty"`
	Elem     *TypeExpr   `json:"elem,omitempty"`
	Fields   []Field     `json:"fields,omitempty"`
	Index    *TypeExpr   `json:"index,omitempty"`
	Value    string      `json:"value,omitempty"`
	Quoted   bool        `json:"quoted,omitempty"`
	Nullable bool        `json:"nullable,omitempty"`
}

// Field is a member of an inline object expression.
type Field struct {
	Name     string    `json:"name"`
	Type     *TypeExpr `json:"type"`
	Required bool      `json:"required,omitempty"`
}

func Ref(name string) *TypeExpr       { return &TypeExpr{Kind: ExprRef, Name: name} }
func Primitive(name string) *TypeExpr { return &TypeExpr{Kind: ExprPrimitive, Name: name} }
func Array(elem *TypeExpr) *TypeExpr  { return &TypeExpr{Kind: ExprArray, Elem: elem} }
func Unknown() *TypeExpr              { return &TypeExpr{Kind: ExprUnknown} }
func Void() *TypeExpr                 { return &TypeExpr{Kind: ExprVoid} }
func Binary() *TypeExpr               { return &TypeExpr{Kind: ExprBinary} }

func Union(members ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: ExprUnion, Members: members}
}

func Intersection(members ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: ExprIntersection, Members: members}
}

func StringLiteral(v string) *TypeExpr {
	return &TypeExpr{Kind: ExprLiteral, Value: v, Quoted: true}
}

func NumberLiteral(v string) *TypeExpr {
	return &TypeExpr{Kind: ExprLiteral, Value: v}
}

// expr builds the type expression for a schema. Rules are tried in order:
// reference, union, intersection, array, object, enum literals, binary,
// primitive.
func (c *Context) expr(s *model.Schema) *TypeExpr {
	if s == nil {
		return Unknown()
	}
	e := c.bareExpr(s)
	if s.IsNullable() && e.Kind != ExprUnknown {
		e.Nullable = true
	}
	return e
}

func (c *Context) bareExpr(s *model.Schema) *TypeExpr {
	if s.Ref != "" {
		return Ref(c.refClass(s.Ref))
	}
	union := s.OneOf
	if len(union) == 0 {
		union = s.AnyOf
	}
	if len(union) > 0 {
		return Union(c.exprs(union)...)
	}
	if len(s.AllOf) > 0 {
		return Intersection(c.exprs(s.AllOf)...)
	}

	typ := s.PrimaryType()
	switch {
	case typ == model.TypeArray || s.Items != nil:
		return Array(c.expr(s.Items))
	case typ == model.TypeObject || len(s.Properties) > 0:
		return c.objectExpr(s)
	case len(s.Enum) > 0:
		return c.enumExpr(s, typ)
	case typ == model.TypeString && s.Format == "binary":
		return Binary()
	case typ == "":
		return Unknown()
	case typ == model.TypeInteger:
		return Primitive(string(model.TypeNumber))
	default:
		return Primitive(string(typ))
	}
}

func (c *Context) exprs(schemas []*model.Schema) []*TypeExpr {
	out := make([]*TypeExpr, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, c.expr(s))
	}
	return out
}

func (c *Context) objectExpr(s *model.Schema) *TypeExpr {
	obj := &TypeExpr{Kind: ExprObject}
	for _, p := range s.Properties {
		obj.Fields = append(obj.Fields, Field{
			Name:     p.Name,
			Type:     c.expr(p.Value),
			Required: s.IsRequired(p.Name),
		})
	}
	if ap := s.AdditionalProperties; ap != nil && ap.Allowed {
		obj.Index = c.expr(ap.Schema)
	}
	return obj
}

func (c *Context) enumExpr(s *model.Schema, typ model.SchemaType) *TypeExpr {
	numeric := typ == model.TypeNumber || typ == model.TypeInteger
	members := make([]*TypeExpr, 0, len(s.Enum))
	for _, v := range s.Enum {
		switch {
		case v == nil:
			members = append(members, Primitive(string(model.TypeNull)))
		case numeric:
			members = append(members, NumberLiteral(fmt.Sprint(v)))
		default:
			members = append(members, StringLiteral(fmt.Sprint(v)))
		}
	}
	if len(members) == 1 {
		return members[0]
	}
	return Union(members...)
}
