package descriptor

import (
	"slices"
	"strings"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

// Import names a generated type and the file it lives in.
type Import struct {
	Type string `json:"type"`
	File string `json:"file"`
}

// DependencyRecord lists what a type or service refers to. Imports are
// needed by the generated code itself; Additional names are reachable but
// never imported, such as types used only in error responses.
type DependencyRecord struct {
	Imports    []Import `json:"imports"`
	Additional []string `json:"additional,omitempty"`
}

// walkRefs calls visit for every $ref reachable from s without crossing a
// reference. Composition members, array items, properties and additional
// properties are descended into.
func walkRefs(s *model.Schema, visit func(ref string) error) error {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		return visit(s.Ref)
	}
	for _, group := range [][]*model.Schema{s.AllOf, s.AnyOf, s.OneOf} {
		for _, member := range group {
			if err := walkRefs(member, visit); err != nil {
				return err
			}
		}
	}
	if err := walkRefs(s.Items, visit); err != nil {
		return err
	}
	for _, p := range s.Properties {
		if err := walkRefs(p.Value, visit); err != nil {
			return err
		}
	}
	return walkRefs(s.AdditionalProperties.ValueSchema(), visit)
}

// dependencies accumulates the references of one type or service.
type dependencies struct {
	ctx        *Context
	self       string
	imports    map[string]struct{}
	additional map[string]struct{}
}

func (c *Context) newDependencies(self string) *dependencies {
	return &dependencies{
		ctx:        c,
		self:       self,
		imports:    map[string]struct{}{},
		additional: map[string]struct{}{},
	}
}

// collect records every reference in s. Each reference must resolve within
// the document.
func (d *dependencies) collect(s *model.Schema, additional bool, location string) error {
	return walkRefs(s, func(ref string) error {
		if _, err := d.ctx.doc.Lookup(ref); err != nil {
			return &BrokenReferenceError{Ref: ref, Location: location, Err: err}
		}
		name := d.ctx.refClass(ref)
		switch {
		case additional:
			d.additional[name] = struct{}{}
		case name != d.self:
			d.imports[name] = struct{}{}
		}
		return nil
	})
}

func (d *dependencies) record() DependencyRecord {
	rec := DependencyRecord{Imports: []Import{}}
	for name := range d.imports {
		rec.Imports = append(rec.Imports, Import{Type: name, File: fileName(name)})
	}
	slices.SortFunc(rec.Imports, func(a, b Import) int {
		return strings.Compare(a.Type, b.Type)
	})
	for name := range d.additional {
		if _, imported := d.imports[name]; !imported {
			rec.Additional = append(rec.Additional, name)
		}
	}
	slices.Sort(rec.Additional)
	return rec
}
