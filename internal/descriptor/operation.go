package descriptor

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
	"github.com/remkoboschker/ng-openapi-gen/internal/naming"
)

const securitySchemesPrefix = "#/components/securitySchemes/"

var pathParam = regexp.MustCompile(`\{([^{}]+)\}`)

// OperationDescriptor describes one path/method pair.
type OperationDescriptor struct {
	ID             string   `json:"id"`
	Method         string   `json:"method"`
	Path           string   `json:"path"`
	PathVar        string   `json:"pathVar"`
	PathExpression string   `json:"pathExpression"`
	Summary        string   `json:"summary,omitempty"`
	Description    string   `json:"description,omitempty"`
	Deprecated     bool     `json:"deprecated,omitempty"`
	Tags           []string `json:"tags"`

	Parameters         []ParameterDescriptor  `json:"parameters"`
	ParametersRequired bool                   `json:"parametersRequired"`
	RequestBody        *RequestBodyDescriptor `json:"requestBody,omitempty"`
	Responses          []ResponseDescriptor   `json:"responses"`
	SuccessResponse    *ResponseDescriptor    `json:"successResponse,omitempty"`
	Security           [][]SecurityDescriptor `json:"security,omitempty"`
	Variants           []MethodVariant        `json:"variants"`
}

// Location identifies the operation as "path.method".
func (o *OperationDescriptor) Location() string {
	return o.Path + "." + o.Method
}

// HasParameters reports whether the generated method takes a params object.
func (o *OperationDescriptor) HasParameters() bool {
	return len(o.Parameters) > 0 || o.RequestBody != nil
}

// Parameter returns the parameter with the given name, if any.
func (o *OperationDescriptor) Parameter(name string) (ParameterDescriptor, bool) {
	i := slices.IndexFunc(o.Parameters, func(p ParameterDescriptor) bool { return p.Name == name })
	if i < 0 {
		return ParameterDescriptor{}, false
	}
	return o.Parameters[i], true
}

type ParameterDescriptor struct {
	Name        string                  `json:"name"`
	Var         string                  `json:"var"`
	In          model.ParameterLocation `json:"in"`
	Required    bool                    `json:"required,omitempty"`
	Description string                  `json:"description,omitempty"`
	Deprecated  bool                    `json:"deprecated,omitempty"`
	Type        *TypeExpr               `json:"type"`
	Schema      *model.Schema           `json:"-"`
}

// Content is one media type entry of a request body or response.
type Content struct {
	MediaType string        `json:"mediaType"`
	Type      *TypeExpr     `json:"type"`
	Payload   PayloadKind   `json:"payload"`
	Schema    *model.Schema `json:"-"`
}

type RequestBodyDescriptor struct {
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Content     []Content `json:"content"`
}

type ResponseDescriptor struct {
	StatusCode  string    `json:"statusCode"`
	Description string    `json:"description,omitempty"`
	Content     []Content `json:"content,omitempty"`
}

// SecurityDescriptor is one scheme of a security alternative.
type SecurityDescriptor struct {
	Name   string               `json:"name"`
	Scheme model.SecurityScheme `json:"scheme"`
	Scopes []string             `json:"scopes,omitempty"`
}

// buildOperation derives the descriptor of one operation. id must already be
// unique.
func (c *Context) buildOperation(id, path, method string, item *model.PathItem, spec *model.Operation) (*OperationDescriptor, error) {
	op := &OperationDescriptor{
		ID:          id,
		Method:      method,
		Path:        path,
		PathVar:     naming.UpperFirst(id) + "Path",
		Summary:     spec.Summary,
		Description: spec.Description,
		Deprecated:  spec.Deprecated,
		Tags:        uniqueTags(spec.Tags),
	}
	location := op.Location()

	op.Parameters = mergeParameters(c.parameters(op, item.Parameters, location), c.parameters(op, spec.Parameters, location))
	op.ParametersRequired = slices.ContainsFunc(op.Parameters, func(p ParameterDescriptor) bool { return p.Required })

	requirements := c.doc.Security
	if spec.Security != nil {
		requirements = *spec.Security
	}
	var err error
	if op.Security, err = c.security(requirements, location); err != nil {
		return nil, err
	}

	if body := spec.RequestBody; body != nil {
		op.RequestBody = &RequestBodyDescriptor{
			Description: body.Description,
			Required:    body.Required,
			Content:     c.contents(body.Content),
		}
		op.ParametersRequired = op.ParametersRequired || body.Required
	}

	op.Responses = c.responses(spec.Responses)
	for i := range op.Responses {
		if isSuccess(op.Responses[i].StatusCode) {
			op.SuccessResponse = &op.Responses[i]
			break
		}
	}

	op.PathExpression = c.pathExpression(op)
	op.Variants = buildVariants(op)
	return op, nil
}

// parameters drops cookie and excluded parameters with a warning.
func (c *Context) parameters(op *OperationDescriptor, params []*model.Parameter, location string) []ParameterDescriptor {
	var out []ParameterDescriptor
	for _, p := range params {
		if p == nil {
			continue
		}
		switch {
		case p.In == model.LocationCookie:
			c.warn(WarnUnsupportedParameterLocation, location,
				"ignoring cookie parameter %s.%s as cookie parameters cannot be sent by the client", op.ID, p.Name)
		case c.cfg.ParameterExcluded(p.Name):
			c.warn(WarnExcludedParameter, location, "ignoring excluded parameter %s.%s", op.ID, p.Name)
		default:
			out = append(out, c.parameter(p))
		}
	}
	return out
}

func (c *Context) parameter(p *model.Parameter) ParameterDescriptor {
	in := p.In
	if in == "" {
		in = model.LocationQuery
	}
	return ParameterDescriptor{
		Name:        p.Name,
		Var:         naming.MethodName(p.Name),
		In:          in,
		Required:    in == model.LocationPath || p.Required,
		Description: p.Description,
		Deprecated:  p.Deprecated,
		Type:        c.expr(p.Schema),
		Schema:      p.Schema,
	}
}

// mergeParameters appends the operation's parameters to the path item's.
// An operation parameter replaces a path parameter with the same name and
// location.
func mergeParameters(pathParams, opParams []ParameterDescriptor) []ParameterDescriptor {
	merged := slices.Clone(pathParams)
	for _, p := range opParams {
		i := slices.IndexFunc(merged, func(m ParameterDescriptor) bool { return m.Name == p.Name && m.In == p.In })
		if i >= 0 {
			merged[i] = p
		} else {
			merged = append(merged, p)
		}
	}
	return merged
}

func (c *Context) security(requirements []model.SecurityRequirement, location string) ([][]SecurityDescriptor, error) {
	var out [][]SecurityDescriptor
	for _, req := range requirements {
		alternative := []SecurityDescriptor{}
		for _, entry := range req {
			scheme, ok := c.doc.Components.SecuritySchemes.Get(entry.Name)
			if !ok || scheme == nil {
				ref := securitySchemesPrefix + entry.Name
				return nil, &BrokenReferenceError{Ref: ref, Location: location,
					Err: fmt.Errorf("%w: no security scheme named %s", model.ErrBrokenReference, entry.Name)}
			}
			alternative = append(alternative, SecurityDescriptor{Name: entry.Name, Scheme: *scheme, Scopes: entry.Value})
		}
		out = append(out, alternative)
	}
	return out, nil
}

func (c *Context) contents(media model.Ordered[*model.MediaType]) []Content {
	out := make([]Content, 0, len(media))
	for _, m := range media {
		var s *model.Schema
		if m.Value != nil {
			s = m.Value.Schema
		}
		out = append(out, Content{
			MediaType: m.Name,
			Type:      c.expr(s),
			Payload:   ClassifyMediaType(m.Name),
			Schema:    s,
		})
	}
	return out
}

// responses orders the responses by status code. Numeric codes come first in
// ascending order; "default" and range keys keep their document order after
// them.
func (c *Context) responses(responses model.Ordered[*model.Response]) []ResponseDescriptor {
	out := make([]ResponseDescriptor, 0, len(responses))
	for _, r := range responses {
		desc := ResponseDescriptor{StatusCode: r.Name}
		if r.Value != nil {
			desc.Description = r.Value.Description
			desc.Content = c.contents(r.Value.Content)
		}
		out = append(out, desc)
	}
	slices.SortStableFunc(out, func(a, b ResponseDescriptor) int {
		an, aok := statusCode(a.StatusCode)
		bn, bok := statusCode(b.StatusCode)
		switch {
		case aok && bok:
			return cmp.Compare(an, bn)
		case aok:
			return -1
		case bok:
			return 1
		}
		return 0
	})
	return out
}

func statusCode(code string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	return n, err == nil
}

func isSuccess(code string) bool {
	n, ok := statusCode(code)
	return ok && n >= 200 && n < 300
}

// pathExpression rewrites every {name} of the path as ${params.var}. A
// placeholder without a path parameter keeps its raw name.
func (c *Context) pathExpression(op *OperationDescriptor) string {
	return pathParam.ReplaceAllStringFunc(op.Path, func(m string) string {
		name := m[1 : len(m)-1]
		v := name
		i := slices.IndexFunc(op.Parameters, func(p ParameterDescriptor) bool {
			return p.Name == name && p.In == model.LocationPath
		})
		if i >= 0 {
			v = op.Parameters[i].Var
		} else {
			c.warn(WarnMalformedPathTemplate, op.Location(),
				"path placeholder {%s} has no matching path parameter", name)
		}
		return "${params." + v + "}"
	})
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
