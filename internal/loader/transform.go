package loader

import (
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
	"go.yaml.in/yaml/v4"

	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

type transformer struct {
	doc              *model.Document
	componentSchemas map[*base.Schema]string
}

// transform copies the libopenapi model into doc. Schema references stay
// $ref strings so recursive schemas never have to be followed here.
func transform(src *v3.Document, doc *model.Document) {
	t := &transformer{
		doc:              doc,
		componentSchemas: make(map[*base.Schema]string),
	}

	if src.Components != nil && src.Components.Schemas != nil {
		for name, proxy := range src.Components.Schemas.FromOldest() {
			if proxy == nil || proxy.GetReference() != "" {
				continue
			}
			if s := proxy.Schema(); s != nil {
				t.componentSchemas[s] = model.SchemaRef(name)
			}
		}
	}

	doc.Info = transformInfo(src.Info)
	doc.Servers = transformServers(src.Servers)
	doc.Tags = transformTags(src.Tags)
	doc.Security = transformSecurity(src.Security)

	if src.Components != nil {
		if src.Components.Schemas != nil {
			for name, proxy := range src.Components.Schemas.FromOldest() {
				doc.Components.Schemas.Set(name, t.transformComponentSchema(proxy))
			}
		}
		if src.Components.SecuritySchemes != nil {
			for name, scheme := range src.Components.SecuritySchemes.FromOldest() {
				if scheme != nil {
					doc.Components.SecuritySchemes.Set(name, transformSecurityScheme(scheme))
				}
			}
		}
	}

	if src.Paths != nil && src.Paths.PathItems != nil {
		for path, item := range src.Paths.PathItems.FromOldest() {
			if item != nil {
				doc.Paths.Set(path, t.transformPath(path, item))
			}
		}
	}
}

func transformInfo(info *base.Info) model.Info {
	if info == nil {
		return model.Info{}
	}
	return model.Info{
		Title:       info.Title,
		Description: info.Description,
		Version:     info.Version,
	}
}

func transformServers(servers []*v3.Server) []model.Server {
	var result []model.Server
	for _, s := range servers {
		if s == nil {
			continue
		}
		result = append(result, model.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return result
}

func transformTags(tags []*base.Tag) []model.Tag {
	var result []model.Tag
	for _, t := range tags {
		if t == nil {
			continue
		}
		result = append(result, model.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return result
}

// transformSecurity keeps each requirement as its own alternative; an empty
// requirement object means anonymous access is allowed.
func transformSecurity(reqs []*base.SecurityRequirement) []model.SecurityRequirement {
	var result []model.SecurityRequirement
	for _, req := range reqs {
		requirement := model.SecurityRequirement{}
		if req != nil && req.Requirements != nil {
			for name, scopes := range req.Requirements.FromOldest() {
				requirement.Set(name, scopes)
			}
		}
		result = append(result, requirement)
	}
	return result
}

func transformSecurityScheme(scheme *v3.SecurityScheme) *model.SecurityScheme {
	return &model.SecurityScheme{
		Type:             model.SecuritySchemeType(scheme.Type),
		Description:      scheme.Description,
		Name:             scheme.Name,
		In:               scheme.In,
		Scheme:           scheme.Scheme,
		BearerFormat:     scheme.BearerFormat,
		OpenIDConnectURL: scheme.OpenIdConnectUrl,
	}
}

func (t *transformer) transformPath(path string, item *v3.PathItem) *model.PathItem {
	result := &model.PathItem{}
	for _, p := range item.Parameters {
		if p != nil {
			result.Parameters = append(result.Parameters, t.transformParameter(p))
		}
	}

	methods := []struct {
		method string
		op     *v3.Operation
	}{
		{"get", item.Get},
		{"put", item.Put},
		{"post", item.Post},
		{"delete", item.Delete},
		{"options", item.Options},
		{"head", item.Head},
		{"patch", item.Patch},
		{"trace", item.Trace},
	}
	for _, m := range methods {
		if m.op != nil {
			result.SetOperation(m.method, t.transformOperation(path, m.method, m.op))
		}
	}
	return result
}

func (t *transformer) transformOperation(path, method string, op *v3.Operation) *model.Operation {
	operation := &model.Operation{
		OperationID: op.OperationId,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  boolPtr(op.Deprecated),
	}

	for _, p := range op.Parameters {
		if p != nil {
			operation.Parameters = append(operation.Parameters, t.transformParameter(p))
		}
	}

	if op.RequestBody != nil {
		operation.RequestBody = &model.RequestBody{
			Description: op.RequestBody.Description,
			Required:    boolPtr(op.RequestBody.Required),
			Content:     t.transformContent(op.RequestBody.Content),
		}
	}

	if op.Responses != nil {
		if op.Responses.Codes != nil {
			for code, resp := range op.Responses.Codes.FromOldest() {
				if resp != nil {
					operation.Responses.Set(code, t.transformResponse(resp))
				}
			}
		}
		if op.Responses.Default != nil {
			operation.Responses.Set("default", t.transformResponse(op.Responses.Default))
		}
	}

	// libopenapi reads `security: []` the same as an absent key, so the raw
	// tree decides whether the document requirements are overridden.
	if len(op.Security) > 0 || t.doc.Declares(model.OperationRef(path, method), "security") {
		security := transformSecurity(op.Security)
		if security == nil {
			security = []model.SecurityRequirement{}
		}
		operation.Security = &security
	}

	return operation
}

func (t *transformer) transformParameter(p *v3.Parameter) *model.Parameter {
	param := &model.Parameter{
		Name:        p.Name,
		In:          model.ParameterLocation(strings.ToLower(p.In)),
		Description: p.Description,
		Required:    boolPtr(p.Required),
		Deprecated:  p.Deprecated,
	}

	if p.Schema != nil {
		param.Schema = t.transformSchemaProxy(p.Schema)
	} else if p.Content != nil {
		for _, content := range p.Content.FromOldest() {
			if content != nil && content.Schema != nil {
				param.Schema = t.transformSchemaProxy(content.Schema)
				break
			}
		}
	}

	return param
}

func (t *transformer) transformResponse(resp *v3.Response) *model.Response {
	return &model.Response{
		Description: resp.Description,
		Content:     t.transformContent(resp.Content),
	}
}

func (t *transformer) transformContent(content *orderedmap.Map[string, *v3.MediaType]) model.Ordered[*model.MediaType] {
	if content == nil {
		return nil
	}
	var result model.Ordered[*model.MediaType]
	for mediaType, mt := range content.FromOldest() {
		media := &model.MediaType{}
		if mt != nil && mt.Schema != nil {
			media.Schema = t.transformSchemaProxy(mt.Schema)
		}
		result.Set(mediaType, media)
	}
	return result
}

// transformComponentSchema keeps a component that is itself a $ref as a bare
// reference so aliases of other components stay aliases.
func (t *transformer) transformComponentSchema(proxy *base.SchemaProxy) *model.Schema {
	if proxy == nil {
		return &model.Schema{}
	}
	if ref := proxy.GetReference(); ref != "" {
		return &model.Schema{Ref: ref}
	}
	if schema := t.transformSchema(proxy.Schema()); schema != nil {
		return schema
	}
	return &model.Schema{}
}

func (t *transformer) transformSchemaProxy(proxy *base.SchemaProxy) *model.Schema {
	if proxy == nil {
		return nil
	}

	if ref := proxy.GetReference(); ref != "" {
		return &model.Schema{Ref: ref}
	}

	s := proxy.Schema()
	if s == nil {
		return nil
	}
	if ref, ok := t.componentSchemas[s]; ok {
		return &model.Schema{Ref: ref}
	}
	return t.transformSchema(s)
}

func (t *transformer) transformSchema(s *base.Schema) *model.Schema {
	if s == nil {
		return nil
	}

	schema := &model.Schema{
		Description: s.Description,
		Format:      s.Format,
		Nullable:    boolPtr(s.Nullable),
		Deprecated:  boolPtr(s.Deprecated),
		Required:    s.Required,
	}

	for _, typ := range s.Type {
		schema.Type = append(schema.Type, model.SchemaType(typ))
	}

	for _, e := range s.Enum {
		schema.Enum = append(schema.Enum, enumValue(e))
	}

	if s.Properties != nil {
		for name, proxy := range s.Properties.FromOldest() {
			if prop := t.transformSchemaProxy(proxy); prop != nil {
				schema.Properties.Set(name, prop)
			}
		}
	}

	if s.Items != nil && s.Items.A != nil {
		schema.Items = t.transformSchemaProxy(s.Items.A)
	}

	if ap := s.AdditionalProperties; ap != nil {
		if ap.A != nil {
			value := t.transformSchemaProxy(ap.A)
			if value == nil {
				value = &model.Schema{}
			}
			schema.AdditionalProperties = &model.AdditionalProperties{Allowed: true, Schema: value}
		} else {
			schema.AdditionalProperties = &model.AdditionalProperties{Allowed: ap.B}
		}
	}

	for _, proxy := range s.AllOf {
		if member := t.transformSchemaProxy(proxy); member != nil {
			schema.AllOf = append(schema.AllOf, member)
		}
	}
	for _, proxy := range s.OneOf {
		if member := t.transformSchemaProxy(proxy); member != nil {
			schema.OneOf = append(schema.OneOf, member)
		}
	}
	for _, proxy := range s.AnyOf {
		if member := t.transformSchemaProxy(proxy); member != nil {
			schema.AnyOf = append(schema.AnyOf, member)
		}
	}

	return schema
}

// enumValue decodes an enum literal to a Go value so numbers and booleans
// keep their type.
func enumValue(node *yaml.Node) any {
	if node == nil {
		return nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return node.Value
	}
	return v
}

func boolPtr(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
