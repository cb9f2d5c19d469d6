// Package model holds the in-memory OpenAPI document the generator works on.
// The loader fills it from the libopenapi v3 model; schema references are
// kept as strings and resolved on demand against the raw document tree.
package model

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// HTTPMethods lists the operation keys of a path item in the order they are
// visited.
var HTTPMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

type Document struct {
	OpenAPI    string                `json:"openapi"`
	Info       Info                  `json:"info"`
	Servers    []Server              `json:"servers,omitempty"`
	Tags       []Tag                 `json:"tags,omitempty"`
	Paths      Ordered[*PathItem]    `json:"paths,omitempty"`
	Components Components            `json:"components"`
	Security   []SecurityRequirement `json:"security,omitempty"`

	root *yaml.Node
}

// NewDocument parses the raw YAML or JSON tree of data. The typed fields are
// left empty for the loader to fill in.
func NewDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing document: top level is not a mapping")
	}
	return &Document{root: root.Content[0]}, nil
}

// Tag returns the declared tag with the given name, or a bare tag.
func (d *Document) Tag(name string) Tag {
	for _, t := range d.Tags {
		if t.Name == name {
			return t
		}
	}
	return Tag{Name: name}
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Components keeps the component tables generation reads by name. Shared
// parameters, request bodies and responses arrive already resolved on the
// operations that use them.
type Components struct {
	Schemas         Ordered[*Schema]         `json:"schemas,omitempty"`
	SecuritySchemes Ordered[*SecurityScheme] `json:"securitySchemes,omitempty"`
}

type PathItem struct {
	Parameters []*Parameter `json:"parameters,omitempty"`
	Get        *Operation   `json:"get,omitempty"`
	Put        *Operation   `json:"put,omitempty"`
	Post       *Operation   `json:"post,omitempty"`
	Delete     *Operation   `json:"delete,omitempty"`
	Options    *Operation   `json:"options,omitempty"`
	Head       *Operation   `json:"head,omitempty"`
	Patch      *Operation   `json:"patch,omitempty"`
	Trace      *Operation   `json:"trace,omitempty"`
}

// Operation returns the operation declared for method, if any.
func (p *PathItem) Operation(method string) *Operation {
	switch strings.ToLower(method) {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// SetOperation stores op under method.
func (p *PathItem) SetOperation(method string, op *Operation) {
	switch strings.ToLower(method) {
	case "get":
		p.Get = op
	case "put":
		p.Put = op
	case "post":
		p.Post = op
	case "delete":
		p.Delete = op
	case "options":
		p.Options = op
	case "head":
		p.Head = op
	case "patch":
		p.Patch = op
	case "trace":
		p.Trace = op
	}
}

// Operation security is nil when the operation inherits the document
// requirements and an empty slice when it declares `security: []`.
type Operation struct {
	OperationID string                 `json:"operationId,omitempty"`
	Summary     string                 `json:"summary,omitempty"`
	Description string                 `json:"description,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Deprecated  bool                   `json:"deprecated,omitempty"`
	Parameters  []*Parameter           `json:"parameters,omitempty"`
	RequestBody *RequestBody           `json:"requestBody,omitempty"`
	Responses   Ordered[*Response]     `json:"responses,omitempty"`
	Security    *[]SecurityRequirement `json:"security,omitempty"`
}

type ParameterLocation string

const (
	LocationPath   ParameterLocation = "path"
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationCookie ParameterLocation = "cookie"
)

type Parameter struct {
	Name        string            `json:"name"`
	In          ParameterLocation `json:"in"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required,omitempty"`
	Deprecated  bool              `json:"deprecated,omitempty"`
	Schema      *Schema           `json:"schema,omitempty"`
}

type RequestBody struct {
	Description string              `json:"description,omitempty"`
	Required    bool                `json:"required,omitempty"`
	Content     Ordered[*MediaType] `json:"content,omitempty"`
}

type Response struct {
	Description string              `json:"description,omitempty"`
	Content     Ordered[*MediaType] `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// SecurityRequirement maps scheme names to required scopes.
type SecurityRequirement = Ordered[[]string]

type SecuritySchemeType string

const (
	SecurityTypeAPIKey        SecuritySchemeType = "apiKey"
	SecurityTypeHTTP          SecuritySchemeType = "http"
	SecurityTypeOAuth2        SecuritySchemeType = "oauth2"
	SecurityTypeOpenIDConnect SecuritySchemeType = "openIdConnect"
	SecurityTypeMutualTLS     SecuritySchemeType = "mutualTLS"
)

type SecurityScheme struct {
	Type             SecuritySchemeType `json:"type"`
	Description      string             `json:"description,omitempty"`
	Name             string             `json:"name,omitempty"`
	In               string             `json:"in,omitempty"`
	Scheme           string             `json:"scheme,omitempty"`
	BearerFormat     string             `json:"bearerFormat,omitempty"`
	OpenIDConnectURL string             `json:"openIdConnectUrl,omitempty"`
}
