package descriptor

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/remkoboschker/ng-openapi-gen/internal/config"
	"github.com/remkoboschker/ng-openapi-gen/internal/model"
	"github.com/remkoboschker/ng-openapi-gen/internal/naming"
)

// Context carries the document, options and collected warnings through a
// single build. It is not safe for concurrent use.
type Context struct {
	doc      *model.Document
	cfg      *config.Config
	logger   *slog.Logger
	warnings []Warning

	// classes maps component schema names to their generated type names.
	classes map[string]string
}

// NewContext creates a build context. A nil logger discards output.
func NewContext(doc *model.Document, cfg *config.Config, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Context{doc: doc, cfg: cfg, logger: logger}
}

// Warnings returns the warnings collected so far, in emission order.
func (c *Context) Warnings() []Warning {
	return c.warnings
}

func (c *Context) warn(code WarningCode, location, format string, args ...any) {
	w := Warning{Code: code, Location: location, Message: fmt.Sprintf(format, args...)}
	c.warnings = append(c.warnings, w)
	c.logger.Warn(w.Message, "code", string(code), "location", location)
}

// modelClass maps a schema name to its generated type name.
func (c *Context) modelClass(name string) string {
	if class, ok := c.classes[name]; ok {
		return class
	}
	return c.baseClass(name)
}

func (c *Context) baseClass(name string) string {
	return c.cfg.NamePrefix + naming.TypeName(name) + c.cfg.NameSuffix
}

// refClass maps a $ref to its generated type name.
func (c *Context) refClass(ref string) string {
	if name, ok := model.SchemaName(ref); ok {
		return c.modelClass(name)
	}
	return c.modelClass(naming.SimpleName(ref))
}

// assignClasses names every component schema in document order. When two
// schemas map to the same type name the first keeps it and later ones get
// the first free name_N.
func (c *Context) assignClasses() {
	schemas := c.doc.Components.Schemas
	c.classes = make(map[string]string, len(schemas))
	bases := make(map[string]bool, len(schemas))
	for _, entry := range schemas {
		bases[c.baseClass(entry.Name)] = true
	}

	owners := map[string]string{}
	taken := func(class string) bool {
		_, assigned := owners[class]
		return assigned || bases[class]
	}
	for _, entry := range schemas {
		class := c.baseClass(entry.Name)
		if owner, clash := owners[class]; clash {
			unique := uniqueName(class, taken)
			c.warn(WarnDuplicateTypeName, model.SchemaRef(entry.Name),
				"schemas %s and %s both map to type %s, assuming %s for %s", owner, entry.Name, class, unique, entry.Name)
			class = unique
		}
		owners[class] = entry.Name
		c.classes[entry.Name] = class
	}
}

func (c *Context) serviceClass(tag string) string {
	return c.cfg.ServicePrefix + naming.TypeName(tag) + c.cfg.ServiceSuffix
}

func (c *Context) enumStyle() naming.EnumStyle {
	if c.cfg.EnumStyle == "" {
		return naming.EnumStylePascal
	}
	return naming.EnumStyle(c.cfg.EnumStyle)
}
