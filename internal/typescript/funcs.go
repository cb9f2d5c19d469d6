package typescript

import (
	"strings"
	"text/template"

	"github.com/remkoboschker/ng-openapi-gen/internal/descriptor"
	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"tsType":      Type,
		"tsComment":   Comment,
		"quote":       Quote,
		"propName":    PropertyName,
		"paramsIn":    ParametersIn,
		"securityDoc": SecurityDoc,
		"deprecated":  Deprecated,
		"lower":       strings.ToLower,
		"upper":       strings.ToUpper,
		"join":        strings.Join,
		"dict":        Dict,
	}
}

// ParametersIn returns the parameters of op at the given location.
func ParametersIn(op *descriptor.OperationDescriptor, in string) []descriptor.ParameterDescriptor {
	var out []descriptor.ParameterDescriptor
	for _, p := range op.Parameters {
		if p.In == model.ParameterLocation(in) {
			out = append(out, p)
		}
	}
	return out
}

// SecurityDoc describes the accepted security alternatives of op, one per
// line, or "" when the operation is public.
func SecurityDoc(op *descriptor.OperationDescriptor) string {
	var lines []string
	for _, alternative := range op.Security {
		var names []string
		for _, s := range alternative {
			name := s.Name
			if len(s.Scopes) > 0 {
				name += " (" + strings.Join(s.Scopes, ", ") + ")"
			}
			names = append(names, name)
		}
		if len(names) > 0 {
			lines = append(lines, "- "+strings.Join(names, " + "))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "Security:\n" + strings.Join(lines, "\n")
}

// Deprecated returns the JSDoc deprecation tag when set.
func Deprecated(deprecated bool) string {
	if deprecated {
		return "@deprecated"
	}
	return ""
}

// Dict creates a map from key-value pairs for use in templates.
func Dict(values ...any) map[string]any {
	if len(values)%2 != 0 {
		return nil
	}
	dict := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			continue
		}
		dict[key] = values[i+1]
	}
	return dict
}
