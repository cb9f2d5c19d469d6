// Package typescript renders descriptor type expressions and comments as
// TypeScript source text.
package typescript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/remkoboschker/ng-openapi-gen/internal/descriptor"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Type returns the TypeScript text of e.
func Type(e *descriptor.TypeExpr) string {
	if e == nil {
		return "any"
	}
	text := bareType(e)
	if e.Nullable {
		return "null | " + text
	}
	return text
}

func bareType(e *descriptor.TypeExpr) string {
	switch e.Kind {
	case descriptor.ExprRef, descriptor.ExprPrimitive:
		return e.Name
	case descriptor.ExprUnion:
		return join(e.Members, " | ", false)
	case descriptor.ExprIntersection:
		return join(e.Members, " & ", true)
	case descriptor.ExprArray:
		return "Array<" + Type(e.Elem) + ">"
	case descriptor.ExprObject:
		return objectType(e)
	case descriptor.ExprLiteral:
		if e.Quoted {
			return Quote(e.Value)
		}
		return e.Value
	case descriptor.ExprBinary:
		return "Blob"
	case descriptor.ExprVoid:
		return "void"
	}
	return "any"
}

// join renders members with sep. Inside an intersection, unions and
// nullable members are parenthesized.
func join(members []*descriptor.TypeExpr, sep string, intersection bool) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		text := Type(m)
		if intersection && m != nil && (m.Kind == descriptor.ExprUnion || m.Nullable) {
			text = "(" + text + ")"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, sep)
}

func objectType(e *descriptor.TypeExpr) string {
	var parts []string
	for _, f := range e.Fields {
		optional := "?"
		if f.Required {
			optional = ""
		}
		parts = append(parts, fmt.Sprintf("%s%s: %s", PropertyName(f.Name), optional, Type(f.Type)))
	}
	if e.Index != nil {
		parts = append(parts, "[key: string]: "+Type(e.Index))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// PropertyName returns name as an object key, quoted unless it is a plain
// identifier.
func PropertyName(name string) string {
	if identifier.MatchString(name) {
		return name
	}
	return Quote(name)
}

// Quote returns s as a single-quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\', '\'':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x2028 || r == 0x2029 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// Comment renders a JSDoc block indented by indent spaces. Empty paragraphs
// are dropped; it returns "" when nothing is left.
func Comment(indent int, paragraphs ...string) string {
	var lines []string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		for _, l := range strings.Split(p, "\n") {
			lines = append(lines, strings.TrimRight(strings.ReplaceAll(l, "*/", "*\\/"), " \t"))
		}
	}
	if len(lines) == 0 {
		return ""
	}

	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	b.WriteString(pad + "/**\n")
	for _, l := range lines {
		if l == "" {
			b.WriteString(pad + " *\n")
			continue
		}
		b.WriteString(pad + " * " + l + "\n")
	}
	b.WriteString(pad + " */\n")
	return b.String()
}
