// Package templates holds the built-in TypeScript templates.
package templates

import "embed"

//go:embed ts/*.tmpl
var FS embed.FS
