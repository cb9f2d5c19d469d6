// Package naming turns arbitrary document strings into identifiers and file
// names. Every function is pure; none of them resolves collisions.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stoewer/go-strcase"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EnumStyle selects how enum constant names are formed.
type EnumStyle string

const (
	EnumStyleUpper  EnumStyle = "upper"
	EnumStylePascal EnumStyle = "pascal"
	EnumStyleAlias  EnumStyle = "alias"
)

var nonWordRun = regexp.MustCompile(`[^\w]+`)

// SimpleName returns the part of name after the last '/'.
func SimpleName(name string) string {
	return name[strings.LastIndex(name, "/")+1:]
}

// ToBasicChars reduces text to letters, digits and underscores. Diacritics are
// removed and every run of other characters becomes a single '_'. When
// forceNonDigitStart is set, a leading digit is prefixed with '_'.
func ToBasicChars(text string, forceNonDigitStart bool) string {
	text = deburr(strings.TrimSpace(text))
	text = nonWordRun.ReplaceAllString(text, "_")
	if forceNonDigitStart {
		text = nonDigitStart(text)
	}
	return text
}

// MethodName returns a lowerCamelCase identifier for name.
func MethodName(name string) string {
	return nonDigitStart(strcase.LowerCamelCase(words(ToBasicChars(name, true))))
}

// TypeName returns an UpperCamelCase identifier for name.
func TypeName(name string) string {
	return UpperFirst(MethodName(name))
}

// FileName returns the kebab-case file slug for text.
func FileName(text string) string {
	return strcase.KebabCase(words(ToBasicChars(text, false)))
}

// EnumName returns the constant name for an enum value.
func EnumName(value string, style EnumStyle) string {
	name := words(ToBasicChars(value, true))
	if style == EnumStyleUpper {
		return nonDigitStart(strcase.UpperSnakeCase(name))
	}
	return nonDigitStart(strcase.UpperCamelCase(name))
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// words drops the separators around the outside of s so that the case
// converters do not treat them as word boundaries.
func words(s string) string {
	return strings.Trim(s, "_")
}

func nonDigitStart(s string) string {
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		return "_" + s
	}
	return s
}

func deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
