package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"#/components/schemas/Pet", "Pet"},
		{"Pet", "Pet"},
		{"a/b/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, SimpleName(tt.input))
		})
	}
}

func TestToBasicChars(t *testing.T) {
	tests := []struct {
		input    string
		nonDigit bool
		expected string
	}{
		{"  Olá mundo! ", false, "Ola_mundo_"},
		{"a--b..c", false, "a_b_c"},
		{"1st", true, "_1st"},
		{"1st", false, "1st"},
		{"already_basic", true, "already_basic"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, ToBasicChars(tt.input, tt.nonDigit))
		})
	}
}

func TestMethodName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"get-user", "getUser"},
		{"get_user", "getUser"},
		{"GetUser", "getUser"},
		{"getUser", "getUser"},
		{"/pets/{id}.get", "petsIdGet"},
		{"café_order", "cafeOrder"},
		{"123abc", "_123abc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, MethodName(tt.input))
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"pet store", "PetStore"},
		{"vnd.api+json", "VndApiJson"},
		{"json", "Json"},
		{"Pet", "Pet"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, TypeName(tt.input))
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"PetService", "pet-service"},
		{"Pet", "pet"},
		{"pet_tag", "pet-tag"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, FileName(tt.input))
		})
	}
}

func TestEnumName(t *testing.T) {
	tests := []struct {
		value    string
		style    EnumStyle
		expected string
	}{
		{"in progress", EnumStyleUpper, "IN_PROGRESS"},
		{"inProgress", EnumStyleUpper, "IN_PROGRESS"},
		{"in progress", EnumStylePascal, "InProgress"},
		{"available", EnumStylePascal, "Available"},
		{"1", EnumStyleUpper, "_1"},
		{"1", EnumStylePascal, "_1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style)+"/"+tt.value, func(t *testing.T) {
			require.Equal(t, tt.expected, EnumName(tt.value, tt.style))
		})
	}
}

func TestNormalizedNamesAreFixedPoints(t *testing.T) {
	inputs := []string{"get-user", "/pets/{id}.get", "123abc", "HTTPServer", "café_order", "in progress"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			m := MethodName(in)
			require.Equal(t, m, MethodName(m))

			ty := TypeName(in)
			require.Equal(t, ty, TypeName(ty))

			f := FileName(in)
			require.Equal(t, f, FileName(f))

			up := EnumName(in, EnumStyleUpper)
			require.Equal(t, up, EnumName(up, EnumStyleUpper))

			pascal := EnumName(in, EnumStylePascal)
			require.Equal(t, pascal, EnumName(pascal, EnumStylePascal))
		})
	}
}
