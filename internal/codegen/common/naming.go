package common

import (
	"strings"
	"unicode"
)

// ToPascalCase renders a snake- or space-separated dictionary name as an
// exported Go identifier ("file_name" -> "FileName").
func ToPascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var result strings.Builder
	for _, word := range words {
		result.WriteString(strings.ToUpper(word[:1]))
		if len(word) > 1 {
			result.WriteString(word[1:])
		}
	}
	return result.String()
}

// ToCamelCase renders a dictionary name as an unexported Go identifier
// ("file_name" -> "fileName").
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return ""
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// PackageName renders an application name as a Go package name: lower-cased
// with everything but letters and digits dropped ("System Events" ->
// "systemevents").
func PackageName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "bindings"
	}
	return b.String()
}
