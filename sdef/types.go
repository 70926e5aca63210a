package sdef

import "strings"

// TypeKind discriminates the resolved forms of a dictionary type string.
type TypeKind int

const (
	// KindInvalid is the zero value; a TypeRef of this kind was never resolved.
	KindInvalid TypeKind = iota
	// KindString maps the dictionary type "text".
	KindString
	// KindBool maps "boolean".
	KindBool
	// KindFloat maps "number".
	KindFloat
	// KindInt maps "integer".
	KindInt
	// KindRectangle maps "rectangle" (four integers: origin and size).
	KindRectangle
	// KindObjectRef maps "specifier", a generic reference to any remote object.
	KindObjectRef
	// KindClass is a reference to another class in the dictionary.
	KindClass
)

func (k TypeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindRectangle:
		return "rectangle"
	case KindObjectRef:
		return "object-ref"
	case KindClass:
		return "class"
	default:
		return "invalid"
	}
}

// TypeRef is the resolved form of a raw type string.
type TypeRef struct {
	Kind TypeKind
	// ClassName is the dictionary-local target class name (Kind == KindClass).
	ClassName string
	// QualifiedName is Prefix + titled ClassName (Kind == KindClass).
	QualifiedName string
	// ClassResolved reports whether ClassName named an existing class
	// after the merge pass. Only meaningful when Kind == KindClass.
	ClassResolved bool
}

// IsResolved reports whether the reference can be synthesized: primitives,
// geometry, and object references always can; a class reference only when
// its target class exists.
func (t TypeRef) IsResolved() bool {
	if t.Kind == KindInvalid {
		return false
	}
	if t.Kind == KindClass {
		return t.ClassResolved
	}
	return true
}

// normalizeName lower-cases a dictionary name and replaces spaces with
// underscores ("file name" -> "file_name").
func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// titleName title-cases each word and strips the separators
// ("system events" -> "SystemEvents", "rich_text" -> "RichText").
func titleName(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	var b strings.Builder
	for _, word := range words {
		b.WriteString(strings.ToUpper(word[:1]))
		if len(word) > 1 {
			b.WriteString(word[1:])
		}
	}
	return b.String()
}
