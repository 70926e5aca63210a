package sdef

import "fmt"

// SchemaError reports a malformed dictionary element, typically a missing
// required attribute. The offending element is skipped; parsing continues.
type SchemaError struct {
	Suite   string
	Context string
	Missing string
}

func (e *SchemaError) Error() string {
	if e.Suite == "" {
		return fmt.Sprintf("schema: %s: missing attribute %q", e.Context, e.Missing)
	}
	return fmt.Sprintf("schema: suite %q: %s: missing attribute %q", e.Suite, e.Context, e.Missing)
}

// DuplicateIdentifierError reports a post-merge name collision within one
// class. The colliding member keeps the suffixed replacement name.
type DuplicateIdentifierError struct {
	Class   string
	Name    string
	Renamed string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("schema: class %q: duplicate identifier %q renamed to %q", e.Class, e.Name, e.Renamed)
}

// UnresolvedTypeError reports a property, element, or parameter whose type
// string never resolved to a known class. Synthesis skips that one member.
type UnresolvedTypeError struct {
	Class  string
	Member string
	Type   string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("schema: class %q: member %q references unknown class %q", e.Class, e.Member, e.Type)
}

// CrossDocumentExtensionError reports a class-extension whose target class is
// not defined anywhere in the parsed document. Extensions across documents
// (applications) are unsupported; the contribution survives as a placeholder
// class instead.
type CrossDocumentExtensionError struct {
	Suite   string
	Extends string
}

func (e *CrossDocumentExtensionError) Error() string {
	return fmt.Sprintf("schema: suite %q: class-extension targets %q, which is not defined in this document", e.Suite, e.Extends)
}
