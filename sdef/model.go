// Package sdef parses scripting-dictionary (sdef) XML documents into a
// schema model: suites of classes, class-extensions, and commands. The model
// is produced in three passes: Parse builds the raw suites, Merge folds
// class-extensions into their target classes, and Resolve maps every type
// string to a TypeRef and assigns qualified type names.
package sdef

// Dictionary is one parsed sdef document for one application.
type Dictionary struct {
	// AppName is the human-readable application name the dictionary was
	// parsed for, e.g. "Keynote" or "System Events".
	AppName string
	// Prefix is the application-specific type-name prefix derived from
	// AppName ("System Events" -> "SystemEvents"). Assigned by Resolve.
	Prefix string
	Suites []*Suite
}

// Suite is a named grouping of classes, extensions, and commands.
type Suite struct {
	Name        string
	Description string
	Classes     []*Class
	// Extensions are consumed by Merge and cleared afterwards.
	Extensions []*Extension
	// Commands maps command name (snake-cased) to its definition.
	Commands map[string]*Command
}

// Class is one scriptable class. Mutated during Merge (extensions append to
// its lists); treated as immutable afterwards.
type Class struct {
	// Name is the dictionary-local name, e.g. "document".
	Name        string
	Description string
	// QualifiedName is Prefix + titled Name with spaces stripped,
	// e.g. "KeynoteDocument". Assigned by Resolve.
	QualifiedName string
	Properties    []Property
	Elements      []Element
	RespondsTo    []string

	// Placeholder marks a class synthesized by Merge for an extension whose
	// target was not defined in the same suite. Reconciled document-wide in
	// a second merge pass; a leftover placeholder stays as a class.
	Placeholder bool
}

// Extension is a schema fragment extending a class defined elsewhere.
// It carries the same shape as Class but is never synthesized on its own.
type Extension struct {
	// Extends is the target class name.
	Extends     string
	Description string
	Properties  []Property
	Elements    []Element
	RespondsTo  []string
}

// Property is a named, typed attribute of a class.
type Property struct {
	// Name is snake-cased and unique within its owning class after Merge.
	Name        string
	RawType     string
	Type        TypeRef
	Description string
}

// Element is a to-many containment relationship. Name is the pluralized
// accessor name ("slide" -> "slides"); ClassName stays singular.
type Element struct {
	Name      string
	ClassName string
	Type      TypeRef
}

// Command is a suite-level verb a class may respond to.
type Command struct {
	// Name is the snake-cased command name, used as the suite command-table
	// key and as the invoke name on the wire.
	Name string
	// MethodName is the name synthesized accessors use. Usually equal to
	// Name; a single-word command taking a direct parameter gets the
	// "_command" suffix so it cannot collide with a property accessor.
	MethodName  string
	Description string
	// Parameters holds the direct parameter first (if any), then named
	// parameters in document order.
	Parameters []Parameter
}

// Parameter is one command parameter. A direct parameter is unnamed and maps
// positionally; named parameters are forwarded by keyword.
type Parameter struct {
	Name        string
	Direct      bool
	RawType     string
	Type        TypeRef
	Description string
}

// Class lookup across all suites of a dictionary, by dictionary-local name.
func (d *Dictionary) ClassByName(name string) *Class {
	for _, s := range d.Suites {
		for _, c := range s.Classes {
			if c.Name == name {
				return c
			}
		}
	}
	return nil
}

// CommandByName looks up a command across all suites.
func (d *Dictionary) CommandByName(name string) *Command {
	for _, s := range d.Suites {
		if c, ok := s.Commands[name]; ok {
			return c
		}
	}
	return nil
}
