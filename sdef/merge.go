package sdef

import "fmt"

// Merge folds every class-extension into the class it extends and clears the
// suites' extension lists. Extension contributions are appended after the
// base class's own members, in document order across all extensions that
// target the same class.
//
// An extension whose target is not defined in its own suite first produces a
// placeholder class holding only the contributions. After all suites are
// merged, a document-wide reconciliation pass folds each placeholder into
// the real class wherever one exists in another suite. A placeholder whose
// target exists nowhere in the document survives as a class of its own and
// is reported as a *CrossDocumentExtensionError diagnostic.
//
// Merge finishes by de-duplicating member names within every class:
// collisions keep appending a deterministic numeric suffix ("name",
// "name_2", "name_3", ...) and are reported as *DuplicateIdentifierError
// diagnostics.
func Merge(d *Dictionary) []error {
	var diags []error

	for _, suite := range d.Suites {
		for _, ext := range suite.Extensions {
			target := classInSuite(suite, ext.Extends)
			if target == nil {
				target = &Class{
					Name:        ext.Extends,
					Description: ext.Description,
					Placeholder: true,
				}
				suite.Classes = append(suite.Classes, target)
			}
			appendExtension(target, ext)
		}
		suite.Extensions = nil
	}

	// Second pass: reconcile placeholders against real classes defined in
	// other suites of the same document.
	for _, suite := range d.Suites {
		kept := suite.Classes[:0]
		for _, c := range suite.Classes {
			if !c.Placeholder {
				kept = append(kept, c)
				continue
			}
			real := realClass(d, c.Name)
			if real == nil {
				// Cross-document target; keep the placeholder as a class.
				diags = append(diags, &CrossDocumentExtensionError{Suite: suite.Name, Extends: c.Name})
				c.Placeholder = false
				kept = append(kept, c)
				continue
			}
			real.Properties = append(real.Properties, c.Properties...)
			real.Elements = append(real.Elements, c.Elements...)
			real.RespondsTo = append(real.RespondsTo, c.RespondsTo...)
		}
		suite.Classes = kept
	}

	for _, suite := range d.Suites {
		for _, c := range suite.Classes {
			diags = append(diags, dedupeMembers(c)...)
		}
	}
	return diags
}

func classInSuite(s *Suite, name string) *Class {
	for _, c := range s.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// realClass finds a non-placeholder class by name anywhere in the document.
func realClass(d *Dictionary, name string) *Class {
	for _, s := range d.Suites {
		for _, c := range s.Classes {
			if c.Name == name && !c.Placeholder {
				return c
			}
		}
	}
	return nil
}

func appendExtension(c *Class, ext *Extension) {
	c.Properties = append(c.Properties, ext.Properties...)
	c.Elements = append(c.Elements, ext.Elements...)
	c.RespondsTo = append(c.RespondsTo, ext.RespondsTo...)
}

// dedupeMembers enforces the post-merge invariant that property and element
// names are unique within one class. Properties and elements share a single
// namespace because both become accessor methods on the synthesized types.
func dedupeMembers(c *Class) []error {
	var diags []error
	used := make(map[string]bool, len(c.Properties)+len(c.Elements))

	for i := range c.Properties {
		name := uniqueName(used, c.Properties[i].Name)
		if name != c.Properties[i].Name {
			diags = append(diags, &DuplicateIdentifierError{Class: c.Name, Name: c.Properties[i].Name, Renamed: name})
			c.Properties[i].Name = name
		}
		used[name] = true
	}
	for i := range c.Elements {
		name := uniqueName(used, c.Elements[i].Name)
		if name != c.Elements[i].Name {
			diags = append(diags, &DuplicateIdentifierError{Class: c.Name, Name: c.Elements[i].Name, Renamed: name})
			c.Elements[i].Name = name
		}
		used[name] = true
	}
	return diags
}

func uniqueName(used map[string]bool, name string) string {
	if !used[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if !used[candidate] {
			return candidate
		}
	}
}
