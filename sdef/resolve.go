package sdef

// Resolve assigns the dictionary's type-name prefix, each class's qualified
// name, and a TypeRef for every raw type string in the document: property
// types, element types, and command-parameter types.
//
// The fixed mapping is: text -> string, boolean -> bool, number -> float,
// integer -> int, rectangle -> geometry, specifier -> generic object
// reference. Any other string is a class reference, qualified with the
// prefix; the reference is marked unresolved when no class of that name
// exists after the merge pass. Unresolved references are reported as
// *UnresolvedTypeError diagnostics and decided per member at synthesis time.
//
// Resolve must run after Merge so placeholder reconciliation has finished.
func Resolve(d *Dictionary) []error {
	d.Prefix = titleName(d.AppName)

	known := make(map[string]bool)
	for _, s := range d.Suites {
		for _, c := range s.Classes {
			c.QualifiedName = d.Prefix + titleName(c.Name)
			known[c.Name] = true
		}
	}

	var diags []error
	for _, s := range d.Suites {
		for _, c := range s.Classes {
			for i := range c.Properties {
				p := &c.Properties[i]
				p.Type = d.resolveType(p.RawType, known)
				if !p.Type.IsResolved() {
					diags = append(diags, &UnresolvedTypeError{Class: c.Name, Member: p.Name, Type: p.RawType})
				}
			}
			for i := range c.Elements {
				e := &c.Elements[i]
				e.Type = d.classRef(e.ClassName, known)
				if !e.Type.IsResolved() {
					diags = append(diags, &UnresolvedTypeError{Class: c.Name, Member: e.Name, Type: e.ClassName})
				}
			}
		}
		for _, cmd := range s.Commands {
			for i := range cmd.Parameters {
				p := &cmd.Parameters[i]
				p.Type = d.resolveType(p.RawType, known)
				if !p.Type.IsResolved() {
					member := p.Name
					if p.Direct {
						member = "direct parameter"
					}
					diags = append(diags, &UnresolvedTypeError{Class: "command " + cmd.Name, Member: member, Type: p.RawType})
				}
			}
		}
	}
	return diags
}

func (d *Dictionary) resolveType(raw string, known map[string]bool) TypeRef {
	switch raw {
	case "text":
		return TypeRef{Kind: KindString}
	case "boolean":
		return TypeRef{Kind: KindBool}
	case "number":
		return TypeRef{Kind: KindFloat}
	case "integer":
		return TypeRef{Kind: KindInt}
	case "rectangle":
		return TypeRef{Kind: KindRectangle}
	case "specifier":
		return TypeRef{Kind: KindObjectRef}
	default:
		return d.classRef(normalizeName(raw), known)
	}
}

func (d *Dictionary) classRef(name string, known map[string]bool) TypeRef {
	return TypeRef{
		Kind:          KindClass,
		ClassName:     name,
		QualifiedName: d.Prefix + titleName(name),
		ClassResolved: known[name],
	}
}
