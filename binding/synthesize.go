package binding

import "goxa/sdef"

// Synthesize builds the binding model from a merged, resolved dictionary.
//
// Failure is per member, never per class: a property or element whose type
// reference did not resolve is skipped and reported as an
// *sdef.UnresolvedTypeError diagnostic; a responds-to command is skipped
// when the suite command table has no entry for it or when one of its
// parameter types did not resolve. Everything else in the class still
// synthesizes.
func Synthesize(d *sdef.Dictionary) (*Model, []error) {
	m := &Model{
		AppName: d.AppName,
		Prefix:  d.Prefix,
	}
	var diags []error

	for _, suite := range d.Suites {
		for _, c := range suite.Classes {
			desc := &Descriptor{
				ClassName:     c.Name,
				QualifiedName: c.QualifiedName,
				Description:   c.Description,
			}

			for _, p := range c.Properties {
				if !p.Type.IsResolved() {
					diags = append(diags, &sdef.UnresolvedTypeError{Class: c.Name, Member: p.Name, Type: p.RawType})
					continue
				}
				desc.Properties = append(desc.Properties, PropertySpec{
					Name:        p.Name,
					Type:        p.Type,
					Description: p.Description,
				})
			}

			for _, e := range c.Elements {
				if !e.Type.IsResolved() {
					diags = append(diags, &sdef.UnresolvedTypeError{Class: c.Name, Member: e.Name, Type: e.ClassName})
					continue
				}
				desc.Elements = append(desc.Elements, ElementSpec{
					Name:          e.Name,
					ClassName:     e.ClassName,
					QualifiedName: e.Type.QualifiedName,
				})
			}

			for _, name := range c.RespondsTo {
				cmd, ok := suite.Commands[name]
				if !ok {
					// Commands may live in another suite of the document.
					cmd = d.CommandByName(name)
				}
				if cmd == nil {
					continue
				}
				spec, ok := commandSpec(cmd)
				if !ok {
					diags = append(diags, &sdef.UnresolvedTypeError{Class: c.Name, Member: cmd.Name, Type: "command parameter"})
					continue
				}
				desc.Commands = append(desc.Commands, spec)
			}

			m.Classes = append(m.Classes, desc)
		}
	}

	m.reindex()
	return m, diags
}

func commandSpec(cmd *sdef.Command) (CommandSpec, bool) {
	spec := CommandSpec{
		Name:        cmd.Name,
		MethodName:  cmd.MethodName,
		Description: cmd.Description,
	}
	for _, p := range cmd.Parameters {
		if !p.Type.IsResolved() {
			return CommandSpec{}, false
		}
		spec.Params = append(spec.Params, ParamSpec{
			Name:        p.Name,
			Direct:      p.Direct,
			Type:        p.Type,
			Description: p.Description,
		})
	}
	return spec, true
}
