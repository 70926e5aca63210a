// Package binding turns a merged, type-resolved dictionary into synthesis-
// ready binding descriptors. A Descriptor is the single model both back-ends
// consume: the source emitters render it as text, and the live runtime
// interprets it against a remote handle. Neither back-end re-derives
// anything from the raw dictionary.
package binding

import "goxa/sdef"

// Model is the full binding model for one application: one Descriptor per
// merged class, in suite/class document order.
type Model struct {
	AppName string
	Prefix  string
	Classes []*Descriptor

	// byName indexes Classes by dictionary-local and by qualified name.
	byName map[string]*Descriptor
}

// Descriptor is the synthesis-ready form of one class. It describes both the
// singular type and the collection type derived from the class: every
// property yields a singular getter plus a collection bulk accessor and a
// by-property lookup; every element yields an accessor returning the
// referenced class's collection type; every responds-to command yields a
// method.
type Descriptor struct {
	ClassName     string
	QualifiedName string
	Description   string
	Properties    []PropertySpec
	Elements      []ElementSpec
	Commands      []CommandSpec
}

// PropertySpec is one synthesized property accessor.
type PropertySpec struct {
	Name        string
	Type        sdef.TypeRef
	Description string
}

// ElementSpec is one synthesized element accessor. Name is the pluralized
// accessor name; the referenced class is carried both local and qualified.
type ElementSpec struct {
	Name          string
	ClassName     string
	QualifiedName string
}

// CommandSpec is one synthesized command method. Name is the wire name
// passed to RemoteHandle.Invoke; MethodName is the rendered identifier.
type CommandSpec struct {
	Name        string
	MethodName  string
	Description string
	Params      []ParamSpec
}

// HasParam reports whether the command declares a named parameter.
func (c CommandSpec) HasParam(name string) bool {
	for _, p := range c.Params {
		if !p.Direct && p.Name == name {
			return true
		}
	}
	return false
}

// ParamSpec is one command parameter. The direct parameter, when present, is
// first and positional; the rest are forwarded by name.
type ParamSpec struct {
	Name        string
	Direct      bool
	Type        sdef.TypeRef
	Description string
}

// Class looks a descriptor up by dictionary-local or qualified class name.
func (m *Model) Class(name string) (*Descriptor, bool) {
	if m.byName == nil {
		m.reindex()
	}
	d, ok := m.byName[name]
	return d, ok
}

func (m *Model) reindex() {
	m.byName = make(map[string]*Descriptor, 2*len(m.Classes))
	for _, d := range m.Classes {
		m.byName[d.ClassName] = d
		m.byName[d.QualifiedName] = d
	}
}
