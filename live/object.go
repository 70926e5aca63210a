// Package live is the dynamic back-end: it interprets binding descriptors
// against a live RemoteHandle instead of emitting source. Every accessor is
// checked against the descriptor before it touches the transport, so the
// surface of an Object matches what the source emitter would have generated
// for the same class.
package live

import (
	"context"
	"fmt"

	"goxa/binding"
	"goxa/bridge"
	"goxa/sdef"
)

// Filter restricts a collection to elements whose listed properties equal
// the given values. A nil Filter keeps every element.
type Filter map[string]any

// Object is one live instance of a dictionary class, bound to a remote
// handle. Objects are cheap values built around the shared binding model.
type Object struct {
	handle bridge.RemoteHandle
	desc   *binding.Descriptor
	model  *binding.Model
}

// Connect builds the root object of the application's object graph: the
// instance of the dictionary's "application" class bound to the given
// handle.
func Connect(m *binding.Model, h bridge.RemoteHandle) (*Object, error) {
	desc, ok := m.Class("application")
	if !ok {
		return nil, fmt.Errorf("binding model for %s has no application class", m.AppName)
	}
	return &Object{handle: h, desc: desc, model: m}, nil
}

// Class returns the descriptor this object was built from.
func (o *Object) Class() *binding.Descriptor { return o.desc }

// Handle exposes the underlying remote handle, for command parameters that
// take object references.
func (o *Object) Handle() bridge.RemoteHandle { return o.handle }

// Property reads one property, converted per the descriptor's type: strings,
// bools, floats, and ints arrive as their Go kinds, rectangles as Rectangle,
// object references as bridge.RemoteHandle, and class-typed properties as
// *Object.
func (o *Object) Property(ctx context.Context, name string) (any, error) {
	spec, ok := o.propertySpec(name)
	if !ok {
		return nil, fmt.Errorf("%s has no property %q", o.desc.QualifiedName, name)
	}
	raw, err := o.handle.Property(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get %s.%s: %w", o.desc.ClassName, name, err)
	}
	return o.convert(spec.Type, raw)
}

// Elements returns the collection for one element accessor. The collection
// is lazy: no transport round trip happens until it is first enumerated.
func (o *Object) Elements(ctx context.Context, name string, filter Filter) (*Collection, error) {
	spec, ok := o.elementSpec(name)
	if !ok {
		return nil, fmt.Errorf("%s has no element %q", o.desc.QualifiedName, name)
	}
	desc, ok := o.model.Class(spec.ClassName)
	if !ok {
		return nil, fmt.Errorf("%s element %q references unknown class %q", o.desc.QualifiedName, name, spec.ClassName)
	}
	return &Collection{
		owner:   o.handle,
		element: name,
		desc:    desc,
		model:   o.model,
		filter:  filter,
	}, nil
}

// Invoke runs one of the commands the class responds to. Parameter order
// follows the command's own order: the direct parameter first (pass nil when
// the command has none), then named parameters.
func (o *Object) Invoke(ctx context.Context, method string, direct any, named map[string]any) (any, error) {
	spec, ok := o.commandSpec(method)
	if !ok {
		return nil, fmt.Errorf("%s does not respond to %q", o.desc.QualifiedName, method)
	}
	for name := range named {
		if !spec.HasParam(name) {
			return nil, fmt.Errorf("command %s has no parameter %q", spec.Name, name)
		}
	}
	out, err := o.handle.Invoke(ctx, spec.Name, unwrap(direct), unwrapNamed(named))
	if err != nil {
		return nil, fmt.Errorf("invoke %s on %s: %w", spec.Name, o.desc.ClassName, err)
	}
	return out, nil
}

func (o *Object) propertySpec(name string) (binding.PropertySpec, bool) {
	for _, p := range o.desc.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return binding.PropertySpec{}, false
}

func (o *Object) elementSpec(name string) (binding.ElementSpec, bool) {
	for _, e := range o.desc.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return binding.ElementSpec{}, false
}

func (o *Object) commandSpec(method string) (binding.CommandSpec, bool) {
	for _, c := range o.desc.Commands {
		if c.MethodName == method || c.Name == method {
			return c, true
		}
	}
	return binding.CommandSpec{}, false
}

// convert maps a raw transport value onto the resolved type. Class-typed
// values must arrive as handles and are wrapped as Objects of the referenced
// class.
func (o *Object) convert(t sdef.TypeRef, raw any) (any, error) {
	return convertValue(o.model, t, raw)
}

// unwrap lowers live types back to transport values for outgoing parameters.
func unwrap(v any) any {
	switch x := v.(type) {
	case *Object:
		return x.handle
	case Rectangle:
		return []any{x[0], x[1], x[2], x[3]}
	default:
		return v
	}
}

func unwrapNamed(named map[string]any) map[string]any {
	if named == nil {
		return nil
	}
	out := make(map[string]any, len(named))
	for k, v := range named {
		out[k] = unwrap(v)
	}
	return out
}
