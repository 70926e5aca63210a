package golang

import (
	"goxa/binding"
	"goxa/sdef"
)

// goType maps a resolved type reference onto the Go type generated accessors
// traffic in.
func goType(t sdef.TypeRef) string {
	switch t.Kind {
	case sdef.KindString:
		return "string"
	case sdef.KindBool:
		return "bool"
	case sdef.KindFloat:
		return "float64"
	case sdef.KindInt:
		return "int"
	case sdef.KindRectangle:
		return "live.Rectangle"
	case sdef.KindObjectRef:
		return "bridge.RemoteHandle"
	case sdef.KindClass:
		return t.QualifiedName
	}
	return "any"
}

// goZero is the zero-value literal returned alongside errors.
func goZero(t sdef.TypeRef) string {
	switch t.Kind {
	case sdef.KindString:
		return `""`
	case sdef.KindBool:
		return "false"
	case sdef.KindFloat, sdef.KindInt:
		return "0"
	case sdef.KindRectangle:
		return "live.Rectangle{}"
	case sdef.KindObjectRef:
		return "nil"
	case sdef.KindClass:
		return t.QualifiedName + "{}"
	}
	return "nil"
}

// convCall names the live conversion helper for a singular property read;
// empty for class-typed properties, which convert via live.AsObject and wrap.
func convCall(t sdef.TypeRef) string {
	switch t.Kind {
	case sdef.KindString:
		return "live.AsString"
	case sdef.KindBool:
		return "live.AsBool"
	case sdef.KindFloat:
		return "live.AsFloat"
	case sdef.KindInt:
		return "live.AsInt"
	case sdef.KindRectangle:
		return "live.AsRectangle"
	case sdef.KindObjectRef:
		return "live.AsHandle"
	}
	return ""
}

// bulkType is the slice type a collection bulk accessor returns. Class- and
// reference-typed properties stay raw: their bulk form is []any.
func bulkType(t sdef.TypeRef) string {
	switch t.Kind {
	case sdef.KindString:
		return "[]string"
	case sdef.KindBool:
		return "[]bool"
	case sdef.KindFloat:
		return "[]float64"
	case sdef.KindInt:
		return "[]int"
	case sdef.KindRectangle:
		return "[]live.Rectangle"
	}
	return "[]any"
}

// bulkConvCall names the slice conversion helper; empty when the bulk
// accessor returns the raw []any.
func bulkConvCall(t sdef.TypeRef) string {
	switch t.Kind {
	case sdef.KindString:
		return "live.AsStringSlice"
	case sdef.KindBool:
		return "live.AsBoolSlice"
	case sdef.KindFloat:
		return "live.AsFloatSlice"
	case sdef.KindInt:
		return "live.AsIntSlice"
	case sdef.KindRectangle:
		return "live.AsRectangleSlice"
	}
	return ""
}

// paramValueExpr is the expression forwarding a parameter to Invoke:
// class-typed parameters pass their wrapped object, everything else passes
// through.
func paramValueExpr(name string, t sdef.TypeRef) string {
	if t.Kind == sdef.KindClass {
		return name + ".Obj"
	}
	return name
}

// usesBridge reports whether any synthesized member traffics in raw object
// references, which pulls the bridge import into the generated file.
func usesBridge(m *binding.Model) bool {
	for _, d := range m.Classes {
		for _, p := range d.Properties {
			if p.Type.Kind == sdef.KindObjectRef {
				return true
			}
		}
		for _, c := range d.Commands {
			for _, p := range c.Params {
				if p.Type.Kind == sdef.KindObjectRef {
					return true
				}
			}
		}
	}
	return false
}
