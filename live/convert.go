package live

import (
	"fmt"

	"goxa/binding"
	"goxa/bridge"
	"goxa/sdef"
)

// Rectangle is the geometry type dictionaries call "rectangle": origin x,
// origin y, width, height.
type Rectangle [4]int

// convertValue maps one raw transport value onto a resolved type reference.
func convertValue(m *binding.Model, t sdef.TypeRef, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch t.Kind {
	case sdef.KindString:
		return AsString(raw)
	case sdef.KindBool:
		return AsBool(raw)
	case sdef.KindFloat:
		return AsFloat(raw)
	case sdef.KindInt:
		return AsInt(raw)
	case sdef.KindRectangle:
		return AsRectangle(raw)
	case sdef.KindObjectRef:
		h, ok := raw.(bridge.RemoteHandle)
		if !ok {
			return nil, fmt.Errorf("expected object reference, got %T", raw)
		}
		return h, nil
	case sdef.KindClass:
		h, ok := raw.(bridge.RemoteHandle)
		if !ok {
			return nil, fmt.Errorf("expected %s handle, got %T", t.QualifiedName, raw)
		}
		desc, ok := m.Class(t.ClassName)
		if !ok {
			return nil, fmt.Errorf("no descriptor for class %q", t.ClassName)
		}
		return &Object{handle: h, desc: desc, model: m}, nil
	default:
		return nil, fmt.Errorf("cannot convert value of unresolved type")
	}
}

// AsObject converts a value already mapped by the runtime to *Object.
func AsObject(v any) (*Object, error) {
	o, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	return o, nil
}

// AsHandle converts a transport value to a raw remote handle.
func AsHandle(v any) (bridge.RemoteHandle, error) {
	h, ok := v.(bridge.RemoteHandle)
	if !ok {
		return nil, fmt.Errorf("expected object reference, got %T", v)
	}
	return h, nil
}

// AsString converts a transport value to string.
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

// AsBool converts a transport value to bool.
func AsBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected bool, got %T", v)
	}
	return b, nil
}

// AsFloat converts a transport value to float64. Integer-typed values are
// widened; JSON transports deliver all numbers as float64 anyway.
func AsFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// AsInt converts a transport value to int. Fractional floats are rejected.
func AsInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != float64(int(x)) {
			return 0, fmt.Errorf("expected integer, got %v", x)
		}
		return int(x), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

// AsRectangle converts a transport value (a 4-element numeric sequence) to a
// Rectangle.
func AsRectangle(v any) (Rectangle, error) {
	seq, ok := v.([]any)
	if !ok || len(seq) != 4 {
		return Rectangle{}, fmt.Errorf("expected 4-element rectangle, got %T", v)
	}
	var r Rectangle
	for i, item := range seq {
		n, err := AsInt(item)
		if err != nil {
			return Rectangle{}, fmt.Errorf("rectangle[%d]: %w", i, err)
		}
		r[i] = n
	}
	return r, nil
}

// AsStringSlice converts a bulk-property result to []string.
func AsStringSlice(vals []any) ([]string, error) {
	out := make([]string, len(vals))
	for i, v := range vals {
		s, err := AsString(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// AsBoolSlice converts a bulk-property result to []bool.
func AsBoolSlice(vals []any) ([]bool, error) {
	out := make([]bool, len(vals))
	for i, v := range vals {
		b, err := AsBool(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

// AsFloatSlice converts a bulk-property result to []float64.
func AsFloatSlice(vals []any) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, err := AsFloat(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// AsIntSlice converts a bulk-property result to []int.
func AsIntSlice(vals []any) ([]int, error) {
	out := make([]int, len(vals))
	for i, v := range vals {
		n, err := AsInt(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// AsRectangleSlice converts a bulk-property result to []Rectangle.
func AsRectangleSlice(vals []any) ([]Rectangle, error) {
	out := make([]Rectangle, len(vals))
	for i, v := range vals {
		r, err := AsRectangle(v)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = r
	}
	return out, nil
}
