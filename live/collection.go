package live

import (
	"context"
	"fmt"
	"reflect"

	"goxa/binding"
	"goxa/bridge"
)

// Collection is a homogeneous, ordered collection of remote handles sharing
// one class descriptor. It exists for fast enumeration: bulk property reads
// go through a single transport round trip instead of one per element.
//
// A Collection is lazy. Building one costs nothing; element handles are
// fetched (and the filter applied) on first use and kept for the collection's
// lifetime.
type Collection struct {
	owner   bridge.RemoteHandle
	element string
	desc    *binding.Descriptor
	model   *binding.Model
	filter  Filter

	fetched bool
	items   []bridge.RemoteHandle
	// keep maps positions in the filtered collection back to positions in
	// the unfiltered element list, so bulk reads can stay single-pass.
	keep []int
}

// Class returns the descriptor shared by every element.
func (c *Collection) Class() *binding.Descriptor { return c.desc }

// Count returns the number of elements after filtering.
func (c *Collection) Count(ctx context.Context) (int, error) {
	if err := c.materialize(ctx); err != nil {
		return 0, err
	}
	return len(c.items), nil
}

// At returns the element at index i, in collection order.
func (c *Collection) At(ctx context.Context, i int) (*Object, error) {
	if err := c.materialize(ctx); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.items) {
		return nil, fmt.Errorf("index %d out of range (collection of %d %s)", i, len(c.items), c.element)
	}
	return &Object{handle: c.items[i], desc: c.desc, model: c.model}, nil
}

// BulkProperty reads one property across the whole collection in a single
// round trip, returning per-element values in collection order. The values
// are converted the same way Object.Property converts them.
func (c *Collection) BulkProperty(ctx context.Context, name string) ([]any, error) {
	spec, ok := c.propertySpec(name)
	if !ok {
		return nil, fmt.Errorf("%s has no property %q", c.desc.QualifiedName, name)
	}
	if err := c.materialize(ctx); err != nil {
		return nil, err
	}
	raw, err := c.owner.ElementsProperty(ctx, c.element, name)
	if err != nil {
		return nil, fmt.Errorf("bulk get %s.%s: %w", c.desc.ClassName, name, err)
	}
	out := make([]any, 0, len(c.keep))
	for _, idx := range c.keep {
		if idx >= len(raw) {
			return nil, fmt.Errorf("bulk get %s.%s: transport returned %d values for %d elements", c.desc.ClassName, name, len(raw), len(c.keep))
		}
		v, err := convertValue(c.model, spec.Type, raw[idx])
		if err != nil {
			return nil, fmt.Errorf("bulk get %s.%s[%d]: %w", c.desc.ClassName, name, idx, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ByProperty returns the first element, in collection order, whose property
// equals value. The second return value is false when no element matches.
func (c *Collection) ByProperty(ctx context.Context, name string, value any) (*Object, bool, error) {
	vals, err := c.BulkProperty(ctx, name)
	if err != nil {
		return nil, false, err
	}
	for i, v := range vals {
		if equalValue(v, value) {
			obj, err := c.At(ctx, i)
			if err != nil {
				return nil, false, err
			}
			return obj, true, nil
		}
	}
	return nil, false, nil
}

func (c *Collection) propertySpec(name string) (binding.PropertySpec, bool) {
	for _, p := range c.desc.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return binding.PropertySpec{}, false
}

// materialize fetches the element handles once and applies the filter. Each
// filter key costs one additional single-pass bulk read.
func (c *Collection) materialize(ctx context.Context) error {
	if c.fetched {
		return nil
	}
	handles, err := c.owner.Elements(ctx, c.element)
	if err != nil {
		return fmt.Errorf("list %s: %w", c.element, err)
	}

	keep := make([]int, len(handles))
	for i := range handles {
		keep[i] = i
	}

	for name, want := range c.filter {
		if _, ok := c.propertySpec(name); !ok {
			return fmt.Errorf("filter: %s has no property %q", c.desc.QualifiedName, name)
		}
		raw, err := c.owner.ElementsProperty(ctx, c.element, name)
		if err != nil {
			return fmt.Errorf("filter on %s: %w", name, err)
		}
		var next []int
		for _, idx := range keep {
			if idx < len(raw) && equalValue(raw[idx], want) {
				next = append(next, idx)
			}
		}
		keep = next
	}

	c.keep = keep
	c.items = make([]bridge.RemoteHandle, 0, len(keep))
	for _, idx := range keep {
		c.items = append(c.items, handles[idx])
	}
	c.fetched = true
	return nil
}

func equalValue(a, b any) bool {
	if a == b {
		return true
	}
	return reflect.DeepEqual(a, b)
}
