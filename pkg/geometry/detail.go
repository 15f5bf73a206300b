package geometry

import (
	"fmt"
	"iter"
)

type detailPrim struct {
	kind Kind
	grid ScalarGrid
}

// Detail is an in-memory geometry dataset with primitive-scoped string
// attributes, keyed by attribute name.
type Detail struct {
	prims   []detailPrim
	strings map[string][]string
}

// NewDetail returns an empty dataset.
func NewDetail() *Detail {
	return &Detail{strings: make(map[string][]string)}
}

// NumPrimitives returns the primitive count.
func (d *Detail) NumPrimitives() int {
	return len(d.prims)
}

// AppendVolume adds a volume primitive and returns its index.
func (d *Detail) AppendVolume(g ScalarGrid) int {
	d.prims = append(d.prims, detailPrim{kind: KindVolume, grid: g})
	return len(d.prims) - 1
}

// AppendPoly adds a polygon primitive and returns its index.
func (d *Detail) AppendPoly() int {
	d.prims = append(d.prims, detailPrim{kind: KindPoly})
	return len(d.prims) - 1
}

// AddStringAttribute creates a primitive string attribute. Existing values
// are kept if the attribute is already present.
func (d *Detail) AddStringAttribute(name string) {
	if _, ok := d.strings[name]; !ok {
		d.strings[name] = nil
	}
}

// HasStringAttribute reports whether the primitive string attribute exists.
func (d *Detail) HasStringAttribute(name string) bool {
	_, ok := d.strings[name]
	return ok
}

// SetString assigns a primitive's attribute value.
func (d *Detail) SetString(attr string, prim int, value string) error {
	values, ok := d.strings[attr]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingAttribute, attr)
	}
	if prim < 0 || prim >= len(d.prims) {
		return fmt.Errorf("primitive %d out of range [0, %d)", prim, len(d.prims))
	}
	if prim >= len(values) {
		values = append(values, make([]string, prim+1-len(values))...)
	}
	values[prim] = value
	d.strings[attr] = values
	return nil
}

// String returns a primitive's attribute value; unset values are "".
func (d *Detail) String(attr string, prim int) (string, bool) {
	values, ok := d.strings[attr]
	if !ok {
		return "", false
	}
	if prim < 0 || prim >= len(values) {
		return "", true
	}
	return values[prim], true
}

// Primitives implements Dataset.
func (d *Detail) Primitives() (iter.Seq[Primitive], error) {
	if !d.HasStringAttribute(NameAttribute) {
		return nil, fmt.Errorf("%w: %q", ErrMissingAttribute, NameAttribute)
	}
	return func(yield func(Primitive) bool) {
		for i, p := range d.prims {
			name, _ := d.String(NameAttribute, i)
			if !yield(Primitive{Index: i, Kind: p.kind, Name: name, Grid: p.grid}) {
				return
			}
		}
	}, nil
}
