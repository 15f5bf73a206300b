// Package geometry models cooked geometry datasets: primitives, their
// name-keyed attributes, and the scalar volumes carried by volume primitives.
package geometry

import (
	"errors"
	"fmt"
	"iter"
)

// Geometry errors.
var (
	ErrMissingAttribute = errors.New("missing primitive attribute")
	ErrResolution       = errors.New("invalid volume resolution")
	ErrTruncatedVolume  = errors.New("truncated volume data")
	ErrInvalidManifest  = errors.New("invalid dataset manifest")
)

// NameAttribute is the primitive string attribute used to label volumes.
const NameAttribute = "name"

// Kind is a primitive type.
type Kind uint8

// Primitive kinds.
const (
	KindPoly Kind = iota
	KindVolume
)

// String returns the manifest spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoly:
		return "poly"
	case KindVolume:
		return "volume"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ParseKind converts a manifest kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "poly":
		return KindPoly, nil
	case "volume":
		return KindVolume, nil
	default:
		return 0, fmt.Errorf("%w: unknown primitive kind %q", ErrInvalidManifest, s)
	}
}

// ScalarGrid is a read-only 2D scalar field.
type ScalarGrid interface {
	Resolution() (width, height int)
	At(x, y int) float64
}

// Primitive is one (kind, name, grid) tuple of a dataset.
// Grid is nil for non-volume primitives.
type Primitive struct {
	Index int
	Kind  Kind
	Name  string
	Grid  ScalarGrid
}

// Dataset enumerates named primitives.
type Dataset interface {
	// Primitives yields every primitive in native order.
	// It fails with ErrMissingAttribute when the dataset has no primitive
	// string attribute called "name".
	Primitives() (iter.Seq[Primitive], error)
}
