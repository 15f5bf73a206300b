package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Volume is a dense 2D float32 voxel slice stored row-major.
type Volume struct {
	width  int
	height int
	values []float32
}

// NewVolume returns a zero-filled volume.
func NewVolume(width, height int) (*Volume, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrResolution, width, height)
	}
	return &Volume{
		width:  width,
		height: height,
		values: make([]float32, width*height),
	}, nil
}

// NewFilledVolume returns a volume with every voxel set to v.
func NewFilledVolume(width, height int, v float32) (*Volume, error) {
	vol, err := NewVolume(width, height)
	if err != nil {
		return nil, err
	}
	if v != 0 {
		for i := range vol.values {
			vol.values[i] = v
		}
	}
	return vol, nil
}

// Resolution returns the volume dimensions.
func (v *Volume) Resolution() (int, int) {
	return v.width, v.height
}

// At returns the voxel at (x, y). Indices outside the volume are clamped to
// the nearest edge voxel.
func (v *Volume) At(x, y int) float64 {
	x = clampIndex(x, v.width)
	y = clampIndex(y, v.height)
	return float64(v.values[y*v.width+x])
}

// Set stores val at (x, y). Out-of-range writes are ignored.
func (v *Volume) Set(x, y int, val float32) {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return
	}
	v.values[y*v.width+x] = val
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Range returns the smallest and largest samples of g, ignoring NaN.
// ok is false when the grid has no samples other than NaN.
func Range(g ScalarGrid) (min, max float64, ok bool) {
	width, height := g.Resolution()
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}

	min, max = math.Inf(1), math.Inf(-1)
	row := make([]float64, 0, width)
	for y := 0; y < height; y++ {
		row = row[:0]
		for x := 0; x < width; x++ {
			if s := g.At(x, y); !math.IsNaN(s) {
				row = append(row, s)
			}
		}
		if len(row) == 0 {
			continue
		}
		ok = true
		if m := floats.Min(row); m < min {
			min = m
		}
		if m := floats.Max(row); m > max {
			max = m
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}
