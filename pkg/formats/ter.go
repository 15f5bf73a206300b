// Package formats provides encoders for landscape terrain file formats.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
)

// TER format errors.
var (
	ErrInvalidRange = errors.New("invalid TER input range")
	ErrGridSize     = errors.New("unsupported TER grid size")
	ErrTERWrite     = errors.New("writing TER file")
)

// TER layout constants.
const (
	TERVersion   uint8  = 9
	TERSize      uint32 = 2048
	TERMaxHeight        = math.MaxUint16

	// TERDefaultLayer is the material index stamped on every cell.
	TERDefaultLayer uint8 = 1
)

// TERLayerNames is the fixed material table written after the layer grid.
var TERLayerNames = [...]string{
	"Grass",
	"dirt",
	"Grass2",
	"BeachSand",
	"dirt_grass",
	"ROCK",
	"Mud",
	"Asphalt",
}

// TERFileSize is the exact byte length of every TER file.
var TERFileSize = terFileSize()

func terFileSize() int64 {
	cells := int64(TERSize) * int64(TERSize)
	size := int64(1) + 4 + cells*2 + cells + 4
	for _, name := range TERLayerNames {
		size += 1 + int64(len(name))
	}
	return size
}

// HeightSource is a read-only 2D grid of height samples.
type HeightSource interface {
	// Resolution returns the grid width and height in samples.
	Resolution() (width, height int)
	// At returns the sample at (x, y), with (0, 0) at the first row.
	At(x, y int) float64
}

// Quantizer converts raw samples into 16-bit heights.
type Quantizer struct {
	Remap  bool
	InLow  float64
	InHigh float64
}

// DefaultQuantizer maps [0, 200] onto the full 16-bit range.
func DefaultQuantizer() Quantizer {
	return Quantizer{Remap: true, InLow: 0, InHigh: 200}
}

// Validate reports ErrInvalidRange for a degenerate remap domain.
// The range is ignored when remapping is disabled.
func (q Quantizer) Validate() error {
	if !q.Remap {
		return nil
	}
	width := q.InHigh - q.InLow
	if width == 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, q.InLow, q.InHigh)
	}
	return nil
}

// Quantize applies remap, clamp and round-half-away-from-zero to one sample.
// NaN becomes 0.
func (q Quantizer) Quantize(v float64) uint16 {
	if q.Remap {
		v = remap(v, q.InLow, q.InHigh, 0, TERMaxHeight)
	}
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > TERMaxHeight {
		return TERMaxHeight
	}
	return uint16(math.Round(v))
}

func remap(v, low1, high1, low2, high2 float64) float64 {
	return low2 + (v-low1)*(high2-low2)/(high1-low1)
}

// EncodeTER writes a complete TER stream for src to w.
// Heights are written row-major: y outer, x inner.
func EncodeTER(w io.Writer, src HeightSource, q Quantizer) error {
	if err := checkTER(src, q); err != nil {
		return err
	}

	var header [5]byte
	header[0] = TERVersion
	binary.LittleEndian.PutUint32(header[1:], TERSize)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w: header: %w", ErrTERWrite, err)
	}

	row := make([]byte, 2*TERSize)
	for y := 0; y < int(TERSize); y++ {
		for x := 0; x < int(TERSize); x++ {
			binary.LittleEndian.PutUint16(row[2*x:], q.Quantize(src.At(x, y)))
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("%w: height row %d: %w", ErrTERWrite, y, err)
		}
	}

	layerRow := bytes.Repeat([]byte{TERDefaultLayer}, int(TERSize))
	for y := 0; y < int(TERSize); y++ {
		if _, err := w.Write(layerRow); err != nil {
			return fmt.Errorf("%w: layer row %d: %w", ErrTERWrite, y, err)
		}
	}

	if _, err := w.Write(encodeLayerTable()); err != nil {
		return fmt.Errorf("%w: layer names: %w", ErrTERWrite, err)
	}
	return nil
}

func checkTER(src HeightSource, q Quantizer) error {
	if err := q.Validate(); err != nil {
		return err
	}
	width, height := src.Resolution()
	if width != int(TERSize) || height != int(TERSize) {
		return fmt.Errorf("%w: %dx%d (want %dx%d)", ErrGridSize, width, height, TERSize, TERSize)
	}
	return nil
}

// encodeLayerTable returns the layer count followed by length-prefixed names.
func encodeLayerTable() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(len(TERLayerNames)))
	for _, name := range TERLayerNames {
		buf.WriteByte(uint8(len(name)))
		buf.WriteString(name)
	}
	return buf.Bytes()
}

// WriteTERFile encodes src into path.
// The data goes to a temporary file in the same directory which is renamed
// over path only after a successful flush, so path is never left partial.
// A symlinked path is written through to its target.
func WriteTERFile(path string, src HeightSource, q Quantizer) (err error) {
	// Reject bad input before touching the filesystem.
	if err := checkTER(src, q); err != nil {
		return err
	}

	target, perm, err := resolveTarget(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTERWrite, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 1<<16)
	if err = EncodeTER(bw, src, q); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrTERWrite, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %w", ErrTERWrite, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("%w: chmod: %w", ErrTERWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrTERWrite, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrTERWrite, err)
	}
	return nil
}

// resolveTarget returns the file that should be replaced when writing path,
// following symlinks, and the permissions the new file gets. An existing
// regular file keeps its mode; new files get 0644.
func resolveTarget(path string) (string, os.FileMode, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, 0644, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrTERWrite, err)
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrTERWrite, err)
	}
	perm := os.FileMode(0644)
	if info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}
	return target, perm, nil
}
