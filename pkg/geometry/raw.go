package geometry

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// LoadRawVolume reads a width×height volume of little-endian float32 samples
// stored row-major (the common .r32 heightfield layout).
func LoadRawVolume(r io.Reader, width, height int) (*Volume, error) {
	vol, err := NewVolume(width, height)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, vol.values); err != nil {
		return nil, fmt.Errorf("%w: want %d samples: %w", ErrTruncatedVolume, width*height, err)
	}
	return vol, nil
}

// LoadRawVolumeFile reads a raw float32 volume from disk.
func LoadRawVolumeFile(path string, width, height int) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening volume: %w", err)
	}
	defer f.Close()

	vol, err := LoadRawVolume(bufio.NewReader(f), width, height)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vol, nil
}

// WriteRawVolume writes g as little-endian float32 samples, row-major.
func WriteRawVolume(w io.Writer, g ScalarGrid) error {
	width, height := g.Resolution()
	row := make([]byte, 4*width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			binary.LittleEndian.PutUint32(row[4*x:], math.Float32bits(float32(g.At(x, y))))
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("writing volume row %d: %w", y, err)
		}
	}
	return nil
}
