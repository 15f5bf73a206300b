package geometry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a dataset on disk: its primitive string attributes and
// its primitives in native order.
type Manifest struct {
	Attributes []string            `yaml:"attributes"`
	Primitives []ManifestPrimitive `yaml:"primitives"`
}

// ManifestPrimitive is one primitive entry.
type ManifestPrimitive struct {
	Kind       string  `yaml:"kind"`
	Name       string  `yaml:"name,omitempty"`
	Resolution [2]int  `yaml:"resolution,omitempty"`
	Source     string  `yaml:"source,omitempty"` // raw float32 file, relative to the manifest
	Fill       float32 `yaml:"fill,omitempty"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return &m, nil
}

// LoadManifest reads a manifest file and builds its dataset.
func LoadManifest(path string) (*Detail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	return m.Build(filepath.Dir(path))
}

// Build materializes the dataset. Volume sources are resolved against baseDir.
func (m *Manifest) Build(baseDir string) (*Detail, error) {
	d := NewDetail()
	for _, attr := range m.Attributes {
		d.AddStringAttribute(attr)
	}

	for i, p := range m.Primitives {
		kind, err := ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		var idx int
		switch kind {
		case KindVolume:
			vol, err := p.loadVolume(baseDir)
			if err != nil {
				return nil, fmt.Errorf("primitive %d: %w", i, err)
			}
			idx = d.AppendVolume(vol)
		default:
			idx = d.AppendPoly()
		}

		if p.Name != "" && d.HasStringAttribute(NameAttribute) {
			if err := d.SetString(NameAttribute, idx, p.Name); err != nil {
				return nil, fmt.Errorf("primitive %d: %w", i, err)
			}
		}
	}
	return d, nil
}

func (p ManifestPrimitive) loadVolume(baseDir string) (*Volume, error) {
	width, height := p.Resolution[0], p.Resolution[1]
	if p.Source == "" {
		return NewFilledVolume(width, height, p.Fill)
	}
	src := p.Source
	if !filepath.IsAbs(src) {
		src = filepath.Join(baseDir, src)
	}
	return LoadRawVolumeFile(src, width, height)
}
