// Package exporter turns the height volume of a geometry dataset into a
// landscape terrain file.
package exporter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/landscape-exporter/internal/logger"
	"github.com/Faultbox/landscape-exporter/pkg/formats"
	"github.com/Faultbox/landscape-exporter/pkg/geometry"
)

// DefaultField is the volume name exported when Settings.Field is empty.
const DefaultField = "height"

// Export errors. Callers only need this package for errors.Is checks.
var (
	ErrMissingHeightField = errors.New("height field not found")
	ErrMissingAttribute   = geometry.ErrMissingAttribute
	ErrInvalidRange       = formats.ErrInvalidRange
	ErrGridSize           = formats.ErrGridSize
	ErrIO                 = formats.ErrTERWrite
)

// Settings are the per-invocation export parameters.
type Settings struct {
	OutputPath string
	Remap      bool
	InLow      float64
	InHigh     float64
	AutoRange  bool   // replace [InLow, InHigh] with the field's min/max
	Field      string // defaults to DefaultField
}

// DefaultSettings returns the node defaults: remap on, input range [0, 200].
func DefaultSettings() Settings {
	q := formats.DefaultQuantizer()
	return Settings{
		Remap:  q.Remap,
		InLow:  q.InLow,
		InHigh: q.InHigh,
		Field:  DefaultField,
	}
}

func (s Settings) field() string {
	if s.Field == "" {
		return DefaultField
	}
	return s.Field
}

// Result describes one export call.
type Result struct {
	ID       string
	Name     string // terrain name derived from the output file
	Path     string
	Skipped  bool // no output path was set
	Matches  int  // volumes carrying the field name
	InLow    float64
	InHigh   float64
	Bytes    int64
	Duration time.Duration
}

// Exporter runs exports. The zero value is not usable; call New.
type Exporter struct {
	log   *zap.Logger // nil means the global logger at export time
	newID func() string
	write func(path string, src formats.HeightSource, q formats.Quantizer) error
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for export diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Exporter logging to the global logger.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		newID: func() string { return uuid.New().String() },
		write: formats.WriteTERFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// currentLogger returns the configured logger, or the global one as it is now so
// that an Exporter built before logger.Init still logs.
func (e *Exporter) currentLogger() *zap.Logger {
	if e.log != nil {
		return e.log
	}
	return logger.Named("exporter")
}

// Export runs a single export with a default Exporter.
func Export(ds geometry.Dataset, s Settings) (Result, error) {
	return New().Export(ds, s)
}

// Export resolves the settings' field in ds and writes it to s.OutputPath.
// An empty output path is a successful no-op. Nothing is written unless the
// field resolves and the settings are valid.
func (e *Exporter) Export(ds geometry.Dataset, s Settings) (Result, error) {
	res := Result{ID: e.newID(), Path: s.OutputPath}
	log := e.currentLogger().With(zap.String("export_id", res.ID))

	if s.OutputPath == "" {
		log.Debug("no output file set, skipping export")
		res.Skipped = true
		return res, nil
	}
	res.Name = TerrainName(s.OutputPath)
	if ds == nil {
		return res, fmt.Errorf("%w: no input geometry", ErrMissingHeightField)
	}

	field := s.field()
	grid, matches, err := geometry.ResolveField(ds, field)
	res.Matches = matches
	if err != nil {
		return res, fmt.Errorf("resolving %q: %w", field, err)
	}
	if grid == nil {
		return res, fmt.Errorf("%w: no volume named %q", ErrMissingHeightField, field)
	}
	if matches > 1 {
		log.Debug("multiple volumes share the field name, using the last",
			zap.String("field", field),
			zap.Int("matches", matches),
		)
	}

	q := formats.Quantizer{Remap: s.Remap, InLow: s.InLow, InHigh: s.InHigh}
	if s.AutoRange && s.Remap {
		low, high, ok := geometry.Range(grid)
		if !ok {
			return res, fmt.Errorf("%w: %q has no samples", ErrInvalidRange, field)
		}
		q.InLow, q.InHigh = low, high
	}
	res.InLow, res.InHigh = q.InLow, q.InHigh

	log.Info("writing heightmap",
		zap.String("path", s.OutputPath),
		zap.String("terrain", res.Name),
		zap.Bool("remap", q.Remap),
		zap.Float64("in_low", q.InLow),
		zap.Float64("in_high", q.InHigh),
		zap.Bool("auto_range", s.AutoRange),
	)

	start := time.Now()
	if err := e.write(s.OutputPath, grid, q); err != nil {
		return res, err
	}
	res.Duration = time.Since(start)
	res.Bytes = formats.TERFileSize

	log.Info("terrain written",
		zap.String("path", s.OutputPath),
		zap.Int64("bytes", res.Bytes),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}

// TerrainName returns the output file's base name without its extension.
func TerrainName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
