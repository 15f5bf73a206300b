// terrainexport writes the height volume of a geometry dataset to a
// landscape terrain (.ter) file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/landscape-exporter/internal/config"
	"github.com/Faultbox/landscape-exporter/internal/exporter"
	"github.com/Faultbox/landscape-exporter/internal/logger"
	"github.com/Faultbox/landscape-exporter/pkg/geometry"
)

func main() {
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := args[0]
	switch command {
	case "export", "info", "save-config":
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "export":
		err = cmdExport(os.Stdout, cfg, args[1:])
	case "info":
		err = cmdInfo(os.Stdout, args[1:])
	case "save-config":
		err = cmdSaveConfig(os.Stdout, cfg, args[1:])
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	logger.Sync()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `terrainexport - landscape terrain exporter

Usage:
  terrainexport [flags] <command> <dataset.yaml>

Commands:
  export <dataset.yaml>   Write the height volume to a .ter file
  info <dataset.yaml>     List the dataset's primitives and value ranges
  save-config [path]      Save the effective config (default: user config dir)

Flags:
  -config <path>          Config file (default ./terrainexport.yaml)
  -o <file.ter>           Output terrain file (export.file)
  -no-remap               Write samples as-is (export.remap: false)
  -in-range low,high      Remap input range (export.in_range, default 0,200)
  -auto-range             Use the field's min/max as the input range
  -field <name>           Volume to export (default height)
  -debug                  Enable debug logging
  -log-file <path>        Write a rotating JSON log

Environment:
  TERRAIN_EXPORT_FILE, TERRAIN_EXPORT_REMAP, TERRAIN_EXPORT_IN_RANGE,
  TERRAIN_EXPORT_AUTO_RANGE, TERRAIN_EXPORT_FIELD, TERRAIN_LOG_LEVEL, TERRAIN_LOG_FILE

Examples:
  terrainexport -o island.ter export island.yaml
  terrainexport -in-range -20,480 -o island.ter export island.yaml
  terrainexport info island.yaml
  terrainexport -in-range -20,480 save-config`)
}

// exitCode maps export failures to distinct process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, exporter.ErrMissingAttribute), errors.Is(err, exporter.ErrMissingHeightField):
		return 2
	case errors.Is(err, exporter.ErrInvalidRange), errors.Is(err, exporter.ErrGridSize):
		return 3
	case errors.Is(err, exporter.ErrIO):
		return 4
	default:
		return 1
	}
}

func settingsFromConfig(cfg *config.Config) exporter.Settings {
	return exporter.Settings{
		OutputPath: cfg.Export.File,
		Remap:      cfg.Export.Remap,
		InLow:      cfg.Export.InRange.Low(),
		InHigh:     cfg.Export.InRange.High(),
		AutoRange:  cfg.Export.AutoRange,
		Field:      cfg.Export.Field,
	}
}

func cmdExport(out io.Writer, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: terrainexport [flags] export <dataset.yaml>")
	}

	s := settingsFromConfig(cfg)
	if s.OutputPath == "" {
		fmt.Fprintln(out, "No output file set (use -o or export.file), nothing written")
		return nil
	}

	ds, err := geometry.LoadManifest(args[0])
	if err != nil {
		return err
	}

	res, err := exporter.New().Export(ds, s)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported: %s (%d bytes)\n", res.Path, res.Bytes)
	fmt.Fprintf(out, "Terrain:  %s\n", res.Name)
	if s.Remap {
		fmt.Fprintf(out, "Range:    %g .. %g -> 0 .. 65535\n", res.InLow, res.InHigh)
	} else {
		fmt.Fprintln(out, "Range:    not remapped")
	}
	return nil
}

func cmdInfo(out io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: terrainexport info <dataset.yaml>")
	}

	ds, err := geometry.LoadManifest(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Dataset:    %s\n", args[0])
	fmt.Fprintf(out, "Primitives: %d\n", ds.NumPrimitives())

	prims, err := ds.Primitives()
	if err != nil {
		fmt.Fprintf(out, "Warning:    %v\n", err)
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-4s %-8s %-16s %-11s %s\n", "#", "KIND", "NAME", "RES", "RANGE")
	for p := range prims {
		res, valueRange := "-", "-"
		if p.Grid != nil {
			w, h := p.Grid.Resolution()
			res = fmt.Sprintf("%dx%d", w, h)
			if lo, hi, ok := geometry.Range(p.Grid); ok {
				valueRange = fmt.Sprintf("%g .. %g", lo, hi)
			}
		}
		fmt.Fprintf(out, "  %-4d %-8s %-16s %-11s %s\n", p.Index, p.Kind, p.Name, res, valueRange)
	}
	return nil
}

// cmdSaveConfig writes the effective config, flags and environment included,
// so later runs can pick it up without repeating them.
func cmdSaveConfig(out io.Writer, cfg *config.Config, args []string) error {
	var err error
	path := config.UserConfigPath()
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "Config saved: %s\n", path)
	return nil
}
