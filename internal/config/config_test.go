package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Export.File != "" {
		t.Errorf("expected empty file, got %s", cfg.Export.File)
	}
	if !cfg.Export.Remap {
		t.Error("expected remap to be true by default")
	}
	if cfg.Export.InRange != (Range{0, 200}) {
		t.Errorf("expected in_range 0,200, got %s", cfg.Export.InRange)
	}
	if cfg.Export.AutoRange {
		t.Error("expected auto_range to be false by default")
	}
	if cfg.Export.Field != "height" {
		t.Errorf("expected field 'height', got %s", cfg.Export.Field)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestRange_Text(t *testing.T) {
	tests := []struct {
		text    string
		want    Range
		wantErr bool
	}{
		{"0,200", Range{0, 200}, false},
		{" -12.5 , 88 ", Range{-12.5, 88}, false},
		{"1e3,2e3", Range{1000, 2000}, false},
		{"200", Range{}, true},
		{"a,1", Range{}, true},
		{"1,b", Range{}, true},
	}

	for _, tc := range tests {
		var r Range
		err := r.UnmarshalText([]byte(tc.text))
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.text, err)
			continue
		}
		if r != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.text, tc.want, r)
		}
	}

	if s := (Range{-1.5, 300}).String(); s != "-1.5,300" {
		t.Errorf("expected '-1.5,300', got %s", s)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terrainexport.yaml")

	yamlContent := `
export:
  file: "/tmp/island.ter"
  remap: false
  in_range: [-50, 450]
  auto_range: true
  field: "elevation"

logging:
  level: "debug"
  log_file: "export.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Export.File != "/tmp/island.ter" {
		t.Errorf("expected file /tmp/island.ter, got %s", cfg.Export.File)
	}
	if cfg.Export.Remap {
		t.Error("expected remap to be false")
	}
	if cfg.Export.InRange != (Range{-50, 450}) {
		t.Errorf("expected in_range -50,450, got %s", cfg.Export.InRange)
	}
	if !cfg.Export.AutoRange {
		t.Error("expected auto_range to be true")
	}
	if cfg.Export.Field != "elevation" {
		t.Errorf("expected field 'elevation', got %s", cfg.Export.Field)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "export.log" {
		t.Errorf("expected log file 'export.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile_RangeAsText(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "terrainexport.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  in_range: \"10,20\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Export.InRange != (Range{10, 20}) {
		t.Errorf("expected in_range 10,20, got %s", cfg.Export.InRange)
	}
	// Keys absent from the file keep their defaults.
	if !cfg.Export.Remap {
		t.Error("expected remap default to survive a partial file")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
export:
  remap: not a bool
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/terrainexport.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TERRAIN_EXPORT_FILE", "/data/out.ter")
	t.Setenv("TERRAIN_EXPORT_REMAP", "false")
	t.Setenv("TERRAIN_EXPORT_IN_RANGE", "5,500")
	t.Setenv("TERRAIN_LOG_LEVEL", "warn")

	cfg := Default()
	if err := loadFromEnv(cfg); err != nil {
		t.Fatalf("failed to load env: %v", err)
	}

	if cfg.Export.File != "/data/out.ter" {
		t.Errorf("expected file /data/out.ter, got %s", cfg.Export.File)
	}
	if cfg.Export.Remap {
		t.Error("expected remap false from env")
	}
	if cfg.Export.InRange != (Range{5, 500}) {
		t.Errorf("expected in_range 5,500, got %s", cfg.Export.InRange)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
	// Unset variables leave defaults alone.
	if cfg.Export.Field != "height" {
		t.Errorf("expected field height, got %s", cfg.Export.Field)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("TERRAIN_EXPORT_IN_RANGE", "wide")

	if err := loadFromEnv(Default()); err == nil {
		t.Error("expected error for malformed TERRAIN_EXPORT_IN_RANGE")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "terrainexport.yaml")
	if err := os.WriteFile(configPath, []byte("export:\n  remap: false\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find terrainexport.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "output flag",
			setup: func() { *flagOutput = "out/map.ter" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.File != "out/map.ter" {
					t.Errorf("expected file out/map.ter, got %s", cfg.Export.File)
				}
			},
			teardown: func() { *flagOutput = "" },
		},
		{
			name:  "no-remap flag",
			setup: func() { *flagNoRemap = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Remap {
					t.Error("expected remap to be false with no-remap flag")
				}
			},
			teardown: func() { *flagNoRemap = false },
		},
		{
			name:  "in-range flag",
			setup: func() { *flagInRange = "-20,180" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.InRange != (Range{-20, 180}) {
					t.Errorf("expected in_range -20,180, got %s", cfg.Export.InRange)
				}
			},
			teardown: func() { *flagInRange = "" },
		},
		{
			name: "auto-range and field flags",
			setup: func() {
				*flagAutoRange = true
				*flagField = "terrain"
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.AutoRange {
					t.Error("expected auto_range to be true")
				}
				if cfg.Export.Field != "terrain" {
					t.Errorf("expected field terrain, got %s", cfg.Export.Field)
				}
			},
			teardown: func() {
				*flagAutoRange = false
				*flagField = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags failed: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlags_BadRange(t *testing.T) {
	*flagInRange = "nope"
	defer func() { *flagInRange = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for malformed -in-range")
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "terrainexport.yaml")

	yamlContent := `
export:
  file: "from-file.ter"
  in_range: [0, 100]
  field: "elevation"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TERRAIN_EXPORT_IN_RANGE", "0,300")
	t.Setenv("TERRAIN_EXPORT_FIELD", "height_env")

	*flagConfig = configPath
	*flagField = "height_flag"
	defer func() {
		*flagConfig = ""
		*flagField = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// File beats defaults
	if cfg.Export.File != "from-file.ter" {
		t.Errorf("expected file from config file, got %s", cfg.Export.File)
	}
	// Env beats file
	if cfg.Export.InRange != (Range{0, 300}) {
		t.Errorf("expected in_range 0,300 from env, got %s", cfg.Export.InRange)
	}
	// Flags beat env
	if cfg.Export.Field != "height_flag" {
		t.Errorf("expected field from flag, got %s", cfg.Export.Field)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Export.Field = "  "
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for blank field")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)

	cfg := Default()
	cfg.Export.Field = "elevation"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(UserConfigPath(), dir) {
		t.Fatalf("user config path %s is outside %s", UserConfigPath(), dir)
	}
	loaded := Default()
	if err := loadFromFile(loaded, UserConfigPath()); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Export.Field != "elevation" {
		t.Errorf("expected field elevation, got %s", loaded.Export.Field)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "terrainexport.yaml")

	cfg := Default()
	cfg.Export.File = "saved.ter"
	cfg.Export.InRange = Range{-5, 95}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Export.File != "saved.ter" {
		t.Errorf("expected file saved.ter, got %s", loaded.Export.File)
	}
	if loaded.Export.InRange != (Range{-5, 95}) {
		t.Errorf("expected in_range -5,95, got %s", loaded.Export.InRange)
	}
}
