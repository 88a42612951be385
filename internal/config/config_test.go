package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ORIGINS", "DEFAULT_PAGE_SIZE", "HTTP_TIMEOUT", "LOG_LEVEL",
		"NASA_POWER_URL", "NASA_POWER_MODEL", "NASA_POWER_SCENARIO", "NASA_POWER_USER",
		"METEOMATICS_URL", "METEOMATICS_MODEL", "METEOMATICS_USERNAME", "METEOMATICS_PASSWORD",
		"EXPORT_DIR", "EXPORT_INTERVAL", "EXPORT_PROVIDER", "EXPORT_START", "EXPORT_END",
		"EXPORT_LATS", "EXPORT_LONS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %s, want 30s", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %s, want INFO", cfg.LogLevel)
	}
	if cfg.DefaultPageSize != 100 {
		t.Errorf("DefaultPageSize = %d, want 100", cfg.DefaultPageSize)
	}
	if cfg.NASAPower.BaseURL != DefaultNASAPowerURL {
		t.Errorf("NASAPower.BaseURL = %q", cfg.NASAPower.BaseURL)
	}
	if cfg.NASAPower.Model != "ensemble" || cfg.NASAPower.Scenario != "ssp126" {
		t.Errorf("NASAPower model/scenario = %q/%q", cfg.NASAPower.Model, cfg.NASAPower.Scenario)
	}
	if cfg.Meteomatics.Model != "mix" {
		t.Errorf("Meteomatics.Model = %q, want mix", cfg.Meteomatics.Model)
	}
	if cfg.Meteomatics.Username != "" || cfg.Meteomatics.Password != "" {
		t.Error("expected empty Meteomatics credentials")
	}
	if cfg.Export.Interval != 0 {
		t.Errorf("Export.Interval = %s, want 0", cfg.Export.Interval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("METEOMATICS_USERNAME", "user")
	t.Setenv("METEOMATICS_PASSWORD", "secret")
	t.Setenv("EXPORT_DIR", t.TempDir())
	t.Setenv("EXPORT_INTERVAL", "30m")
	t.Setenv("EXPORT_START", "20260101")
	t.Setenv("EXPORT_END", "20261231")
	t.Setenv("EXPORT_LATS", "43.47, 51.5")
	t.Setenv("EXPORT_LONS", "-80.53, -0.12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %s, want DEBUG", cfg.LogLevel)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %s, want 5s", cfg.HTTPTimeout)
	}
	if cfg.Meteomatics.Username != "user" || cfg.Meteomatics.Password != "secret" {
		t.Error("expected Meteomatics credentials from environment")
	}
	if len(cfg.Export.Locations) != 2 {
		t.Fatalf("len(Export.Locations) = %d, want 2", len(cfg.Export.Locations))
	}
	if cfg.Export.Locations[1] != (ExportLocation{Lat: "51.5", Lon: "-0.12"}) {
		t.Errorf("Export.Locations[1] = %+v", cfg.Export.Locations[1])
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad timeout", map[string]string{"HTTP_TIMEOUT": "soon"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"bad nasa url", map[string]string{"NASA_POWER_URL": "not a url"}},
		{"unknown export provider", map[string]string{"EXPORT_PROVIDER": "openweather"}},
		{"mismatched export coordinates", map[string]string{"EXPORT_LATS": "1,2", "EXPORT_LONS": "3"}},
		{"interval without dir", map[string]string{"EXPORT_INTERVAL": "1h", "EXPORT_DIR": ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "metologin.env")
	if err := os.WriteFile(file, []byte("EYEOFHORUS_TEST_SECRET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EYEOFHORUS_TEST_SECRET", "")
	os.Unsetenv("EYEOFHORUS_TEST_SECRET")

	if err := LoadEnvFiles(file, filepath.Join(dir, "missing.env")); err == nil {
		t.Error("expected error for missing file")
	}
	if got := os.Getenv("EYEOFHORUS_TEST_SECRET"); got != "from-file" {
		t.Errorf("EYEOFHORUS_TEST_SECRET = %q, want from-file", got)
	}
}
