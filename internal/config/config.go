package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultNASAPowerURL   = "https://power.larc.nasa.gov/api/projection/daily/point"
	DefaultMeteomaticsURL = "https://api.meteomatics.com"
)

// DefaultEnvFiles are the dotenv files LoadEnvFiles reads when none are given.
// metologin.env holds the Meteomatics credentials in existing deployments.
var DefaultEnvFiles = []string{".env", "metologin.env"}

var validate = validator.New()

// NASAPowerConfig configures the NASA POWER projection client.
type NASAPowerConfig struct {
	BaseURL  string `validate:"required,url"`
	Model    string `validate:"required"`
	Scenario string `validate:"required"`
	// User is sent as the "user" query parameter when set.
	User string
}

// MeteomaticsConfig configures the Meteomatics client. Credentials are not
// checked here; the client rejects empty ones on first use.
type MeteomaticsConfig struct {
	BaseURL  string `validate:"required,url"`
	Model    string `validate:"required"`
	Username string
	Password string
}

// ExportLocation is one coordinate pair the scheduled export fetches.
type ExportLocation struct {
	Lat string
	Lon string
}

// ExportConfig controls CSV output of normalized tables.
type ExportConfig struct {
	// Dir is where <name>.csv files are written. Empty disables export.
	Dir string

	// Interval of the scheduled export (0 = disabled).
	Interval  time.Duration `validate:"gte=0"`
	Provider  string        `validate:"omitempty,oneof=nasa-power meteomatics"`
	Start     string
	End       string
	Locations []ExportLocation
}

type AppConfig struct {
	Port        string        `validate:"required,numeric"`
	HTTPTimeout time.Duration `validate:"gt=0"`
	LogLevel    slog.Level

	// CORSOrigins is a comma separated list handed to the CORS middleware.
	CORSOrigins string `validate:"required"`

	// DefaultPageSize applies when a request leaves page_size unset.
	DefaultPageSize int `validate:"gt=0"`

	NASAPower   NASAPowerConfig
	Meteomatics MeteomaticsConfig
	Export      ExportConfig
}

// LoadEnvFiles loads the given dotenv files (DefaultEnvFiles when empty) into
// the process environment. Missing files are skipped; the returned error lists
// the ones that could not be read.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	var errs []error
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "5000")
	cfg.CORSOrigins = getenvDefault("CORS_ORIGINS", "*")
	cfg.DefaultPageSize = getenvInt("DEFAULT_PAGE_SIZE", 100)

	timeout, err := getenvDuration("HTTP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.NASAPower = NASAPowerConfig{
		BaseURL:  getenvDefault("NASA_POWER_URL", DefaultNASAPowerURL),
		Model:    getenvDefault("NASA_POWER_MODEL", "ensemble"),
		Scenario: getenvDefault("NASA_POWER_SCENARIO", "ssp126"),
		User:     os.Getenv("NASA_POWER_USER"),
	}

	cfg.Meteomatics = MeteomaticsConfig{
		BaseURL:  getenvDefault("METEOMATICS_URL", DefaultMeteomaticsURL),
		Model:    getenvDefault("METEOMATICS_MODEL", "mix"),
		Username: os.Getenv("METEOMATICS_USERNAME"),
		Password: os.Getenv("METEOMATICS_PASSWORD"),
	}

	interval, err := getenvDuration("EXPORT_INTERVAL", "0")
	if err != nil {
		return nil, err
	}
	cfg.Export = ExportConfig{
		Dir:      os.Getenv("EXPORT_DIR"),
		Interval: interval,
		Provider: getenvDefault("EXPORT_PROVIDER", "nasa-power"),
		Start:    os.Getenv("EXPORT_START"),
		End:      os.Getenv("EXPORT_END"),
	}

	locs, err := loadExportLocations()
	if err != nil {
		return nil, err
	}
	cfg.Export.Locations = locs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and the scheduled export settings.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Export.Interval > 0 {
		switch {
		case c.Export.Dir == "":
			return errors.New("invalid config: EXPORT_INTERVAL requires EXPORT_DIR")
		case len(c.Export.Locations) == 0:
			return errors.New("invalid config: EXPORT_INTERVAL requires EXPORT_LATS and EXPORT_LONS")
		case c.Export.Start == "" || c.Export.End == "":
			return errors.New("invalid config: EXPORT_INTERVAL requires EXPORT_START and EXPORT_END")
		}
	}
	return nil
}

func loadExportLocations() ([]ExportLocation, error) {
	lats := os.Getenv("EXPORT_LATS")
	lons := os.Getenv("EXPORT_LONS")
	if lats == "" && lons == "" {
		return nil, nil
	}
	latList := strings.Split(lats, ",")
	lonList := strings.Split(lons, ",")
	if len(latList) != len(lonList) {
		return nil, fmt.Errorf("number of export latitudes and longitudes must be the same")
	}
	var locs []ExportLocation
	for i := range latList {
		locs = append(locs, ExportLocation{
			Lat: strings.TrimSpace(latList[i]),
			Lon: strings.TrimSpace(lonList[i]),
		})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
