package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Snorps/better-medical-alerts/internal/logger"
)

// Config holds settings shared by the medical alert binaries.
type Config struct {
	// ServerAddress is the gRPC address of the alert server.
	ServerAddress string `yaml:"server_addr"`
	// SnapshotFile is the roster snapshot JSON written by the game.
	SnapshotFile string `yaml:"snapshot_file"`
	// CatalogFile is an optional YAML translation catalog overriding the built-in one.
	CatalogFile string `yaml:"catalog_file,omitempty"`
	// MetricsFile is an optional Prometheus textfile written after each evaluation.
	MetricsFile string `yaml:"metrics_file,omitempty"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// BleedOutThresholdTicks is the strict upper bound on ticks-to-death for the bleeding alert.
	BleedOutThresholdTicks int `yaml:"bleed_out_threshold_ticks"`
	// TicksPerDay converts per-day severity rates to per-tick rates.
	TicksPerDay int `yaml:"ticks_per_day"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "medical-alerts-settings.yaml"

	// DefaultSnapshotFilename is the default filename of the roster snapshot.
	DefaultSnapshotFilename = "medical-alerts-snapshot.json"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultBleedOutThresholdTicks is one in-game day at the reference tick rate.
	DefaultBleedOutThresholdTicks = 20000

	// DefaultTicksPerDay is the game's day length in ticks.
	DefaultTicksPerDay = 60000

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerAddressRequired is returned when server address is missing.
	errServerAddressRequired = errors.New("server address must be provided")
	// errNegativeThreshold is returned for a bleed-out threshold below zero.
	errNegativeThreshold = errors.New("bleed_out_threshold_ticks must not be negative")
	// errNegativeTicksPerDay is returned for a day length below zero.
	errNegativeTicksPerDay = errors.New("ticks_per_day must not be negative")
)

// Defaults returns settings with every optional value at its default and no
// server address. It serves binaries that can run without a settings file.
func Defaults() *Config {
	return &Config{
		SnapshotFile:           DefaultSnapshotFilename,
		Timeout:                DefaultTimeout,
		BleedOutThresholdTicks: DefaultBleedOutThresholdTicks,
		TicksPerDay:            DefaultTicksPerDay,
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadLocal is Load for binaries that never contact the server: the server
// address may be omitted, but is still checked when present.
func LoadLocal(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if cfg.ServerAddress != "" {
		if err := validateAddress(cfg.ServerAddress); err != nil {
			return nil, err
		}
	}

	if err := validateTuning(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func read(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// Save writes the settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if err := validateAddress(settings.ServerAddress); err != nil {
		return err
	}

	return validateTuning(settings)
}

func validateAddress(address string) error {
	if address == "" {
		return errServerAddressRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	return nil
}

// validateTuning checks everything except the server address and fills defaults.
func validateTuning(settings *Config) error {
	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", settings.LogLevel)
	}

	switch {
	case settings.BleedOutThresholdTicks < 0:
		return errNegativeThreshold
	case settings.BleedOutThresholdTicks == 0:
		settings.BleedOutThresholdTicks = DefaultBleedOutThresholdTicks
	}

	switch {
	case settings.TicksPerDay < 0:
		return errNegativeTicksPerDay
	case settings.TicksPerDay == 0:
		settings.TicksPerDay = DefaultTicksPerDay
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.SnapshotFile == "" {
		settings.SnapshotFile = DefaultSnapshotFilename
	}

	return nil
}
