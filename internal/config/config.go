package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/desk-planner/internal/layout"
	"github.com/oshokin/desk-planner/internal/logger"
)

// Config holds the settings shared by the desk planner binaries.
type Config struct {
	// ServerAddress is the gRPC address of the layout server.
	ServerAddress string `yaml:"server_addr"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level of log entries.
	LogLevel string `yaml:"log_level"`
	// Layout tunes the arranger.
	Layout Layout `yaml:"layout"`
}

// Layout holds the arranger options.
type Layout struct {
	// UnassignedPlacement is "first" or "last": where people without a team start out.
	UnassignedPlacement string `yaml:"unassigned_placement"`
	// ExhaustiveTeamLimit is the largest team count whose every order is tried.
	ExhaustiveTeamLimit int `yaml:"exhaustive_team_limit"`
	// ImprovementPasses bounds hill climbing above that limit.
	ImprovementPasses int `yaml:"improvement_passes"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "desk-planner-settings.yaml"

	// DefaultServerAddress is used when the settings do not name a server.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is used when the settings do not name a level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownPlacement is returned for placements other than first and last.
	errUnknownPlacement = errors.New("unassigned placement must be first or last")
	// errNegativeLimit is returned for negative arranger limits.
	errNegativeLimit = errors.New("arranger limits must not be negative")
)

// Default returns settings with every default applied.
func Default() *Config {
	cfg := new(Config)

	//nolint:errcheck // Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads settings from the provided path and validates them.
// A missing file at the default path yields the defaults.
func Load(path string) (*Config, error) {
	isDefaultPath := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if isDefaultPath && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
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

// Validate checks the settings and fills in defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", settings.LogLevel)
	}

	return validateLayout(&settings.Layout)
}

// validateLayout checks the arranger settings and fills in defaults.
func validateLayout(settings *Layout) error {
	defaults := layout.DefaultOptions()

	switch layout.Placement(settings.UnassignedPlacement) {
	case "":
		settings.UnassignedPlacement = string(defaults.UnassignedPlacement)
	case layout.PlacementFirst, layout.PlacementLast:
	default:
		return fmt.Errorf("%w: got %q", errUnknownPlacement, settings.UnassignedPlacement)
	}

	if settings.ExhaustiveTeamLimit < 0 || settings.ImprovementPasses < 0 {
		return errNegativeLimit
	}

	if settings.ExhaustiveTeamLimit == 0 {
		settings.ExhaustiveTeamLimit = defaults.ExhaustiveTeamLimit
	}

	if settings.ImprovementPasses == 0 {
		settings.ImprovementPasses = defaults.ImprovementPasses
	}

	return nil
}

// ArrangerOptions converts the settings into layout options.
func (c *Config) ArrangerOptions() layout.Options {
	return layout.Options{
		UnassignedPlacement: layout.Placement(c.Layout.UnassignedPlacement),
		ExhaustiveTeamLimit: c.Layout.ExhaustiveTeamLimit,
		ImprovementPasses:   c.Layout.ImprovementPasses,
	}
}
