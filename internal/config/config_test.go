package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/desk-planner/internal/layout"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	// Empty settings get defaults.
	settings := new(Config)
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultServerAddress, settings.ServerAddress)
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)
	require.Equal(t, layout.DefaultOptions(), settings.ArrangerOptions())

	// Bad address.
	settings = &Config{ServerAddress: "no-port"}
	require.Error(t, Validate(settings))

	// Bad log level.
	settings = &Config{LogLevel: "loud"}
	require.Error(t, Validate(settings))

	// Bad placement.
	settings = &Config{Layout: Layout{UnassignedPlacement: "middle"}}
	require.ErrorIs(t, Validate(settings), errUnknownPlacement)

	// Negative limits.
	settings = &Config{Layout: Layout{ImprovementPasses: -1}}
	require.ErrorIs(t, Validate(settings), errNegativeLimit)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ServerAddress: "127.0.0.1:50099",
		Timeout:       3 * time.Second,
		LogLevel:      "debug",
		Layout: Layout{
			UnassignedPlacement: "first",
			ExhaustiveTeamLimit: 4,
			ImprovementPasses:   8,
		},
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)
	require.Equal(t, layout.PlacementFirst, loaded.ArrangerOptions().UnassignedPlacement)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_Missing returns defaults only for the default path.
func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	require.NotNil(t, Default())
	require.Equal(t, DefaultServerAddress, Default().ServerAddress)
}

// TestLoad_Invalid reports YAML errors.
func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [1, 2"), DefaultFilePermissions))

	_, err := Load(path)
	require.Error(t, err)
}
