package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_DefaultsToDevelopment(t *testing.T) {
	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.NoError(t, cfg.Limits.Validate())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("MAX_STATEMENTS_PER_SET", "5")

	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 5, cfg.Limits.MaxStatementsPerSet)
}

func TestLoadConfig_ProductionRequiresJWTSecret(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	// Act
	_, err := LoadConfig()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_ConfigFileOverlay(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nlimits:\n  max_nodes_per_tree: 42\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	// Act
	cfg, err := LoadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 42, cfg.Limits.MaxNodesPerTree)
}

func TestLimits_Validate_RejectsNonPositive(t *testing.T) {
	// Arrange
	limits := DefaultLimits()
	limits.MaxStatementsPerSet = 0

	// Act
	err := limits.Validate()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_statements_per_set")
}

func TestToDomainConfig_MapsConfiguredLimits(t *testing.T) {
	// Arrange
	cfg := &Config{Limits: DefaultLimits()}
	cfg.Limits.MaxStatementsPerDoc = 100
	cfg.Limits.MaxNodesPerTree = 7

	// Act
	dc := cfg.ToDomainConfig()

	// Assert
	assert.Equal(t, 100, dc.MaxStatementsPerProof)
	assert.Equal(t, 7, dc.MaxNodesPerTree)
}

func TestNewLimitsWatcher_LoadsInitialFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "limits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_statements_per_set: 9\n"), 0o644))

	// Act
	watcher, err := NewLimitsWatcher(path, DefaultLimits(), zap.NewNop())

	// Assert
	require.NoError(t, err)
	defer watcher.Stop()
	current := watcher.Current()
	assert.Equal(t, 9, current.MaxStatementsPerSet)
	// Unspecified values keep the base.
	assert.Equal(t, DefaultLimits().MaxNodesPerTree, current.MaxNodesPerTree)
}

func TestNewLimitsWatcher_MissingFile_ReturnsError(t *testing.T) {
	// Act
	_, err := NewLimitsWatcher(filepath.Join(t.TempDir(), "absent.yaml"), DefaultLimits(), zap.NewNop())

	// Assert
	assert.Error(t, err)
}
