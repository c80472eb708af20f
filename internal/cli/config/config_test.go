package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_Validate tests the Validate method of Config.
func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			APIURL:         DefaultAPIURL,
			BatchSize:      DefaultBatchSize,
			FlushPause:     DefaultFlushPause,
			RequestTimeout: DefaultRequestTimeout,
			OutputFormat:   DefaultOutput,
			ListenAddr:     DefaultListenAddr,
			Store:          StoreConfig{Driver: DefaultStoreDriver, DSN: DefaultStoreDSN},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errSubstr string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:      "missing api url",
			mutate:    func(c *Config) { c.APIURL = "" },
			wantErr:   true,
			errSubstr: "api_url is required",
		},
		{
			name:      "zero batch size",
			mutate:    func(c *Config) { c.BatchSize = 0 },
			wantErr:   true,
			errSubstr: "batch_size must be positive",
		},
		{
			name:      "negative batch size",
			mutate:    func(c *Config) { c.BatchSize = -5 },
			wantErr:   true,
			errSubstr: "batch_size must be positive",
		},
		{
			name:      "negative flush pause",
			mutate:    func(c *Config) { c.FlushPause = -time.Second },
			wantErr:   true,
			errSubstr: "flush_pause must not be negative",
		},
		{
			name:    "zero flush pause is allowed",
			mutate:  func(c *Config) { c.FlushPause = 0 },
			wantErr: false,
		},
		{
			name:      "zero request timeout",
			mutate:    func(c *Config) { c.RequestTimeout = 0 },
			wantErr:   true,
			errSubstr: "request_timeout must be positive",
		},
		{
			name:      "unknown output format",
			mutate:    func(c *Config) { c.OutputFormat = "yaml" },
			wantErr:   true,
			errSubstr: "unknown output format",
		},
		{
			name:    "explicit json output",
			mutate:  func(c *Config) { c.OutputFormat = "json" },
			wantErr: false,
		},
		{
			name:      "unsupported store driver",
			mutate:    func(c *Config) { c.Store.Driver = "mysql" },
			wantErr:   true,
			errSubstr: "unsupported store driver",
		},
		{
			name:    "driver check is case insensitive",
			mutate:  func(c *Config) { c.Store.Driver = "PGX" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err, "expected error but got nil")
				if tt.errSubstr != "" {
					assert.Contains(t, err.Error(), tt.errSubstr)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestLoadConfig_Defaults verifies that loading with no file, env vars, or
// flags yields the documented defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	// Run from an empty directory so no stray graphload.yaml is picked up
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(oldWd) }()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultFlushPause, cfg.FlushPause)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultStoreDriver, cfg.Store.Driver)
	assert.Equal(t, DefaultStoreDSN, cfg.Store.DSN)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed(), "no config file should be detected")

	assert.NoError(t, cfg.Validate(), "defaults should pass validation")
}

// TestLoadConfig_File verifies values load from an explicit YAML file,
// including duration strings and the nested store section.
func TestLoadConfig_File(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "graphload.yaml")
	cfgContent := `api_url: http://example.com/api/v1/nodes
batch_size: 100
flush_pause: 50ms
request_timeout: 5s
output: json
store:
  driver: pgx
  dsn: postgres://localhost:5432/graph
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/api/v1/nodes", cfg.APIURL)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.FlushPause)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "pgx", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost:5432/graph", cfg.Store.DSN)

	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Equal(t, cfg, GetCurrentConfig())
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "graphload.yaml")
	cfgContent := `batch_size: 100
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	require.NoError(t, os.Setenv("GRAPHLOAD_BATCH_SIZE", "250"))
	defer func() { _ = os.Unsetenv("GRAPHLOAD_BATCH_SIZE") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.BatchSize, "env var should override config file")
}

// TestLoadConfig_StoreEnvNesting tests that GRAPHLOAD_STORE_* env vars land
// under the nested store key.
func TestLoadConfig_StoreEnvNesting(t *testing.T) {
	ResetConfig()

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(oldWd) }()

	require.NoError(t, os.Setenv("GRAPHLOAD_STORE_DRIVER", "pgx"))
	require.NoError(t, os.Setenv("GRAPHLOAD_STORE_DSN", "postgres://db:5432/graph"))
	defer func() {
		_ = os.Unsetenv("GRAPHLOAD_STORE_DRIVER")
		_ = os.Unsetenv("GRAPHLOAD_STORE_DSN")
	}()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.Store.Driver)
	assert.Equal(t, "postgres://db:5432/graph", cfg.Store.DSN)
}

// TestLoadConfig_FlagPrecedence tests that explicitly set flags win over
// both env vars and the config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "graphload.yaml")
	cfgContent := `batch_size: 100
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	require.NoError(t, os.Setenv("GRAPHLOAD_BATCH_SIZE", "250"))
	defer func() { _ = os.Unsetenv("GRAPHLOAD_BATCH_SIZE") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("batch-size", 0, "nodes per request")
	require.NoError(t, flags.Set("batch-size", "42"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.BatchSize, "flag value should override config file and env var")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "graphload.yaml")
	cfgContent := `batch_size: 100
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	require.NoError(t, os.Setenv("GRAPHLOAD_BATCH_SIZE", "250"))
	defer func() { _ = os.Unsetenv("GRAPHLOAD_BATCH_SIZE") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("batch-size", 0, "nodes per request")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.BatchSize, "env var should be used when flag is not set")
}

// TestFindConfigFile tests config file discovery in the working directory.
func TestFindConfigFile(t *testing.T) {
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	assert.Empty(t, findConfigFile(""), "no config file present")

	require.NoError(t, os.WriteFile("graphload.yml", []byte("batch_size: 1\n"), 0600))
	assert.Equal(t, "graphload.yml", findConfigFile(""))

	require.NoError(t, os.WriteFile("graphload.yaml", []byte("batch_size: 1\n"), 0600))
	assert.Equal(t, "graphload.yaml", findConfigFile(""), "graphload.yaml should win over graphload.yml")

	assert.Equal(t, "custom.yaml", findConfigFile("custom.yaml"), "explicit path should always win")
}

// TestLoadConfig_BadFile verifies a malformed config file is reported.
func TestLoadConfig_BadFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "graphload.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("batch_size: [oops\n"), 0600))

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

// TestResetConfig verifies state is cleared between loads.
func TestResetConfig(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "graphload.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("batch_size: 7\n"), 0600))

	_, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	require.NotEmpty(t, GetConfigFileUsed())
	require.NotNil(t, GetCurrentConfig())

	ResetConfig()
	assert.Empty(t, GetConfigFileUsed())
	assert.Nil(t, GetCurrentConfig())
}

// TestGetLogger tests logger retrieval from context.
func TestGetLogger(t *testing.T) {
	t.Run("missing logger falls back to discard", func(t *testing.T) {
		logger := GetLogger(context.Background())
		require.NotNil(t, logger)
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		ctx := context.WithValue(context.Background(), LoggerKey(), logger)
		assert.Same(t, logger, GetLogger(ctx))
	})
}
