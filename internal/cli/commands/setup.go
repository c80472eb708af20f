package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/leapstack-labs/graphload/internal/cli/config"
	"github.com/leapstack-labs/graphload/internal/cli/output"
	"github.com/leapstack-labs/graphload/internal/source"
	"github.com/leapstack-labs/graphload/internal/upload"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context
// and the resolved configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	cfg := &config.Config{
		APIURL:         getEnvOrDefault("GRAPHLOAD_API_URL", config.DefaultAPIURL),
		BatchSize:      config.DefaultBatchSize,
		FlushPause:     config.DefaultFlushPause,
		RequestTimeout: config.DefaultRequestTimeout,
		OutputFormat:   os.Getenv("GRAPHLOAD_OUTPUT"),
		Verbose:        os.Getenv("GRAPHLOAD_VERBOSE") == "true",
		ListenAddr:     getEnvOrDefault("GRAPHLOAD_LISTEN_ADDR", config.DefaultListenAddr),
		Store: config.StoreConfig{
			Driver: getEnvOrDefault("GRAPHLOAD_STORE_DRIVER", config.DefaultStoreDriver),
			DSN:    getEnvOrDefault("GRAPHLOAD_STORE_DSN", config.DefaultStoreDSN),
		},
	}
	if v := os.Getenv("GRAPHLOAD_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BatchSize = n
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// newUploader builds an uploader targeting url. A batchSize of zero
// falls back to the configured one.
func newUploader(cc *CommandContext, url string, batchSize int, onFlush func(upload.Flush)) *upload.Uploader {
	if batchSize <= 0 {
		batchSize = cc.Cfg.BatchSize
	}
	return upload.New(upload.Config{
		URL:       url,
		BatchSize: batchSize,
		Pause:     cc.Cfg.FlushPause,
		Client:    &http.Client{Timeout: cc.Cfg.RequestTimeout},
		Logger:    cc.Logger,
		OnFlush:   onFlush,
	})
}

// fetchSource reads ref (URL or local path) with the configured
// request timeout.
func fetchSource(ctx context.Context, cc *CommandContext, ref string) ([]byte, error) {
	client := &http.Client{Timeout: cc.Cfg.RequestTimeout}
	return source.Fetch(ctx, client, ref)
}
