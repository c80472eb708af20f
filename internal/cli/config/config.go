// Package config handles configuration loading for graphload.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import "time"

// Defaults for the well-known configuration values.
const (
	// DefaultAPIURL is the ingestion endpoint used when none is configured.
	DefaultAPIURL = "http://localhost:8080/api/v1/nodes"
	// DefaultBatchSize bounds nodes per outbound request.
	DefaultBatchSize = 500
	// DefaultFlushPause is the delay between consecutive flushes.
	DefaultFlushPause = 200 * time.Millisecond
	// DefaultRequestTimeout bounds each upload request.
	DefaultRequestTimeout = 60 * time.Second
	// DefaultOutput adapts to the environment (text on TTY, markdown elsewhere).
	DefaultOutput = "auto"
	// DefaultListenAddr is where the serve command binds.
	DefaultListenAddr = ":8080"
	// DefaultStoreDriver backs the serve command with embedded SQLite.
	DefaultStoreDriver = "sqlite"
	// DefaultStoreDSN keeps the sink database under a dotted work directory.
	DefaultStoreDSN = ".graphload/graph.db"
)

// StoreConfig configures the database behind the serve command.
type StoreConfig struct {
	// Driver is "sqlite" or "pgx".
	Driver string `koanf:"driver"`
	// DSN is the database path (sqlite) or connection string (pgx).
	DSN string `koanf:"dsn"`
}

// Config holds the runtime configuration.
type Config struct {
	// APIURL is the ingestion endpoint uploads target.
	APIURL string `koanf:"api_url"`
	// BatchSize bounds nodes per outbound request.
	BatchSize int `koanf:"batch_size"`
	// FlushPause is the delay between consecutive flushes.
	FlushPause time.Duration `koanf:"flush_pause"`
	// RequestTimeout bounds each upload request.
	RequestTimeout time.Duration `koanf:"request_timeout"`
	// OutputFormat selects auto, text, markdown, or json output.
	OutputFormat string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// ListenAddr is the serve command's bind address.
	ListenAddr string `koanf:"listen_addr"`
	// Store configures the serve command's database.
	Store StoreConfig `koanf:"store"`
}
