package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/graphload/internal/server"
	"github.com/leapstack-labs/graphload/internal/store"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Listen string
	Driver string
	DSN    string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local graph ingestion sink",
		Long: `Run an HTTP server that accepts the batches the upload commands send.

PUT /api/v1/nodes upserts nodes and edges keyed by their generator-assigned
ids, so replaying an upload never duplicates data. GET endpoints expose the
stored nodes, edges, and per-label counts.

The store is embedded SQLite by default; set store.driver to pgx for
PostgreSQL.`,
		Example: `  # Serve on the default address with embedded SQLite
  graphload serve

  # A different port and database file
  graphload serve --listen :9090 --dsn ./data/graph.db

  # PostgreSQL-backed
  graphload serve --driver pgx --dsn postgres://localhost:5432/graph`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&opts.Driver, "driver", "", "Store driver: sqlite or pgx (default from config)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Store path or connection string (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)

	// CLI flags override config file
	addr := cc.Cfg.ListenAddr
	if opts.Listen != "" {
		addr = opts.Listen
	}
	driver := cc.Cfg.Store.Driver
	if opts.Driver != "" {
		driver = opts.Driver
	}
	dsn := cc.Cfg.Store.DSN
	if opts.DSN != "" {
		dsn = opts.DSN
	}

	st, err := store.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	if err := st.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}

	cc.Logger.Debug("store ready", "driver", driver, "dsn", dsn)

	srv := server.NewServer(server.Config{
		Store:  st,
		Addr:   addr,
		Logger: cc.Logger,
	})

	cc.Renderer.Printf("Serving graph sink on %s (%s store)\n", addr, driver)
	cc.Renderer.Println("Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return srv.Serve(ctx)
}
