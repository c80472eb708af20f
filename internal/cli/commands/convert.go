package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/graphload/internal/cli/output"
	"github.com/leapstack-labs/graphload/internal/export"
	"github.com/leapstack-labs/graphload/internal/record"
	"github.com/leapstack-labs/graphload/internal/source"
)

// DefaultConvertDestination is where convert writes when no destination
// is given.
const DefaultConvertDestination = "transformed.csv"

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	Label   string
	Drop    string
	StartID uint64
	DryRun  bool
	Watch   bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <source> [destination]",
		Short: "Convert a CSV table into graph nodes",
		Long: `Convert a tabular CSV source into one node per row.

The header row names the property keys. One column is dropped because it
is redundant with the positional node id; every other column passes
through as a string property.

An http(s) destination uploads the nodes in batches; anything else
writes a transformed CSV file (default: transformed.csv).`,
		Example: `  # Write transformed.csv next to the working directory
  graphload convert ./commandments.csv

  # Fetch the source over HTTP and write a named file
  graphload convert https://example.com/raw.csv out.csv

  # Upload straight to the ingestion endpoint
  graphload convert ./commandments.csv http://localhost:8080/api/v1/nodes

  # Re-run the conversion whenever the source file changes
  graphload convert ./commandments.csv --watch

  # Show what would be produced without writing anything
  graphload convert ./commandments.csv --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Label, "label", record.DefaultTableLabel, "Label applied to every node")
	cmd.Flags().StringVar(&opts.Drop, "drop", record.DefaultDropColumn, "Column omitted from properties")
	cmd.Flags().Uint64Var(&opts.StartID, "start-id", record.DefaultTableStartID, "Id assigned to the first node")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Generate records but deliver nothing")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run when the source file changes")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, args []string) error {
	cc := NewCommandContext(cmd)

	src := args[0]
	dest := DefaultConvertDestination
	if len(args) == 2 {
		dest = args[1]
	}

	if opts.Watch {
		if opts.DryRun {
			return fmt.Errorf("--watch cannot be combined with --dry-run")
		}
		if source.IsURL(src) {
			return fmt.Errorf("--watch requires a local source file, got %s", src)
		}
	}

	run := func(ctx context.Context) error {
		return convertOnce(ctx, cc, opts, src, dest)
	}

	if !opts.Watch {
		return run(cmd.Context())
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		return err
	}

	cc.Renderer.Println("")
	cc.Renderer.Muted("Watching " + src + " for changes (Ctrl+C to stop)")
	return watchAndRun(ctx, src, cc.Logger, func() error {
		return run(ctx)
	})
}

// convertOnce runs the tabular pipeline end to end a single time.
func convertOnce(ctx context.Context, cc *CommandContext, opts *ConvertOptions, src, dest string) error {
	data, err := fetchSource(ctx, cc, src)
	if err != nil {
		return err
	}

	tbl, err := source.DecodeCSV(data)
	if err != nil {
		return err
	}

	tableOpts := record.TableOptions{
		Label:   opts.Label,
		Drop:    opts.Drop,
		StartID: opts.StartID,
	}
	records := record.Table(tbl, tableOpts)

	if opts.DryRun {
		return renderDryRun(cc.Renderer, summarize(src, cc.Cfg.BatchSize, records))
	}

	if source.IsURL(dest) {
		uploader := newUploader(cc, dest, 0, flushStatus(cc.Renderer))
		summary, err := uploader.Run(ctx, records)
		if err != nil {
			return err
		}
		return renderUpload(cc.Renderer, uploadOutput(src, dest, summary))
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	nodes, err := export.CSV(f, records)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	return renderConvert(cc.Renderer, output.ConvertOutput{
		Source:      src,
		Destination: dest,
		Nodes:       nodes,
	})
}

// renderConvert reports a file-backed conversion, in the active output mode.
func renderConvert(r *output.Renderer, out output.ConvertOutput) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Convert Complete"))
		r.Println("")
		r.Println(output.FormatKeyValue("Source", out.Source))
		r.Println(output.FormatKeyValue("Destination", out.Destination))
		r.Printf("**Nodes:** %d\n", out.Nodes)
		return nil
	default:
		r.Success(fmt.Sprintf("Wrote %d nodes to %s", out.Nodes, out.Destination))
		r.Muted("Source: " + out.Source)
		return nil
	}
}
