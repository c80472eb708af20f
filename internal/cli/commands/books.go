package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/graphload/internal/record"
	"github.com/leapstack-labs/graphload/internal/source"
)

// booksSource names the embedded canon in upload summaries, where file
// pipelines report their input path.
const booksSource = "embedded canon"

// BooksOptions holds options for the books command.
type BooksOptions struct {
	DryRun bool
}

// NewBooksCommand creates the books command.
func NewBooksCommand() *cobra.Command {
	opts := &BooksOptions{}

	cmd := &cobra.Command{
		Use:   "books [destination]",
		Short: "Upload the canonical book and chapter index",
		Long: `Upload an index of the 66 canonical books and their chapters.

No corpus download is involved: the canon (name, abbreviation, chapter
count, testament, order) is embedded. One node per book and one stub
node per chapter, 1,255 nodes in total.

The destination defaults to the configured api_url.`,
		Example: `  # Upload the index to the local sink
  graphload books

  # Count what would be sent
  graphload books --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBooks(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Generate records but deliver nothing")

	return cmd
}

func runBooks(cmd *cobra.Command, opts *BooksOptions, args []string) error {
	cc := NewCommandContext(cmd)

	dest := cc.Cfg.APIURL
	if len(args) == 1 {
		dest = args[0]
	}
	if !opts.DryRun && !source.IsURL(dest) {
		return fmt.Errorf("destination must be an http(s) url, got %s", dest)
	}

	records := record.CanonIndex()

	if opts.DryRun {
		return renderDryRun(cc.Renderer, summarize(booksSource, cc.Cfg.BatchSize, records))
	}

	uploader := newUploader(cc, dest, 0, flushStatus(cc.Renderer))
	summary, err := uploader.Run(cmd.Context(), records)
	if err != nil {
		return err
	}

	return renderUpload(cc.Renderer, uploadOutput(booksSource, dest, summary))
}
