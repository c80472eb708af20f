package record

import (
	"iter"

	"github.com/leapstack-labs/graphload/internal/source"
	"github.com/leapstack-labs/graphload/pkg/graph"
)

// Defaults for the tabular variant, from the commandments dataset the
// pipeline was first built for.
const (
	DefaultTableLabel   = "command"
	DefaultDropColumn   = "commandment_number"
	DefaultTableStartID = 1
)

// TableOptions configures the tabular generator.
type TableOptions struct {
	// Label applied to every emitted node. DefaultTableLabel when empty.
	Label string
	// Drop names the column omitted from properties because it is
	// redundant with the positional node id. DefaultDropColumn when empty.
	Drop string
	// StartID is the id of the first node. DefaultTableStartID when zero.
	StartID uint64
}

// Table emits one node per row. All columns except the dropped one pass
// through as string properties, unmodified.
func Table(t *source.Table, opts TableOptions) iter.Seq[Record] {
	label := opts.Label
	if label == "" {
		label = DefaultTableLabel
	}
	drop := opts.Drop
	if drop == "" {
		drop = DefaultDropColumn
	}
	startID := opts.StartID
	if startID == 0 {
		startID = DefaultTableStartID
	}

	return func(yield func(Record) bool) {
		id := startID
		for _, row := range t.Rows {
			props := make(graph.Properties, len(row))
			for _, col := range t.Header {
				if col == drop {
					continue
				}
				props[col] = row[col]
			}

			n := graph.NewNode(label, props)
			n.ID = id
			if !yield(nodeRecord(n)) {
				return
			}
			id++
		}
	}
}
