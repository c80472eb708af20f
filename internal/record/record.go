// Package record turns decoded source documents into lazy sequences of
// graph records: nodes, and in the graph variant, containment edges
// referencing earlier node ids.
//
// A generator owns its id counter; the sequence it returns is finite,
// single-pass, and not restartable. Construct a fresh generator to
// replay a source.
package record

import (
	"iter"

	"github.com/leapstack-labs/graphload/pkg/graph"
)

// Record is one generated item. Exactly one of Node or Edge is set.
type Record struct {
	Node *graph.Node
	Edge *graph.Edge
}

// IsNode reports whether the record carries a node.
func (r Record) IsNode() bool { return r.Node != nil }

// Collect drains a sequence into node and edge slices. Intended for
// dry runs, local export, and tests; streaming consumers should range
// over the sequence instead.
func Collect(seq iter.Seq[Record]) ([]graph.Node, []graph.Edge) {
	var nodes []graph.Node
	var edges []graph.Edge
	for rec := range seq {
		if rec.Node != nil {
			nodes = append(nodes, *rec.Node)
		}
		if rec.Edge != nil {
			edges = append(edges, *rec.Edge)
		}
	}
	return nodes, edges
}

func nodeRecord(n graph.Node) Record { return Record{Node: &n} }

func edgeRecord(e graph.Edge) Record { return Record{Edge: &e} }
