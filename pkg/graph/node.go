// Package graph defines the property-graph data model shared by the
// record generators, the batch uploader, and the ingestion sink.
//
// The JSON field names form the wire contract with the ingestion API:
// nodes carry id/label/properties, edges additionally carry
// from_id/to_id/weight. Timestamps are assigned by the sink store and
// omitted from payloads produced by generators.
package graph

import "time"

// Node is a single vertex in the graph.
type Node struct {
	ID         uint64     `db:"id" json:"id"`
	Label      string     `db:"label" json:"label"`
	Properties Properties `db:"properties" json:"properties"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at,omitzero"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at,omitzero"`
}

// NewNode creates a node with the given label and properties.
// The id is assigned by the generator that emits the node.
func NewNode(label string, properties Properties) Node {
	if properties == nil {
		properties = Properties{}
	}
	return Node{Label: label, Properties: properties}
}
