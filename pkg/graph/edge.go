package graph

import "time"

// Edge is a directed, labelled connection between two nodes.
// FromID and ToID reference node ids; the edge id itself is assigned
// by the sink store on first insert and is zero-valued on the wire.
type Edge struct {
	ID         string     `db:"id" json:"id,omitempty"`
	FromID     uint64     `db:"from_id" json:"from_id"`
	ToID       uint64     `db:"to_id" json:"to_id"`
	Label      string     `db:"label" json:"label"`
	Weight     int64      `db:"weight" json:"weight"`
	Properties Properties `db:"properties" json:"properties"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at,omitzero"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at,omitzero"`
}

// NewEdge creates an edge from one node to another.
func NewEdge(from, to uint64, label string, weight int64) Edge {
	return Edge{FromID: from, ToID: to, Label: label, Weight: weight, Properties: Properties{}}
}
