package store

import (
	"context"
	"fmt"
)

// LabelCount pairs a node label with how many nodes carry it.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats summarizes what the store holds.
type Stats struct {
	Nodes  int64        `json:"nodes"`
	Edges  int64        `json:"edges"`
	Labels []LabelCount `json:"labels"`
}

// Stats reports node and edge totals plus a per-label node breakdown,
// labels in lexical order.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	stats := &Stats{}

	var err error
	if stats.Nodes, err = s.CountNodes(ctx); err != nil {
		return nil, err
	}
	if stats.Edges, err = s.CountEdges(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT label, COUNT(*) FROM nodes GROUP BY label ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		stats.Labels = append(stats.Labels, lc)
	}

	return stats, rows.Err()
}
