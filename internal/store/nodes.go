package store

import (
	"context"
	"fmt"
	"time"

	"github.com/leapstack-labs/graphload/pkg/graph"
)

// UpsertNodes inserts or updates nodes keyed by their generator-assigned
// id, all inside one transaction. A replayed upload overwrites label and
// properties and bumps updated_at while keeping the original created_at.
func (s *Store) UpsertNodes(ctx context.Context, nodes []graph.Node) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	if len(nodes) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := s.rebind(`
		INSERT INTO nodes (id, label, properties, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			label = excluded.label,
			properties = excluded.properties,
			updated_at = excluded.updated_at`)

	now := time.Now().UTC().Unix()
	for _, n := range nodes {
		_, err := tx.ExecContext(ctx, query, int64(n.ID), n.Label, n.Properties, now, now)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert node %d: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(nodes), nil
}

// ListNodes retrieves stored nodes ordered by id.
func (s *Store) ListNodes(ctx context.Context, q Query) ([]graph.Node, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, label, properties, created_at, updated_at FROM nodes`
	args := []any{}
	if q.Label != "" {
		query += ` WHERE label = ?`
		args = append(args, q.Label)
	}
	query += ` ORDER BY id LIMIT ?`
	args = append(args, q.limit())

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []graph.Node{}
	for rows.Next() {
		var n graph.Node
		var id, createdAt, updatedAt int64

		if err := rows.Scan(&id, &n.Label, &n.Properties, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}

		n.ID = uint64(id)
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		n.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		nodes = append(nodes, n)
	}

	return nodes, rows.Err()
}

// CountNodes returns the number of stored nodes.
func (s *Store) CountNodes(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return count, nil
}
