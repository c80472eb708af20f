package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/graphload/pkg/graph"
)

// UpsertEdges inserts or updates edges inside one transaction. Edges
// are keyed by (from_id, to_id, label) since generators never assign
// them ids; a replayed upload refreshes weight and properties instead
// of piling up duplicates. Edges without an id get a fresh UUID.
func (s *Store) UpsertEdges(ctx context.Context, edges []graph.Edge) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}
	if len(edges) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := s.rebind(`
		INSERT INTO edges (id, from_id, to_id, label, weight, properties, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (from_id, to_id, label) DO UPDATE SET
			weight = excluded.weight,
			properties = excluded.properties,
			updated_at = excluded.updated_at`)

	now := time.Now().UTC().Unix()
	for _, e := range edges {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx, query, id, int64(e.FromID), int64(e.ToID), e.Label, e.Weight, e.Properties, now, now)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert edge %d->%d: %w", e.FromID, e.ToID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(edges), nil
}

// ListEdges retrieves stored edges ordered by endpoints.
func (s *Store) ListEdges(ctx context.Context, q Query) ([]graph.Edge, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, from_id, to_id, label, weight, properties, created_at, updated_at FROM edges`
	args := []any{}
	if q.Label != "" {
		query += ` WHERE label = ?`
		args = append(args, q.Label)
	}
	query += ` ORDER BY from_id, to_id LIMIT ?`
	args = append(args, q.limit())

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list edges: %w", err)
	}
	defer rows.Close()

	edges := []graph.Edge{}
	for rows.Next() {
		var e graph.Edge
		var fromID, toID, createdAt, updatedAt int64

		if err := rows.Scan(&e.ID, &fromID, &toID, &e.Label, &e.Weight, &e.Properties, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}

		e.FromID = uint64(fromID)
		e.ToID = uint64(toID)
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		e.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		edges = append(edges, e)
	}

	return edges, rows.Err()
}

// CountEdges returns the number of stored edges.
func (s *Store) CountEdges(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM edges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return count, nil
}
