// Package postgres provides a PostgreSQL-backed canvas graph store using
// pgx connection pools.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petrijr/crewcanvas/internal/persistence"
	"github.com/petrijr/crewcanvas/pkg/api"
)

// Store is a persistence.Store backed by PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

var _ persistence.Store = (*Store)(nil)

// New wraps an existing pgx pool. The caller owns the pool's lifecycle.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// CreateSchema creates the canvases table if it does not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS canvases (
			id TEXT PRIMARY KEY,
			nodes JSONB NOT NULL,
			edges JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DropSchema removes the canvases table.
func (s *Store) DropSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS canvases`); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

func (s *Store) SaveGraph(ctx context.Context, id string, nodes []api.Node, edges []api.Edge) error {
	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return err
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO canvases (id, nodes, edges, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			nodes = EXCLUDED.nodes,
			edges = EXCLUDED.edges,
			updated_at = EXCLUDED.updated_at`,
		id, nodesJSON, edgesJSON, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save graph %s: %w", id, err)
	}
	return nil
}

func (s *Store) LoadGraph(ctx context.Context, id string) ([]api.Node, []api.Edge, error) {
	var nodesJSON, edgesJSON []byte
	err := s.db.QueryRow(ctx,
		`SELECT nodes, edges FROM canvases WHERE id = $1`, id,
	).Scan(&nodesJSON, &edgesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, persistence.ErrGraphNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load graph %s: %w", id, err)
	}

	var nodes []api.Node
	if err := json.Unmarshal(nodesJSON, &nodes); err != nil {
		return nil, nil, err
	}
	var edges []api.Edge
	if err := json.Unmarshal(edgesJSON, &edges); err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func (s *Store) ListGraphs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM canvases ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) DeleteGraph(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM canvases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete graph %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return persistence.ErrGraphNotFound
	}
	return nil
}
