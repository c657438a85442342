package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// SQLiteStore is a Store backed by SQLite. Nodes and edges are stored as
// JSON documents, the same shape the save callback carries.
//
// It expects an *sql.DB opened with a SQLite driver; the caller imports
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore initializes the schema in the given database and
// returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS canvases (
			id TEXT PRIMARY KEY,
			nodes TEXT NOT NULL,
			edges TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
	)
	return err
}

func (s *SQLiteStore) SaveGraph(ctx context.Context, id string, nodes []api.Node, edges []api.Edge) error {
	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return err
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO canvases (id, nodes, edges, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			nodes = excluded.nodes,
			edges = excluded.edges,
			updated_at = excluded.updated_at`,
		id, string(nodesJSON), string(edgesJSON), time.Now().UTC(),
	)
	return err
}

func (s *SQLiteStore) LoadGraph(ctx context.Context, id string) ([]api.Node, []api.Edge, error) {
	var nodesJSON, edgesJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT nodes, edges FROM canvases WHERE id = ?`, id,
	).Scan(&nodesJSON, &edgesJSON)
	if err == sql.ErrNoRows {
		return nil, nil, ErrGraphNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var nodes []api.Node
	if err := json.Unmarshal([]byte(nodesJSON), &nodes); err != nil {
		return nil, nil, err
	}
	var edges []api.Edge
	if err := json.Unmarshal([]byte(edgesJSON), &edges); err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

func (s *SQLiteStore) ListGraphs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM canvases ORDER BY id`)
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

func (s *SQLiteStore) DeleteGraph(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM canvases WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGraphNotFound
	}
	return nil
}
