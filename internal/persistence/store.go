// Package persistence defines the graph store contract and its in-memory
// and SQLite implementations. A store holds the serialized {nodes, edges}
// pair of one or more canvases; it is the collaborator behind the canvas
// save action.
package persistence

import (
	"context"
	"errors"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// ErrGraphNotFound is returned when a canvas id is not in the store.
var ErrGraphNotFound = errors.New("graph not found")

// Store persists canvas graphs keyed by id. Save is an upsert.
type Store interface {
	SaveGraph(ctx context.Context, id string, nodes []api.Node, edges []api.Edge) error
	LoadGraph(ctx context.Context, id string) ([]api.Node, []api.Edge, error)
	ListGraphs(ctx context.Context) ([]string, error)
	DeleteGraph(ctx context.Context, id string) error
}
