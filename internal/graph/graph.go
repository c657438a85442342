// Package graph implements the canvas graph model: nodes, edges, and the
// pure mutation operations over them. Operations never modify the receiver;
// they return a new Graph value, so any Graph the caller holds stays valid.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// Graph is one canvas graph value. The zero value is an empty graph.
type Graph struct {
	Nodes []api.Node
	Edges []api.Edge
}

// New returns an empty graph.
func New() Graph { return Graph{} }

// FromParts builds a graph value from deep copies of nodes and edges.
func FromParts(nodes []api.Node, edges []api.Edge) Graph {
	return Graph{
		Nodes: api.CloneNodes(nodes),
		Edges: api.CloneEdges(edges),
	}
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: api.CloneNodes(g.Nodes),
		Edges: api.CloneEdges(g.Edges),
	}
}

// FindNode returns the node with the given id.
func (g Graph) FindNode(id string) (api.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return api.Node{}, false
}

// FindEdge returns the edge with the given id.
func (g Graph) FindEdge(id string) (api.Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return api.Edge{}, false
}

// AddNode inserts a new node of the given kind and returns it. A nil data
// payload gets the kind's zero variant. AddNode never fails for a valid
// kind.
func (g Graph) AddNode(kind api.NodeKind, pos api.Position, data api.NodeData) (Graph, api.Node, error) {
	if !api.ValidKind(kind) {
		return g, api.Node{}, fmt.Errorf("unknown node kind: %q", kind)
	}
	if data == nil {
		data = api.ZeroData(kind)
	} else if data.Kind() != kind {
		return g, api.Node{}, fmt.Errorf("node data kind %q does not match node kind %q", data.Kind(), kind)
	}
	node := api.Node{
		ID:       uuid.NewString(),
		Kind:     kind,
		Position: pos,
		Data:     data.Clone(),
	}
	out := g.Clone()
	out.Nodes = append(out.Nodes, node)
	return out, node.Clone(), nil
}

// UpdateNode replaces the payload of an existing node. The payload's kind
// must match the node's kind. Returns the updated node.
func (g Graph) UpdateNode(id string, data api.NodeData) (Graph, api.Node, error) {
	idx := -1
	for i, n := range g.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return g, api.Node{}, fmt.Errorf("update node %s: %w", id, api.ErrNodeNotFound)
	}
	if data == nil {
		return g, g.Nodes[idx].Clone(), nil
	}
	if data.Kind() != g.Nodes[idx].Kind {
		return g, api.Node{}, fmt.Errorf("node data kind %q does not match node kind %q", data.Kind(), g.Nodes[idx].Kind)
	}
	out := g.Clone()
	out.Nodes[idx].Data = data.Clone()
	return out, out.Nodes[idx].Clone(), nil
}

// MoveNode updates a node's position.
func (g Graph) MoveNode(id string, pos api.Position) (Graph, error) {
	idx := -1
	for i, n := range g.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return g, fmt.Errorf("move node %s: %w", id, api.ErrNodeNotFound)
	}
	out := g.Clone()
	out.Nodes[idx].Position = pos
	return out, nil
}

// DeleteNode removes the node and every edge incident to it. Removing a
// node with no incident edges is fine.
func (g Graph) DeleteNode(id string) (Graph, error) {
	if _, ok := g.FindNode(id); !ok {
		return g, fmt.Errorf("delete node %s: %w", id, api.ErrNodeNotFound)
	}
	out := Graph{
		Nodes: make([]api.Node, 0, len(g.Nodes)-1),
		Edges: make([]api.Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if n.ID != id {
			out.Nodes = append(out.Nodes, n.Clone())
		}
	}
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			out.Edges = append(out.Edges, e)
		}
	}
	return out, nil
}

// Connect creates an edge between two existing nodes. It rejects
// self-loops and edges that repeat an existing
// (source, target, sourceHandle, targetHandle) tuple.
func (g Graph) Connect(source, target, sourceHandle, targetHandle string) (Graph, api.Edge, error) {
	if source == target {
		return g, api.Edge{}, fmt.Errorf("connect %s -> %s: %w", source, target, api.ErrSelfLoop)
	}
	if _, ok := g.FindNode(source); !ok {
		return g, api.Edge{}, fmt.Errorf("connect source %s: %w", source, api.ErrNodeNotFound)
	}
	if _, ok := g.FindNode(target); !ok {
		return g, api.Edge{}, fmt.Errorf("connect target %s: %w", target, api.ErrNodeNotFound)
	}
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target &&
			e.SourceHandle == sourceHandle && e.TargetHandle == targetHandle {
			return g, api.Edge{}, fmt.Errorf("connect %s -> %s: %w", source, target, api.ErrDuplicateEdge)
		}
	}
	edge := api.Edge{
		ID:           uuid.NewString(),
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Animated:     true,
	}
	out := g.Clone()
	out.Edges = append(out.Edges, edge)
	return out, edge, nil
}

// Disconnect removes an edge by id.
func (g Graph) Disconnect(edgeID string) (Graph, error) {
	idx := -1
	for i, e := range g.Edges {
		if e.ID == edgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return g, fmt.Errorf("disconnect %s: %w", edgeID, api.ErrEdgeNotFound)
	}
	out := g.Clone()
	out.Edges = append(out.Edges[:idx], out.Edges[idx+1:]...)
	return out, nil
}
