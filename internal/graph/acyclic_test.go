package graph

import (
	"errors"
	"testing"

	"github.com/petrijr/crewcanvas/pkg/api"
)

func edge(source, target string) api.Edge {
	return api.Edge{ID: source + "->" + target, Source: source, Target: target}
}

func node(id string) api.Node {
	return api.Node{ID: id, Kind: api.KindAgent, Data: api.AgentData{}}
}

func TestValidateAcyclicAcceptsChain(t *testing.T) {
	nodes := []api.Node{node("a"), node("b"), node("c")}
	edges := []api.Edge{edge("a", "b"), edge("b", "c")}
	if err := ValidateAcyclic(nodes, edges); err != nil {
		t.Fatalf("chain flagged as cyclic: %v", err)
	}
}

func TestValidateAcyclicAcceptsDiamond(t *testing.T) {
	nodes := []api.Node{node("a"), node("b"), node("c"), node("d")}
	edges := []api.Edge{edge("a", "b"), edge("a", "c"), edge("b", "d"), edge("c", "d")}
	if err := ValidateAcyclic(nodes, edges); err != nil {
		t.Fatalf("diamond flagged as cyclic: %v", err)
	}
}

func TestValidateAcyclicRejectsCycle(t *testing.T) {
	nodes := []api.Node{node("a"), node("b"), node("c")}
	edges := []api.Edge{edge("a", "b"), edge("b", "c"), edge("c", "a")}
	err := ValidateAcyclic(nodes, edges)
	if !errors.Is(err, api.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestValidateAcyclicWalksEdgeOnlyNodes(t *testing.T) {
	// The cycle involves ids that never appear in the node list.
	edges := []api.Edge{edge("x", "y"), edge("y", "x")}
	err := ValidateAcyclic(nil, edges)
	if !errors.Is(err, api.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestValidateAcyclicEmptyGraph(t *testing.T) {
	if err := ValidateAcyclic(nil, nil); err != nil {
		t.Fatalf("empty graph flagged as cyclic: %v", err)
	}
}
