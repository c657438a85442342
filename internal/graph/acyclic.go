package graph

import (
	"github.com/petrijr/crewcanvas/pkg/api"
)

// ValidateAcyclic returns ErrCycleDetected if the edge set contains a
// directed cycle. Nodes referenced only by edges are still walked, so a
// dangling edge set cannot hide a cycle.
func ValidateAcyclic(nodes []api.Node, edges []api.Edge) error {
	adj := make(map[string][]string)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	state := make(map[string]int)
	for _, n := range nodes {
		state[n.ID] = unvisited
	}
	for _, e := range edges {
		if _, ok := state[e.Source]; !ok {
			state[e.Source] = unvisited
		}
		if _, ok := state[e.Target]; !ok {
			state[e.Target] = unvisited
		}
	}

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = visiting
		for _, next := range adj[id] {
			switch state[next] {
			case visiting:
				return false
			case unvisited:
				if !dfs(next) {
					return false
				}
			}
		}
		state[id] = visited
		return true
	}

	for id, st := range state {
		if st == unvisited {
			if !dfs(id) {
				return api.ErrCycleDetected
			}
		}
	}
	return nil
}
