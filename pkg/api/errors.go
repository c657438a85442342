package api

import "errors"

var (
	// ErrNodeNotFound is returned when an operation references a node id
	// that is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when an operation references an edge id
	// that is not in the graph.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrSelfLoop is returned by Connect when source and target are the
	// same node.
	ErrSelfLoop = errors.New("edge connects a node to itself")

	// ErrDuplicateEdge is returned by Connect when an edge with the same
	// endpoints and handles already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrCycleDetected is returned when acyclicity is enforced and an
	// operation would close a cycle.
	ErrCycleDetected = errors.New("cycle detected, graph is not acyclic")

	// ErrAlreadyRunning is returned by Start on a simulator that is
	// already running.
	ErrAlreadyRunning = errors.New("deployment already running")

	// ErrNotRunning is returned by Fail on a simulator that is not
	// running.
	ErrNotRunning = errors.New("deployment not running")
)
