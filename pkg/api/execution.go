package api

import "time"

// Status is the lifecycle state of a deployment run.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// DeployStep is one named stage of a deployment with its share of the
// progress bar. Weights across a step table sum to 100.
type DeployStep struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// DeployState is a snapshot of a deployment run.
type DeployState struct {
	ID        string `json:"id"`
	StepIndex int    `json:"step_index"`
	StepName  string `json:"step_name,omitempty"`
	Progress  int    `json:"progress"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
}

// DeployMetrics is what a canvas reports upward while a deployment runs.
type DeployMetrics struct {
	TotalNodes     int `json:"total_nodes"`
	CompletedNodes int `json:"completed_nodes"`
}

// Snapshot is one immutable capture of the canvas graph, as stored by the
// undo/redo history.
type Snapshot struct {
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Nodes:     CloneNodes(s.Nodes),
		Edges:     CloneEdges(s.Edges),
		Timestamp: s.Timestamp,
	}
}

// Suggestion is one ranked next-node proposal for a selected node.
type Suggestion struct {
	Kind   NodeKind `json:"kind"`
	Reason string   `json:"reason"`
}
