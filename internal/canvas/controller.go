// Package canvas implements the canvas controller: the single owner of a
// graph value, its undo/redo history, the selection and config-panel
// state, and the deployment simulator. It is the only component that
// talks to the external save and execute collaborators.
package canvas

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/petrijr/crewcanvas/internal/graph"
	"github.com/petrijr/crewcanvas/internal/history"
	"github.com/petrijr/crewcanvas/internal/layout"
	"github.com/petrijr/crewcanvas/internal/simulate"
	"github.com/petrijr/crewcanvas/internal/suggest"
	"github.com/petrijr/crewcanvas/pkg/api"
)

// SaveFunc is the external persistence collaborator. It receives the
// current graph pair on an explicit save action; the canvas does not wait
// on any result beyond the error.
type SaveFunc func(ctx context.Context, nodes []api.Node, edges []api.Edge) error

// ExecuteFunc is the external execution collaborator, fired when a
// deployment is requested. The canvas only renders local simulated
// progress; the real workflow runner lives behind this callback.
type ExecuteFunc func(ctx context.Context) error

// Config describes how to construct a Controller.
type Config struct {
	// HistorySize bounds the undo stack; <= 0 means the default.
	HistorySize int

	// EnforceAcyclic makes Connect reject edges that would close a
	// directed cycle. Off by default: the canvas historically allowed
	// cycles.
	EnforceAcyclic bool

	OnSave    SaveFunc
	OnExecute ExecuteFunc

	Logger *slog.Logger

	// Simulator configures the deployment simulator, mainly so tests can
	// inject a clock and a seeded rand.
	Simulator simulate.Config
}

// Controller owns one canvas. All methods are safe for concurrent use,
// though the expected pattern is a single mutator.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	logger *slog.Logger

	g    graph.Graph
	hist *history.History
	sim  *simulate.Simulator

	selected  string
	panelOpen bool

	deployTotal int
}

// New creates a Controller over an empty graph. The empty state is pushed
// as the first history entry so a full undo chain lands back on it.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		cfg:    cfg,
		logger: logger,
		g:      graph.New(),
		hist:   history.New(cfg.HistorySize),
		sim:    simulate.New(cfg.Simulator),
	}
	c.hist.Push(nil, nil)
	return c
}

// Nodes returns a deep copy of the current nodes.
func (c *Controller) Nodes() []api.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.CloneNodes(c.g.Nodes)
}

// Edges returns a copy of the current edges.
func (c *Controller) Edges() []api.Edge {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.CloneEdges(c.g.Edges)
}

// Graph returns deep copies of the current graph pair.
func (c *Controller) Graph() ([]api.Node, []api.Edge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.CloneNodes(c.g.Nodes), api.CloneEdges(c.g.Edges)
}

// commitLocked adopts a new graph value and records it in the history.
// Callers hold c.mu. Every successful mutation goes through here; the
// canvas never drops an acknowledged change.
func (c *Controller) commitLocked(g graph.Graph) {
	c.g = g
	c.hist.Push(g.Nodes, g.Edges)
}

// AddNode inserts a node and returns it.
func (c *Controller) AddNode(kind api.NodeKind, pos api.Position, data api.NodeData) (api.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, node, err := c.g.AddNode(kind, pos, data)
	if err != nil {
		return api.Node{}, err
	}
	c.commitLocked(g)
	return node, nil
}

// UpdateNode replaces a node's payload.
func (c *Controller) UpdateNode(id string, data api.NodeData) (api.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, node, err := c.g.UpdateNode(id, data)
	if err != nil {
		return api.Node{}, err
	}
	c.commitLocked(g)
	return node, nil
}

// MergeNodeData overlays raw JSON onto a node's payload, the
// partial-update path used by the HTTP PATCH handler.
func (c *Controller) MergeNodeData(id string, raw []byte) (api.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, ok := c.g.FindNode(id)
	if !ok {
		return api.Node{}, api.ErrNodeNotFound
	}
	merged, err := api.MergeData(node.Data, raw)
	if err != nil {
		return api.Node{}, err
	}
	g, updated, err := c.g.UpdateNode(id, merged)
	if err != nil {
		return api.Node{}, err
	}
	c.commitLocked(g)
	return updated, nil
}

// MoveNode updates a node's position.
func (c *Controller) MoveNode(id string, pos api.Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, err := c.g.MoveNode(id, pos)
	if err != nil {
		return err
	}
	c.commitLocked(g)
	return nil
}

// DeleteNode removes a node and its incident edges. Deleting the node
// whose config panel is open also closes the panel.
func (c *Controller) DeleteNode(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, err := c.g.DeleteNode(id)
	if err != nil {
		return err
	}
	c.commitLocked(g)
	if c.selected == id {
		c.selected = ""
		c.panelOpen = false
	}
	return nil
}

// Connect creates an edge. With EnforceAcyclic set, an edge that would
// close a cycle is rejected and nothing is committed.
func (c *Controller) Connect(source, target, sourceHandle, targetHandle string) (api.Edge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, edge, err := c.g.Connect(source, target, sourceHandle, targetHandle)
	if err != nil {
		return api.Edge{}, err
	}
	if c.cfg.EnforceAcyclic {
		if err := graph.ValidateAcyclic(g.Nodes, g.Edges); err != nil {
			return api.Edge{}, err
		}
	}
	c.commitLocked(g)
	return edge, nil
}

// Disconnect removes an edge.
func (c *Controller) Disconnect(edgeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, err := c.g.Disconnect(edgeID)
	if err != nil {
		return err
	}
	c.commitLocked(g)
	return nil
}

// LoadBlueprint replaces the canvas with the generated layout for a
// blueprint. Selection is cleared: none of the previous nodes survive.
func (c *Controller) LoadBlueprint(bp api.Blueprint) error {
	if err := bp.Validate(); err != nil {
		return err
	}
	nodes, edges := layout.Generate(bp)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.commitLocked(graph.FromParts(nodes, edges))
	c.selected = ""
	c.panelOpen = false
	c.logger.Info("blueprint loaded",
		slog.String("guild", bp.GuildName),
		slog.Int("nodes", len(nodes)),
		slog.Int("edges", len(edges)),
	)
	return nil
}

// AutoLayout re-flows the current nodes into the fixed grid.
func (c *Controller) AutoLayout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.g.Clone()
	g.Nodes = layout.AutoLayout(g.Nodes)
	c.commitLocked(g)
}

// Undo restores the previous snapshot. Returns false at the boundary.
func (c *Controller) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.hist.Undo()
	if snap == nil {
		return false
	}
	c.restoreLocked(*snap)
	return true
}

// Redo re-applies the next snapshot. Returns false at the boundary.
func (c *Controller) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.hist.Redo()
	if snap == nil {
		return false
	}
	c.restoreLocked(*snap)
	return true
}

// restoreLocked adopts a history snapshot as the current graph. The
// selection is pruned when the restored graph no longer contains the
// selected node, same rule as delete.
func (c *Controller) restoreLocked(snap api.Snapshot) {
	c.g = graph.Graph{Nodes: snap.Nodes, Edges: snap.Edges}
	if c.selected != "" {
		if _, ok := c.g.FindNode(c.selected); !ok {
			c.selected = ""
			c.panelOpen = false
		}
	}
}

// CanUndo reports whether an Undo would restore a snapshot.
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanUndo()
}

// CanRedo reports whether a Redo would restore a snapshot.
func (c *Controller) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanRedo()
}

// SelectNode marks a node selected and opens its config panel.
func (c *Controller) SelectNode(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.g.FindNode(id); !ok {
		return api.ErrNodeNotFound
	}
	c.selected = id
	c.panelOpen = true
	return nil
}

// ClearSelection drops the selection and closes the config panel.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = ""
	c.panelOpen = false
}

// SelectedNode returns the selected node id, if any.
func (c *Controller) SelectedNode() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected != ""
}

// ConfigPanelOpen reports whether the config panel is open.
func (c *Controller) ConfigPanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelOpen
}

// Suggestions returns the ranked next-node suggestions for the selected
// node, or nil when nothing is selected.
func (c *Controller) Suggestions() []api.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == "" {
		return nil
	}
	node, ok := c.g.FindNode(c.selected)
	if !ok {
		return nil
	}
	return suggest.Suggest(node.Kind)
}

// Save forwards the current graph pair to the save collaborator.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	nodes := api.CloneNodes(c.g.Nodes)
	edges := api.CloneEdges(c.g.Edges)
	onSave := c.cfg.OnSave
	c.mu.Unlock()

	if onSave == nil {
		c.logger.Warn("save requested with no save collaborator configured")
		return nil
	}
	if err := onSave(ctx, nodes, edges); err != nil {
		return err
	}
	c.logger.Info("canvas saved",
		slog.Int("nodes", len(nodes)),
		slog.Int("edges", len(edges)),
	)
	return nil
}

// Execute hands off to the external runner and starts the local
// deployment simulation. A second Execute while one is running fails with
// ErrAlreadyRunning before the collaborator is called.
func (c *Controller) Execute(ctx context.Context) error {
	c.mu.Lock()
	if c.sim.State().Status == api.StatusRunning {
		c.mu.Unlock()
		return api.ErrAlreadyRunning
	}
	total := len(c.g.Nodes)
	onExecute := c.cfg.OnExecute
	c.mu.Unlock()

	if onExecute != nil {
		if err := onExecute(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.deployTotal = total
	c.mu.Unlock()
	return c.sim.Start()
}

// DeployState returns the current deployment run state.
func (c *Controller) DeployState() api.DeployState {
	return c.sim.State()
}

// DeployDone returns a channel closed when the current run reaches a
// terminal state.
func (c *Controller) DeployDone() <-chan struct{} {
	return c.sim.Done()
}

// DeployMetrics reports node completion derived from step progress:
// completed nodes scale with the share of steps that have advanced.
func (c *Controller) DeployMetrics() api.DeployMetrics {
	c.mu.Lock()
	total := c.deployTotal
	c.mu.Unlock()

	st := c.sim.State()
	steps := c.sim.StepCount()

	advances := 0
	switch st.Status {
	case api.StatusRunning:
		advances = st.StepIndex
	case api.StatusSuccess:
		advances = steps
	}
	completed := 0
	if steps > 0 {
		completed = total * advances / steps
	}
	return api.DeployMetrics{TotalNodes: total, CompletedNodes: completed}
}

// StopDeploy aborts the deployment simulation.
func (c *Controller) StopDeploy() { c.sim.Stop() }

// FailDeploy injects a failure into the running simulation.
func (c *Controller) FailDeploy(err error) error { return c.sim.Fail(err) }

// HandleKey dispatches a keyboard shortcut. Cmd and ctrl are equivalent;
// unknown bindings are ignored.
func (c *Controller) HandleKey(ctx context.Context, binding string) error {
	key := strings.ToLower(strings.TrimSpace(binding))
	key = strings.ReplaceAll(key, "cmd", "ctrl")

	switch key {
	case "ctrl+s":
		return c.Save(ctx)
	case "ctrl+z":
		c.Undo()
		return nil
	case "ctrl+shift+z":
		c.Redo()
		return nil
	case "ctrl+shift+r":
		return c.Execute(ctx)
	}
	return nil
}
