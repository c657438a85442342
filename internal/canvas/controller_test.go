package canvas

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/petrijr/crewcanvas/internal/simulate"
	"github.com/petrijr/crewcanvas/internal/testutil"
	"github.com/petrijr/crewcanvas/pkg/api"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(t *testing.T, cfg Config) *Controller {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	return New(cfg)
}

func mustAddNode(t *testing.T, c *Controller, kind api.NodeKind, pos api.Position) api.Node {
	t.Helper()
	node, err := c.AddNode(kind, pos, nil)
	if err != nil {
		t.Fatalf("AddNode(%s) failed: %v", kind, err)
	}
	return node
}

func TestMutationsRecordHistory(t *testing.T) {
	c := newTestController(t, Config{})

	if c.CanUndo() {
		t.Fatalf("fresh canvas should have nothing to undo")
	}

	trigger := mustAddNode(t, c, api.KindTrigger, api.Position{X: 50, Y: 200})
	agent := mustAddNode(t, c, api.KindAgent, api.Position{X: 600, Y: 300})
	if _, err := c.Connect(trigger.ID, agent.ID, "", ""); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	wantNodes, wantEdges := c.Graph()

	// Three mutations, three undos, back to empty.
	for i := 0; i < 3; i++ {
		if !c.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	if nodes, edges := c.Graph(); len(nodes) != 0 || len(edges) != 0 {
		t.Fatalf("expected empty canvas after full undo, got %d nodes %d edges", len(nodes), len(edges))
	}
	if c.Undo() {
		t.Fatalf("undo past the initial state should fail")
	}

	for i := 0; i < 3; i++ {
		if !c.Redo() {
			t.Fatalf("redo %d failed", i)
		}
	}
	gotNodes, gotEdges := c.Graph()
	if diff := cmp.Diff(wantNodes, gotNodes); diff != "" {
		t.Fatalf("nodes mismatch after redo (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantEdges, gotEdges); diff != "" {
		t.Fatalf("edges mismatch after redo (-want +got):\n%s", diff)
	}
	if c.Redo() {
		t.Fatalf("redo past the newest state should fail")
	}
}

func TestNewMutationTruncatesRedo(t *testing.T) {
	c := newTestController(t, Config{})

	mustAddNode(t, c, api.KindTrigger, api.Position{})
	mustAddNode(t, c, api.KindAgent, api.Position{})

	if !c.Undo() {
		t.Fatalf("undo failed")
	}
	mustAddNode(t, c, api.KindAction, api.Position{})

	if c.CanRedo() {
		t.Fatalf("redo branch should be discarded by a new mutation")
	}
}

func TestDeleteClosesConfigPanel(t *testing.T) {
	c := newTestController(t, Config{})
	node := mustAddNode(t, c, api.KindAgent, api.Position{})

	if err := c.SelectNode(node.ID); err != nil {
		t.Fatalf("SelectNode failed: %v", err)
	}
	if !c.ConfigPanelOpen() {
		t.Fatalf("expected config panel open after select")
	}

	if err := c.DeleteNode(node.ID); err != nil {
		t.Fatalf("DeleteNode failed: %v", err)
	}
	if c.ConfigPanelOpen() {
		t.Fatalf("config panel should close when the selected node is deleted")
	}
	if _, ok := c.SelectedNode(); ok {
		t.Fatalf("selection should be cleared when the selected node is deleted")
	}
}

func TestUndoPrunesDanglingSelection(t *testing.T) {
	c := newTestController(t, Config{})
	node := mustAddNode(t, c, api.KindCondition, api.Position{})
	if err := c.SelectNode(node.ID); err != nil {
		t.Fatalf("SelectNode failed: %v", err)
	}

	if !c.Undo() {
		t.Fatalf("undo failed")
	}
	if _, ok := c.SelectedNode(); ok {
		t.Fatalf("selection should not survive an undo that removes the node")
	}
	if c.ConfigPanelOpen() {
		t.Fatalf("config panel should close with the pruned selection")
	}
}

func TestConnectEnforcesAcyclic(t *testing.T) {
	c := newTestController(t, Config{EnforceAcyclic: true})
	a := mustAddNode(t, c, api.KindAgent, api.Position{})
	b := mustAddNode(t, c, api.KindAction, api.Position{})

	if _, err := c.Connect(a.ID, b.ID, "", ""); err != nil {
		t.Fatalf("forward edge failed: %v", err)
	}
	if _, err := c.Connect(b.ID, a.ID, "", ""); !errors.Is(err, api.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	// The rejected edge must not land in the graph or the history.
	if edges := c.Edges(); len(edges) != 1 {
		t.Fatalf("expected 1 edge after rejection, got %d", len(edges))
	}
	if !c.Undo() {
		t.Fatalf("undo failed")
	}
	if edges := c.Edges(); len(edges) != 0 {
		t.Fatalf("rejected edge leaked into history: %v", edges)
	}
}

func TestMergeNodeDataKeepsUnmentionedFields(t *testing.T) {
	c := newTestController(t, Config{})
	node, err := c.AddNode(api.KindAgent, api.Position{}, api.AgentData{
		Name: "Scout", Role: "Research Lead", Status: "ready",
	})
	if err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}

	updated, err := c.MergeNodeData(node.ID, []byte(`{"name":"Pathfinder"}`))
	if err != nil {
		t.Fatalf("MergeNodeData failed: %v", err)
	}
	agent, ok := updated.Data.(api.AgentData)
	if !ok {
		t.Fatalf("unexpected payload type %T", updated.Data)
	}
	if agent.Name != "Pathfinder" {
		t.Fatalf("name not updated: %q", agent.Name)
	}
	if agent.Role != "Research Lead" || agent.Status != "ready" {
		t.Fatalf("unmentioned fields lost: %+v", agent)
	}
}

func TestLoadBlueprintReplacesCanvas(t *testing.T) {
	c := newTestController(t, Config{})
	stale := mustAddNode(t, c, api.KindDelay, api.Position{})
	if err := c.SelectNode(stale.ID); err != nil {
		t.Fatalf("SelectNode failed: %v", err)
	}

	bp := api.Blueprint{
		GuildName: "Support Guild",
		Agents: []api.AgentSpec{
			{Name: "Triager", Role: "Support"},
			{Name: "Resolver", Role: "Engineering"},
		},
		Workflows: []api.WorkflowSpec{
			{Name: "Handle ticket", TriggerType: api.TriggerWebhook},
		},
	}
	if err := c.LoadBlueprint(bp); err != nil {
		t.Fatalf("LoadBlueprint failed: %v", err)
	}

	nodes, _ := c.Graph()
	// 1 trigger + 2 agents + 1 workflow action.
	if len(nodes) != 4 {
		t.Fatalf("expected 4 generated nodes, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n.ID == stale.ID {
			t.Fatalf("stale node survived blueprint load")
		}
	}
	if _, ok := c.SelectedNode(); ok {
		t.Fatalf("selection should be cleared by blueprint load")
	}

	if err := c.LoadBlueprint(api.Blueprint{}); err == nil {
		t.Fatalf("expected validation error for empty blueprint")
	}
}

func TestSuggestionsFollowSelection(t *testing.T) {
	c := newTestController(t, Config{})

	if got := c.Suggestions(); got != nil {
		t.Fatalf("expected no suggestions without a selection, got %v", got)
	}

	node := mustAddNode(t, c, api.KindTrigger, api.Position{})
	if err := c.SelectNode(node.ID); err != nil {
		t.Fatalf("SelectNode failed: %v", err)
	}
	got := c.Suggestions()
	if len(got) == 0 {
		t.Fatalf("expected suggestions for a trigger node")
	}
	if got[0].Kind != api.KindAgent {
		t.Fatalf("expected agent as the first trigger suggestion, got %s", got[0].Kind)
	}
}

func TestSaveForwardsGraphCopy(t *testing.T) {
	var savedNodes []api.Node
	var savedEdges []api.Edge
	c := newTestController(t, Config{
		OnSave: func(ctx context.Context, nodes []api.Node, edges []api.Edge) error {
			savedNodes, savedEdges = nodes, edges
			return nil
		},
	})

	a := mustAddNode(t, c, api.KindTrigger, api.Position{})
	b := mustAddNode(t, c, api.KindAgent, api.Position{})
	if _, err := c.Connect(a.ID, b.ID, "", ""); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := c.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(savedNodes) != 2 || len(savedEdges) != 1 {
		t.Fatalf("unexpected save payload: %d nodes %d edges", len(savedNodes), len(savedEdges))
	}

	// Tampering with the payload must not reach the canvas.
	savedNodes[0].Position = api.Position{X: -1, Y: -1}
	if nodes := c.Nodes(); nodes[0].Position == savedNodes[0].Position {
		t.Fatalf("save payload aliases controller state")
	}
}

func TestSaveErrorPropagates(t *testing.T) {
	boom := errors.New("store offline")
	c := newTestController(t, Config{
		OnSave: func(ctx context.Context, nodes []api.Node, edges []api.Edge) error {
			return boom
		},
	})
	if err := c.Save(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestExecuteRunsSimulationAndMetrics(t *testing.T) {
	clock := testutil.NewFakeClock()
	executed := 0
	c := newTestController(t, Config{
		OnExecute: func(ctx context.Context) error {
			executed++
			return nil
		},
		Simulator: simulate.Config{
			Clock: clock,
			Rand:  rand.New(rand.NewSource(7)),
		},
	})

	mustAddNode(t, c, api.KindTrigger, api.Position{})
	mustAddNode(t, c, api.KindAgent, api.Position{})
	mustAddNode(t, c, api.KindAction, api.Position{})

	if err := c.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if executed != 1 {
		t.Fatalf("execute collaborator called %d times", executed)
	}
	if err := c.Execute(context.Background()); !errors.Is(err, api.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if executed != 1 {
		t.Fatalf("collaborator must not fire for a rejected execute")
	}

	m := c.DeployMetrics()
	if m.TotalNodes != 3 || m.CompletedNodes != 0 {
		t.Fatalf("unexpected metrics at start: %+v", m)
	}

	for i := 0; i < 9; i++ {
		clock.Advance(3 * time.Second)
	}
	if st := c.DeployState(); st.Status != api.StatusSuccess {
		t.Fatalf("expected success, got %s", st.Status)
	}
	m = c.DeployMetrics()
	if m.CompletedNodes != m.TotalNodes {
		t.Fatalf("expected all nodes completed, got %+v", m)
	}

	select {
	case <-c.DeployDone():
	default:
		t.Fatalf("DeployDone not closed after success")
	}
}

func TestExecuteCollaboratorErrorAbortsRun(t *testing.T) {
	boom := errors.New("runner unavailable")
	c := newTestController(t, Config{
		OnExecute: func(ctx context.Context) error { return boom },
		Simulator: simulate.Config{
			Clock: testutil.NewFakeClock(),
			Rand:  rand.New(rand.NewSource(7)),
		},
	})
	if err := c.Execute(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected collaborator error, got %v", err)
	}
	if st := c.DeployState(); st.Status != api.StatusIdle {
		t.Fatalf("simulation must not start when the collaborator fails, got %s", st.Status)
	}
}

func TestHandleKeyDispatch(t *testing.T) {
	saves := 0
	c := newTestController(t, Config{
		OnSave: func(ctx context.Context, nodes []api.Node, edges []api.Edge) error {
			saves++
			return nil
		},
	})
	ctx := context.Background()

	if err := c.HandleKey(ctx, "ctrl+s"); err != nil {
		t.Fatalf("ctrl+s failed: %v", err)
	}
	if err := c.HandleKey(ctx, "Cmd+S"); err != nil {
		t.Fatalf("cmd+s failed: %v", err)
	}
	if saves != 2 {
		t.Fatalf("expected 2 saves, got %d", saves)
	}

	mustAddNode(t, c, api.KindTrigger, api.Position{})
	if err := c.HandleKey(ctx, "ctrl+z"); err != nil {
		t.Fatalf("ctrl+z failed: %v", err)
	}
	if nodes := c.Nodes(); len(nodes) != 0 {
		t.Fatalf("ctrl+z did not undo, %d nodes left", len(nodes))
	}
	if err := c.HandleKey(ctx, "cmd+shift+z"); err != nil {
		t.Fatalf("cmd+shift+z failed: %v", err)
	}
	if nodes := c.Nodes(); len(nodes) != 1 {
		t.Fatalf("ctrl+shift+z did not redo, %d nodes", len(nodes))
	}

	if err := c.HandleKey(ctx, "ctrl+q"); err != nil {
		t.Fatalf("unknown binding should be ignored, got %v", err)
	}
}
