package crewcanvas

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petrijr/crewcanvas/internal/canvas"
	"github.com/petrijr/crewcanvas/internal/layout"
	"github.com/petrijr/crewcanvas/internal/persistence"
	"github.com/petrijr/crewcanvas/internal/simulate"
	"github.com/petrijr/crewcanvas/internal/suggest"
	"github.com/petrijr/crewcanvas/pkg/api"
	"github.com/petrijr/crewcanvas/postgres"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	NodeKind    = api.NodeKind
	TriggerType = api.TriggerType
	Position    = api.Position
	Node        = api.Node
	NodeData    = api.NodeData
	Edge        = api.Edge

	TriggerData   = api.TriggerData
	AgentData     = api.AgentData
	ActionData    = api.ActionData
	ConditionData = api.ConditionData
	DelayData     = api.DelayData

	Blueprint    = api.Blueprint
	AgentSpec    = api.AgentSpec
	WorkflowSpec = api.WorkflowSpec

	Snapshot      = api.Snapshot
	Suggestion    = api.Suggestion
	Status        = api.Status
	DeployStep    = api.DeployStep
	DeployState   = api.DeployState
	DeployMetrics = api.DeployMetrics

	DeployObserver        = api.DeployObserver
	NoopDeployObserver    = api.NoopDeployObserver
	LoggingDeployObserver = api.LoggingDeployObserver
	DeployMetricsObserver = api.DeployMetricsObserver

	Clock = api.Clock

	// Canvas is the controller for one graph-editing surface.
	Canvas = canvas.Controller

	// CanvasConfig configures NewCanvas.
	CanvasConfig = canvas.Config

	// SaveFunc is the external persistence collaborator.
	SaveFunc = canvas.SaveFunc

	// ExecuteFunc is the external execution collaborator.
	ExecuteFunc = canvas.ExecuteFunc

	// SimulatorConfig configures the deployment simulator.
	SimulatorConfig = simulate.Config

	// GraphStore persists canvas graphs keyed by id.
	GraphStore = persistence.Store
)

// Re-export the node kinds.

const (
	KindTrigger   = api.KindTrigger
	KindAgent     = api.KindAgent
	KindAction    = api.KindAction
	KindCondition = api.KindCondition
	KindDelay     = api.KindDelay
)

// Re-export the trigger types.

const (
	TriggerManual   = api.TriggerManual
	TriggerSchedule = api.TriggerSchedule
	TriggerWebhook  = api.TriggerWebhook
	TriggerEvent    = api.TriggerEvent
)

// Re-export the deployment statuses.

const (
	StatusIdle    = api.StatusIdle
	StatusRunning = api.StatusRunning
	StatusSuccess = api.StatusSuccess
	StatusError   = api.StatusError
)

// Re-export the sentinel errors.

var (
	ErrNodeNotFound   = api.ErrNodeNotFound
	ErrEdgeNotFound   = api.ErrEdgeNotFound
	ErrSelfLoop       = api.ErrSelfLoop
	ErrDuplicateEdge  = api.ErrDuplicateEdge
	ErrCycleDetected  = api.ErrCycleDetected
	ErrAlreadyRunning = api.ErrAlreadyRunning
	ErrNotRunning     = api.ErrNotRunning
	ErrGraphNotFound  = persistence.ErrGraphNotFound
)

// Re-export observer helpers.

var (
	NewLoggingDeployObserver   = api.NewLoggingDeployObserver
	NewCompositeDeployObserver = api.NewCompositeDeployObserver
)

// NewCanvas creates a canvas controller over an empty graph.
func NewCanvas(cfg CanvasConfig) *Canvas {
	return canvas.New(cfg)
}

// GenerateLayout turns a blueprint into a positioned node and edge set.
func GenerateLayout(bp Blueprint) ([]Node, []Edge) {
	return layout.Generate(bp)
}

// AutoLayout re-flows an arbitrary node set into the fixed grid.
func AutoLayout(nodes []Node) []Node {
	return layout.AutoLayout(nodes)
}

// Suggest returns the ranked next-node suggestions for a node kind.
func Suggest(kind NodeKind) []Suggestion {
	return suggest.Suggest(kind)
}

// DefaultDeploySteps returns the staged deployment table.
func DefaultDeploySteps() []DeployStep {
	return simulate.DefaultSteps()
}

// Store constructors
// These wrap the internal persistence package so external callers never
// need to import internal packages.

// NewMemoryStore returns a non-durable in-memory GraphStore.
func NewMemoryStore() GraphStore {
	return persistence.NewMemoryStore()
}

// NewSQLiteStore returns a GraphStore that persists canvases in a SQLite
// database. The caller imports the driver, e.g. modernc.org/sqlite.
func NewSQLiteStore(db *sql.DB) (GraphStore, error) {
	return persistence.NewSQLiteStore(db)
}

// NewPostgresStore returns a GraphStore backed by PostgreSQL.
func NewPostgresStore(pool *pgxpool.Pool) *postgres.Store {
	return postgres.New(pool)
}

// StoreSaver adapts a GraphStore into the SaveFunc consumed by a canvas,
// writing every save under the given canvas id.
func StoreSaver(store GraphStore, id string) SaveFunc {
	return func(ctx context.Context, nodes []Node, edges []Edge) error {
		return store.SaveGraph(ctx, id, nodes, edges)
	}
}
