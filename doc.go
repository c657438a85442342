// Package crewcanvas is the graph engine behind a visual AI-workforce
// canvas: typed nodes (triggers, agents, actions, conditions, delays)
// connected by edges, edited through a controller that records every
// mutation in a bounded undo/redo history and walks deployments through a
// staged, weighted simulation.
//
// # Core Concepts
//
// The programming model is intentionally small:
//
//  1. Canvas
//  2. Blueprint
//  3. GraphStore
//  4. DeployObserver
//
// # Canvas
//
// A Canvas owns one graph and is the only component that mutates it. Every
// successful mutation is captured as an immutable snapshot, so undo and
// redo are exact:
//
//	cv := crewcanvas.NewCanvas(crewcanvas.CanvasConfig{})
//	agent, _ := cv.AddNode(crewcanvas.KindAgent, crewcanvas.Position{X: 400, Y: 300},
//	    crewcanvas.AgentData{Name: "Scout", Role: "Research"})
//	cv.Undo() // graph is empty again
//	cv.Redo() // agent is back
//
// Graph invariants are enforced on the way in: node ids are unique, edges
// must reference existing nodes, self-loops and duplicate connections are
// rejected, and acyclicity can be enforced with a config flag.
//
// # Blueprint
//
// A Blueprint is the AI-proposed structure of a workforce, agents plus
// workflows, consumed as an opaque JSON value. Loading one generates a
// deterministic layout: a trigger anchor, agents on a circle wired into a
// chain, and one action node per workflow:
//
//	bp := crewcanvas.NewBlueprint("Growth Guild").
//	    Agent("Scout", "Market Research", "finds leads").
//	    Agent("Writer", "Content Writer", "drafts outreach").
//	    Workflow("Outreach", "send the campaign", crewcanvas.TriggerSchedule).
//	    Build()
//	_ = cv.LoadBlueprint(bp)
//
// # Persistence
//
// The canvas itself holds no storage; an explicit save forwards the
// current {nodes, edges} pair to a save collaborator. GraphStore
// implementations exist in-memory, on SQLite, and on PostgreSQL:
//
//	store, _ := crewcanvas.NewSQLiteStore(db)
//	cv := crewcanvas.NewCanvas(crewcanvas.CanvasConfig{
//	    OnSave: crewcanvas.StoreSaver(store, "my-canvas"),
//	})
//
// # Deployment
//
// Execute starts a simulated deployment: nine named stages with weighted
// progress, advanced on randomized timer delays, clamped at 95% until the
// final stage lands. Observers receive lifecycle callbacks; the injectable
// clock lets tests run a whole deployment in virtual time.
package crewcanvas
