// Package layout turns a blueprint into a positioned canvas graph and
// re-flows arbitrary node sets into a grid. Both passes are pure: the same
// input always yields the same counts, positions, and topology (only ids
// are regenerated).
package layout

import (
	"math"

	"github.com/google/uuid"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// Layout geometry. The trigger node anchors the left edge, agents sit on
// a circle, and workflow actions form a row along the bottom.
const (
	triggerX = 50
	triggerY = 200

	circleCenterX = 600
	circleCenterY = 300
	circleRadius  = 220

	actionStartX   = 200
	actionSpacingX = 400
	actionY        = 600
)

// Grid geometry for AutoLayout.
const (
	gridColumns = 3
	gridOriginX = 100
	gridOriginY = 100
	gridCellW   = 300
	gridCellH   = 200
)

// Generate builds the canvas graph for a blueprint:
//
//   - one trigger node at a fixed anchor,
//   - one agent node per blueprint agent, evenly spaced on a circle,
//   - edges trigger→agent0 then a linear agent chain,
//   - one action node per workflow along the bottom row, each attached to
//     the next agent in sequence, clamped to the last agent.
func Generate(bp api.Blueprint) ([]api.Node, []api.Edge) {
	nodes := make([]api.Node, 0, 1+len(bp.Agents)+len(bp.Workflows))
	edges := make([]api.Edge, 0, len(bp.Agents)+len(bp.Workflows))

	triggerType := api.TriggerManual
	if len(bp.Workflows) > 0 && bp.Workflows[0].TriggerType != "" {
		triggerType = bp.Workflows[0].TriggerType
	}
	trigger := api.Node{
		ID:       uuid.NewString(),
		Kind:     api.KindTrigger,
		Position: api.Position{X: triggerX, Y: triggerY},
		Data:     api.TriggerData{TriggerType: triggerType},
	}
	nodes = append(nodes, trigger)

	agentIDs := make([]string, len(bp.Agents))
	for i, agent := range bp.Agents {
		theta := float64(i) * 2 * math.Pi / float64(len(bp.Agents))
		profile := profileForRole(agent.Role)
		n := api.Node{
			ID:   uuid.NewString(),
			Kind: api.KindAgent,
			Position: api.Position{
				X: circleCenterX + circleRadius*math.Cos(theta),
				Y: circleCenterY + circleRadius*math.Sin(theta),
			},
			Data: api.AgentData{
				Name:        agent.Name,
				Role:        agent.Role,
				Description: agent.Description,
				Tools:       append([]string(nil), agent.ToolsNeeded...),
				Personality: profile.Personality,
				Icon:        profile.Icon,
				Color:       profile.Color,
				Status:      "ready",
			},
		}
		agentIDs[i] = n.ID
		nodes = append(nodes, n)
	}

	// Trigger feeds the first agent, then the agents form a chain.
	if len(agentIDs) > 0 {
		edges = append(edges, chainEdge(trigger.ID, agentIDs[0]))
	}
	for i := 1; i < len(agentIDs); i++ {
		edges = append(edges, chainEdge(agentIDs[i-1], agentIDs[i]))
	}

	for j, wf := range bp.Workflows {
		n := api.Node{
			ID:   uuid.NewString(),
			Kind: api.KindAction,
			Position: api.Position{
				X: actionStartX + actionSpacingX*float64(j),
				Y: actionY,
			},
			Data: api.ActionData{
				Name:        wf.Name,
				ActionType:  "workflow",
				Description: wf.Description,
			},
		}
		nodes = append(nodes, n)

		if len(agentIDs) > 0 {
			src := j + 1
			if src > len(agentIDs)-1 {
				src = len(agentIDs) - 1
			}
			edges = append(edges, chainEdge(agentIDs[src], n.ID))
		}
	}

	return nodes, edges
}

func chainEdge(source, target string) api.Edge {
	return api.Edge{
		ID:       uuid.NewString(),
		Source:   source,
		Target:   target,
		Animated: true,
	}
}

// AutoLayout re-flows an arbitrary node set into a fixed grid, three
// columns wide, preserving order. Positions are replaced; everything else
// is kept.
func AutoLayout(nodes []api.Node) []api.Node {
	out := api.CloneNodes(nodes)
	for i := range out {
		col := i % gridColumns
		row := i / gridColumns
		out[i].Position = api.Position{
			X: gridOriginX + float64(col)*gridCellW,
			Y: gridOriginY + float64(row)*gridCellH,
		}
	}
	return out
}
