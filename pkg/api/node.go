package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// NodeKind discriminates the closed set of node payload variants.
type NodeKind string

const (
	KindTrigger   NodeKind = "trigger"
	KindAgent     NodeKind = "agent"
	KindAction    NodeKind = "action"
	KindCondition NodeKind = "condition"
	KindDelay     NodeKind = "delay"
)

// ValidKind reports whether k names one of the five node kinds.
func ValidKind(k NodeKind) bool {
	switch k {
	case KindTrigger, KindAgent, KindAction, KindCondition, KindDelay:
		return true
	}
	return false
}

// TriggerType says how a trigger node (or a blueprint workflow) fires.
type TriggerType string

const (
	TriggerManual   TriggerType = "manual"
	TriggerSchedule TriggerType = "schedule"
	TriggerWebhook  TriggerType = "webhook"
	TriggerEvent    TriggerType = "event"
)

// Position is a node's location on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the per-kind payload of a node. The set of implementations
// is closed: TriggerData, AgentData, ActionData, ConditionData, DelayData.
// Consumers that switch on the concrete type must handle all five.
type NodeData interface {
	Kind() NodeKind
	Clone() NodeData
}

// TriggerData configures an entry-point node.
type TriggerData struct {
	TriggerType TriggerType `json:"trigger_type"`
	Schedule    string      `json:"schedule,omitempty"`
	WebhookPath string      `json:"webhook_path,omitempty"`
	EventName   string      `json:"event_name,omitempty"`
}

func (TriggerData) Kind() NodeKind { return KindTrigger }

func (d TriggerData) Clone() NodeData { return d }

// AgentData configures an AI worker node.
type AgentData struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Description string   `json:"description,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Personality string   `json:"personality,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Color       string   `json:"color,omitempty"`
	Status      string   `json:"status,omitempty"`
}

func (AgentData) Kind() NodeKind { return KindAgent }

func (d AgentData) Clone() NodeData {
	c := d
	if d.Tools != nil {
		c.Tools = append([]string(nil), d.Tools...)
	}
	return c
}

// ActionData configures a node that executes an effect.
type ActionData struct {
	Name        string `json:"name"`
	ActionType  string `json:"action_type"`
	Description string `json:"description,omitempty"`
}

func (ActionData) Kind() NodeKind { return KindAction }

func (d ActionData) Clone() NodeData { return d }

// ConditionData configures a branching node.
type ConditionData struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

func (ConditionData) Kind() NodeKind { return KindCondition }

func (d ConditionData) Clone() NodeData { return d }

// DelayData configures a wait node.
type DelayData struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

func (DelayData) Kind() NodeKind { return KindDelay }

func (d DelayData) Clone() NodeData { return d }

// ZeroData returns the zero payload for a kind.
func ZeroData(kind NodeKind) NodeData {
	switch kind {
	case KindTrigger:
		return TriggerData{TriggerType: TriggerManual}
	case KindAgent:
		return AgentData{}
	case KindAction:
		return ActionData{}
	case KindCondition:
		return ConditionData{}
	case KindDelay:
		return DelayData{}
	}
	return nil
}

// DecodeNodeData unmarshals raw JSON into the payload variant for kind.
func DecodeNodeData(kind NodeKind, raw []byte) (NodeData, error) {
	if len(raw) == 0 {
		if d := ZeroData(kind); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("unknown node kind: %q", kind)
	}
	switch kind {
	case KindTrigger:
		var d TriggerData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		if d.TriggerType == "" {
			d.TriggerType = TriggerManual
		}
		return d, nil
	case KindAgent:
		var d AgentData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindAction:
		var d ActionData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindCondition:
		var d ConditionData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindDelay:
		var d DelayData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown node kind: %q", kind)
}

// MergeData overlays raw JSON onto an existing payload, keeping fields the
// raw document does not mention. This is the partial-update primitive used
// by the controller and the HTTP PATCH handler.
func MergeData(data NodeData, raw []byte) (NodeData, error) {
	switch d := data.Clone().(type) {
	case TriggerData:
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case AgentData:
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionData:
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ConditionData:
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case DelayData:
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown node data type %T", data)
}

// Node is one typed vertex on the canvas.
type Node struct {
	ID       string
	Kind     NodeKind
	Position Position
	Data     NodeData
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	c := n
	if n.Data != nil {
		c.Data = n.Data.Clone()
	}
	return c
}

// nodeJSON is the wire shape of a Node. Data stays raw until the kind is
// known.
type nodeJSON struct {
	ID       string          `json:"id"`
	Kind     NodeKind        `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if n.Data != nil {
		b, err := json.Marshal(n.Data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(nodeJSON{
		ID:       n.ID,
		Kind:     n.Kind,
		Position: n.Position,
		Data:     raw,
	})
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var nj nodeJSON
	if err := json.Unmarshal(b, &nj); err != nil {
		return err
	}
	data, err := DecodeNodeData(nj.Kind, nj.Data)
	if err != nil {
		return err
	}
	n.ID = nj.ID
	n.Kind = nj.Kind
	n.Position = nj.Position
	n.Data = data
	return nil
}

// Edge is a directed connection between two nodes. SourceHandle and
// TargetHandle name the ports the connection is attached to; empty means
// the default port.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"source_handle,omitempty"`
	TargetHandle string `json:"target_handle,omitempty"`
	Animated     bool   `json:"animated,omitempty"`
	Label        string `json:"label,omitempty"`
}

// CloneNodes returns a deep copy of nodes.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges returns a copy of edges.
func CloneEdges(edges []Edge) []Edge {
	if edges == nil {
		return nil
	}
	return append([]Edge(nil), edges...)
}
