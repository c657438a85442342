package api

import (
	"errors"
	"fmt"
)

// Blueprint is the AI-proposed structure of a workforce: a set of agents
// and the workflows they service. It is produced outside this module and
// consumed as an opaque value.
type Blueprint struct {
	GuildName    string         `json:"guild_name"`
	GuildPurpose string         `json:"guild_purpose"`
	Agents       []AgentSpec    `json:"agents"`
	Workflows    []WorkflowSpec `json:"workflows"`
}

// AgentSpec describes one proposed agent.
type AgentSpec struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Description string   `json:"description"`
	ToolsNeeded []string `json:"tools_needed"`
}

// WorkflowSpec describes one proposed workflow step.
type WorkflowSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TriggerType TriggerType `json:"trigger_type"`
}

// Validate checks the fields a layout pass depends on. Empty agent or
// workflow lists are fine; a blueprint with no agents still yields a
// trigger node.
func (b Blueprint) Validate() error {
	if b.GuildName == "" {
		return errors.New("blueprint guild_name is required")
	}
	for i, a := range b.Agents {
		if a.Name == "" {
			return fmt.Errorf("blueprint agent %d has no name", i)
		}
	}
	for i, w := range b.Workflows {
		if w.Name == "" {
			return fmt.Errorf("blueprint workflow %d has no name", i)
		}
		switch w.TriggerType {
		case "", TriggerManual, TriggerSchedule, TriggerWebhook, TriggerEvent:
		default:
			return fmt.Errorf("blueprint workflow %q has unknown trigger_type %q", w.Name, w.TriggerType)
		}
	}
	return nil
}
