package crewcanvas

import (
	"fmt"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// BlueprintBuilder provides a fluent API for assembling blueprints by
// hand, mostly in tests and examples. Production blueprints arrive as
// JSON from the AI proposal layer:
//
//	bp := crewcanvas.NewBlueprint("Support Guild").
//	    Purpose("triage inbound tickets").
//	    Agent("Sorter", "Support Triage", "classifies tickets", "zendesk").
//	    Agent("Resolver", "Customer Support", "answers tickets").
//	    Workflow("Ticket intake", "new ticket arrives", crewcanvas.TriggerWebhook).
//	    Build()
type BlueprintBuilder struct {
	bp api.Blueprint
}

// NewBlueprint creates a builder for a named guild.
func NewBlueprint(guildName string) *BlueprintBuilder {
	if guildName == "" {
		panic("crewcanvas: blueprint guild name must not be empty")
	}
	return &BlueprintBuilder{bp: api.Blueprint{GuildName: guildName}}
}

// Purpose sets the guild purpose.
func (b *BlueprintBuilder) Purpose(purpose string) *BlueprintBuilder {
	b.bp.GuildPurpose = purpose
	return b
}

// Agent appends an agent spec.
func (b *BlueprintBuilder) Agent(name, role, description string, tools ...string) *BlueprintBuilder {
	if name == "" {
		panic("crewcanvas: agent name must not be empty")
	}
	b.bp.Agents = append(b.bp.Agents, api.AgentSpec{
		Name:        name,
		Role:        role,
		Description: description,
		ToolsNeeded: tools,
	})
	return b
}

// Workflow appends a workflow spec.
func (b *BlueprintBuilder) Workflow(name, description string, trigger api.TriggerType) *BlueprintBuilder {
	if name == "" {
		panic("crewcanvas: workflow name must not be empty")
	}
	b.bp.Workflows = append(b.bp.Workflows, api.WorkflowSpec{
		Name:        name,
		Description: description,
		TriggerType: trigger,
	})
	return b
}

// Build validates and returns the blueprint. It panics on an invalid
// blueprint; builder misuse is a programming error.
func (b *BlueprintBuilder) Build() api.Blueprint {
	if err := b.bp.Validate(); err != nil {
		panic(fmt.Sprintf("crewcanvas: invalid blueprint: %v", err))
	}
	return b.bp
}
