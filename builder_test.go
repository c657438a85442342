package crewcanvas

import "testing"

func TestBlueprintBuilder(t *testing.T) {
	bp := NewBlueprint("Support Guild").
		Purpose("triage inbound tickets").
		Agent("Sorter", "Support Triage", "classifies tickets", "zendesk").
		Agent("Resolver", "Customer Support", "answers tickets").
		Workflow("Ticket intake", "new ticket arrives", TriggerWebhook).
		Build()

	if bp.GuildName != "Support Guild" {
		t.Fatalf("unexpected guild name %q", bp.GuildName)
	}
	if bp.GuildPurpose != "triage inbound tickets" {
		t.Fatalf("unexpected purpose %q", bp.GuildPurpose)
	}
	if len(bp.Agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(bp.Agents))
	}
	if got := bp.Agents[0].ToolsNeeded; len(got) != 1 || got[0] != "zendesk" {
		t.Fatalf("unexpected tools %v", got)
	}
	if len(bp.Workflows) != 1 || bp.Workflows[0].TriggerType != TriggerWebhook {
		t.Fatalf("unexpected workflows %+v", bp.Workflows)
	}
}

func TestBlueprintBuilderPanics(t *testing.T) {
	expectPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}

	expectPanic("empty guild name", func() { NewBlueprint("") })
	expectPanic("empty agent name", func() {
		NewBlueprint("Guild").Agent("", "role", "")
	})
	expectPanic("empty workflow name", func() {
		NewBlueprint("Guild").Workflow("", "", TriggerManual)
	})
	expectPanic("invalid trigger type", func() {
		NewBlueprint("Guild").Workflow("W", "", TriggerType("teleport")).Build()
	})
}
