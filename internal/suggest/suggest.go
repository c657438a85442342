// Package suggest maps a selected node's kind to ranked next-node
// suggestions. The rule table is fixed and the output order is stable, so
// the same kind always yields the same list.
package suggest

import "github.com/petrijr/crewcanvas/pkg/api"

// MaxSuggestions caps the list returned for any kind.
const MaxSuggestions = 3

var rules = map[api.NodeKind][]api.Suggestion{
	api.KindTrigger: {
		{Kind: api.KindAgent, Reason: "process the trigger event"},
		{Kind: api.KindCondition, Reason: "filter trigger events"},
	},
	api.KindAgent: {
		{Kind: api.KindAction, Reason: "execute agent output"},
		{Kind: api.KindCondition, Reason: "branch on agent result"},
	},
	api.KindCondition: {
		{Kind: api.KindAction, Reason: "true-branch action"},
		{Kind: api.KindDelay, Reason: "wait before proceeding"},
	},
	// Action and delay nodes are terminal; nothing to suggest.
}

// Suggest returns the ranked suggestions for a node kind. Kinds with no
// rule (action, delay, or anything unknown) yield an empty list.
func Suggest(kind api.NodeKind) []api.Suggestion {
	ranked := rules[kind]
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}
	return append([]api.Suggestion(nil), ranked...)
}
