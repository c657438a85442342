package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petrijr/crewcanvas"
	"github.com/petrijr/crewcanvas/pkg/api"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <kind>",
	Short: "Print the next-node suggestions for a node kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	kind := api.NodeKind(args[0])
	if !api.ValidKind(kind) {
		return fmt.Errorf("unknown node kind %q (trigger, agent, action, condition, delay)", args[0])
	}
	suggestions := crewcanvas.Suggest(kind)
	if len(suggestions) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no suggestions for %s nodes\n", kind)
		return nil
	}
	for i, s := range suggestions {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s: %s\n", i+1, s.Kind, s.Reason)
	}
	return nil
}
