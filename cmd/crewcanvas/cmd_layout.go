package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petrijr/crewcanvas"
	"github.com/petrijr/crewcanvas/pkg/api"
)

var layoutBlueprintPath string

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Generate the canvas layout for a blueprint JSON file",
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutBlueprintPath, "file", "f", "", "blueprint JSON file (required)")
	_ = layoutCmd.MarkFlagRequired("file")
}

func runLayout(cmd *cobra.Command, _ []string) error {
	bp, err := readBlueprint(layoutBlueprintPath)
	if err != nil {
		return err
	}
	nodes, edges := crewcanvas.GenerateLayout(bp)

	out, err := json.MarshalIndent(map[string]any{
		"nodes": nodes,
		"edges": edges,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func readBlueprint(path string) (api.Blueprint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return api.Blueprint{}, fmt.Errorf("read blueprint: %w", err)
	}
	var bp api.Blueprint
	if err := json.Unmarshal(raw, &bp); err != nil {
		return api.Blueprint{}, fmt.Errorf("parse blueprint: %w", err)
	}
	if err := bp.Validate(); err != nil {
		return api.Blueprint{}, err
	}
	return bp, nil
}
