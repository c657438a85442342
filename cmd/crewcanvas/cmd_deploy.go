package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/petrijr/crewcanvas/internal/canvas"
	"github.com/petrijr/crewcanvas/internal/simulate"
	"github.com/petrijr/crewcanvas/pkg/api"
)

var deployBlueprintPath string

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Lay out a blueprint and run the deployment simulation to completion",
	RunE:  runDeploy,
}

func init() {
	deployCmd.Flags().StringVarP(&deployBlueprintPath, "file", "f", "", "blueprint JSON file (required)")
	_ = deployCmd.MarkFlagRequired("file")
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	bp, err := readBlueprint(deployBlueprintPath)
	if err != nil {
		return err
	}

	logger := slog.Default()
	ctrl := canvas.New(canvas.Config{
		Logger: logger,
		Simulator: simulate.Config{
			Observer: api.NewLoggingDeployObserver(logger),
		},
	})
	if err := ctrl.LoadBlueprint(bp); err != nil {
		return err
	}
	if err := ctrl.Execute(cmd.Context()); err != nil {
		return err
	}

	select {
	case <-ctrl.DeployDone():
	case <-cmd.Context().Done():
		ctrl.StopDeploy()
		return cmd.Context().Err()
	}

	st := ctrl.DeployState()
	metrics := ctrl.DeployMetrics()
	if st.Status != api.StatusSuccess {
		return fmt.Errorf("deployment ended with status %s", st.Status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deployed %q: %d/%d nodes live\n",
		bp.GuildName, metrics.CompletedNodes, metrics.TotalNodes)
	return nil
}
