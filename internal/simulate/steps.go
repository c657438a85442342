package simulate

import "github.com/petrijr/crewcanvas/pkg/api"

// DefaultSteps is the staged deployment sequence. Weights sum to 100;
// progress is clamped at 95 until the final step lands.
func DefaultSteps() []api.DeployStep {
	return []api.DeployStep{
		{Name: "Validating workflow graph", Weight: 5},
		{Name: "Provisioning agents", Weight: 10},
		{Name: "Loading agent models", Weight: 20},
		{Name: "Binding agent tools", Weight: 15},
		{Name: "Compiling workflows", Weight: 20},
		{Name: "Wiring triggers", Weight: 10},
		{Name: "Running dry-run checks", Weight: 10},
		{Name: "Registering endpoints", Weight: 5},
		{Name: "Going live", Weight: 5},
	}
}
