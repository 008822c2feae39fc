package engine

import (
	"fmt"

	"github.com/piwi3910/StowPlan/internal/model"
)

// ComparisonScenario defines a named truck/settings combination to compare.
type ComparisonScenario struct {
	Name     string
	Truck    model.Truck
	Settings model.StowSettings
}

// ComparisonResult holds the planning outcome and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.PlanResult
	Planned        bool
	Err            error
	StepsUsed      int
	UtilizationPct float64
	MaxStackHeight int
}

// CompareScenarios runs the same greedy planner for each scenario and
// returns the results in scenario order. This enables side-by-side
// comparison of trucks and support settings; every run is the standard
// algorithm, so a comparison never changes what a plan for the chosen
// scenario would look like.
func CompareScenarios(scenarios []ComparisonScenario, crates []model.Crate) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		planner := New(scenario.Settings)
		plan, err := planner.Plan(scenario.Truck, crates)

		cr := ComparisonResult{
			Scenario: scenario,
			Result:   plan,
			Planned:  err == nil,
			Err:      err,
		}
		if err == nil {
			cr.StepsUsed = plan.Steps()
			cr.UtilizationPct = plan.Utilization()
			cr.MaxStackHeight = model.CalculateResidual(scenario.Truck, plan.Placements).MaxStackHeight
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates what-if scenarios from the current truck
// and settings, varying the support requirement.
func BuildDefaultScenarios(truck model.Truck, base model.StowSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Truck: truck, Settings: base},
	}

	if base.SupportRatio > 0.5 {
		relaxed := base
		relaxed.SupportRatio = 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Relaxed Support (50%)",
			Truck:    truck,
			Settings: relaxed,
		})
	}

	if base.SupportRatio < 1.0 {
		full := base
		full.SupportRatio = 1.0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Full Support (100%)",
			Truck:    truck,
			Settings: full,
		})
	}

	return scenarios
}

// BuildTruckScenarios generates one scenario per truck preset, keeping the
// base settings fixed. Useful for picking the smallest vehicle that still
// takes the whole shipment.
func BuildTruckScenarios(presets []model.TruckPreset, base model.StowSettings) []ComparisonScenario {
	scenarios := make([]ComparisonScenario, 0, len(presets))
	for _, preset := range presets {
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%s (%dx%dx%d)", preset.Name, preset.Width, preset.Height, preset.Length),
			Truck:    preset.ToTruck(),
			Settings: base,
		})
	}
	return scenarios
}
