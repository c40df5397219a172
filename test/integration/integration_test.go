package integration

import (
	"context"
	"math"
	"testing"

	"github.com/shepline/ration-forecast/internal/config"
	"github.com/shepline/ration-forecast/internal/ration"
	"github.com/shepline/ration-forecast/internal/report"
	"github.com/shepline/ration-forecast/internal/solver"
	"go.uber.org/zap"
)

// TestMainIntegrationBaseline tests that the application produces the same
// results as our baseline captured from the reference ration
func TestMainIntegrationBaseline(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	// Load and process the test configuration exactly as main() does
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	stage, forage, err := conf.Selections()
	if err != nil {
		t.Fatalf("Selections() error = %v", err)
	}

	model, err := ration.Build(stage, forage, conf.PastureContext(), conf.ResolvedFeeds(), conf.ModelPolicy())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	solved, err := model.Solve(context.Background(), logger)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if solved.Status != solver.Optimal {
		t.Fatalf("Status = %v, expected Optimal", solved.Status)
	}

	results := report.Interpret(model, solved)
	validateBaselineValues(t, results)
}

// validateBaselineValues checks specific key values against our baseline
func validateBaselineValues(t *testing.T, results report.Report) {
	if results.Ration == nil || results.Nutrition == nil || results.Pasture == nil || results.Costs == nil {
		t.Fatalf("optimal report is missing sections: %+v", results)
	}

	// The late-gestation requirements on dry forage bind both protein and
	// TDN, which pins the corn/soybean meal split at a single vertex.
	baselineChecks := []struct {
		name        string
		got         float64
		expectedVal float64
		tolerance   float64
	}{
		{"forage intake", results.Ration.ForageIntake, 2.245, 0.01},
		{"total intake", results.Ration.TotalIntake, 4.0, 0.001},
		{"protein lbs", results.Nutrition.ProteinLbs, 0.42, 0.001},
		{"TDN lbs", results.Nutrition.TDNLbs, 2.30, 0.001},
		{"daily cost per sheep", results.Costs.DailyPerSheep, 0.4602, 0.001},
		{"standing forage DM", float64(results.Pasture.StandingForageDM), 1800.0, 0.01},
		{"pasture duration days", float64(results.Pasture.DurationDays), 8.91, 0.01},
	}

	for _, check := range baselineChecks {
		if math.Abs(check.got-check.expectedVal) > check.tolerance {
			t.Errorf("%s = %.4f, expected %.4f within %.4f", check.name, check.got, check.expectedVal, check.tolerance)
		}
	}

	intakes := make(map[string]float64)
	for _, feed := range results.Ration.Supplements {
		intakes[feed.Name] = feed.Intake
	}
	if math.Abs(intakes["Corn"]-1.327) > 0.01 {
		t.Errorf("Corn intake = %.4f, expected 1.327", intakes["Corn"])
	}
	if math.Abs(intakes["Soybean_Meal"]-0.428) > 0.01 {
		t.Errorf("Soybean_Meal intake = %.4f, expected 0.428", intakes["Soybean_Meal"])
	}

	// Neither block clears its price threshold, so the exclusivity policy
	// should leave both out of the plan.
	for _, name := range []string{"Rangeland_Tub", "Range_Pellet"} {
		if intake, ok := intakes[name]; ok {
			t.Errorf("%s intake = %.4f, expected the block to stay out of the ration", name, intake)
		}
	}

	if !results.Nutrition.ProteinMet {
		t.Error("expected the protein requirement to be met")
	}
	if !results.Nutrition.TDNMet {
		t.Error("expected the TDN requirement to be met")
	}
}

// TestIntegrationBuiltinFeedTable runs the full pipeline against the built-in
// supplement table across every stage and forage combination
func TestIntegrationBuiltinFeedTable(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	conf.Feeds = nil
	// The built-in table always has a floor-priced protein source, so the
	// ceiling policy is feasible whenever the ceilings leave room.
	conf.Policy.ExactDMI = false

	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	for _, stageName := range nutritionStages() {
		for _, forageName := range forageStages() {
			conf.Stage = stageName
			conf.ForageStage = forageName

			stage, forage, err := conf.Selections()
			if err != nil {
				t.Fatalf("Selections(%s, %s) error = %v", stageName, forageName, err)
			}

			model, err := ration.Build(stage, forage, conf.PastureContext(), conf.ResolvedFeeds(), conf.ModelPolicy())
			if err != nil {
				t.Fatalf("Build(%s, %s) error = %v", stageName, forageName, err)
			}

			solved, err := model.Solve(context.Background(), logger)
			if err != nil {
				t.Fatalf("Solve(%s, %s) error = %v", stageName, forageName, err)
			}

			results := report.Interpret(model, solved)
			if results.Status == "" {
				t.Errorf("empty status for %s on %s", stageName, forageName)
			}
			if solved.Status != solver.Optimal {
				continue
			}
			if results.Ration.TotalIntake > model.Stage.MaxDMI+1e-4 {
				t.Errorf("%s on %s: total intake %.4f exceeds DMI limit %.4f",
					stageName, forageName, results.Ration.TotalIntake, model.Stage.MaxDMI)
			}
			if !results.Nutrition.ProteinMet || !results.Nutrition.TDNMet {
				t.Errorf("%s on %s: optimal ration misses requirements: %+v",
					stageName, forageName, results.Nutrition)
			}
		}
	}
}

func nutritionStages() []string {
	return []string{
		"Maintenance_Single",
		"Maintenance_Twin",
		"Flushing",
		"Nonlactating",
		"Last_4_Weeks_Gestation",
		"First_6_Weeks_Lactation_Single",
		"First_6_Weeks_Lactation_Twin",
	}
}

func forageStages() []string {
	return []string{
		"Early_vegetative",
		"Late_vegetative",
		"Early_flowering",
		"Late_flowering",
		"Mature",
		"Dry",
		"Dry_leached",
	}
}
