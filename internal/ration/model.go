package ration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shepline/ration-forecast/internal/nutrition"
	"github.com/shepline/ration-forecast/internal/solver"
	"github.com/shepline/ration-forecast/pkg/constants"
)

// ForageVariable is the reserved name of the forage pseudo-feed decision
// variable; no configured feed may use it.
const ForageVariable = "forage"

// indicatorPrefix names the binary in-use indicator for a block feed.
const indicatorPrefix = "use_"

// Policy selects the optional model features.
type Policy struct {
	// ExactDMI pins total intake to the stage's dry-matter limit instead of
	// only bounding it above; required for self-consistent percentage
	// reporting.
	ExactDMI bool
	// BlockExclusive permits at most one block feed in the solved ration.
	BlockExclusive bool
	// MinForageUtilization applies a forage intake floor of half the daily
	// dry-matter limit.
	MinForageUtilization bool
}

// Model is a built, solvable ration problem together with the inputs it was
// built from. Build a fresh Model per solve; solved results are read-only.
type Model struct {
	Stage   nutrition.Stage
	Forage  nutrition.Forage
	Pasture Pasture
	Feeds   []nutrition.Feed // derived bounds already applied
	Policy  Policy
	Bounds  ForageBounds
	Problem solver.Problem
}

// SolvedRation maps the solved decision variables back to feed intakes.
type SolvedRation struct {
	Status       solver.Status
	ForageIntake float64            // lbs dry matter per head per day
	Intakes      map[string]float64 // supplement name -> lbs as fed per head per day
	Indicators   map[string]float64 // block feed name -> in-use indicator value
	Cost         float64            // $ per head per day
}

// Build constructs the ration model: one continuous intake variable per feed
// plus the forage pseudo-feed, optional binary block indicators, and the
// protein, TDN, dry-matter-content, and total-intake constraints. Forage
// carries no cost in the objective since standing pasture is already owned.
func Build(stage nutrition.Stage, forage nutrition.Forage, pasture Pasture, feeds []nutrition.Feed, policy Policy) (*Model, error) {
	resolved := ApplyDerivedBounds(stage, feeds)
	for _, feed := range resolved {
		if feed.Name == ForageVariable {
			return nil, fmt.Errorf("feed name %q is reserved for the forage variable", ForageVariable)
		}
		if feed.MinIntake > feed.MaxIntake {
			return nil, fmt.Errorf("feed %s has min intake %.3f above max intake %.3f", feed.Name, feed.MinIntake, feed.MaxIntake)
		}
	}

	bounds := ForageIntakeBounds(stage, forage, pasture, policy.MinForageUtilization)

	model := &Model{
		Stage:   stage,
		Forage:  forage,
		Pasture: pasture,
		Feeds:   resolved,
		Policy:  policy,
		Bounds:  bounds,
	}

	prob := &model.Problem
	prob.Variables = append(prob.Variables, solver.Variable{
		Name:  ForageVariable,
		Lower: bounds.Lower,
		Upper: bounds.Upper,
	})
	for _, feed := range resolved {
		prob.Variables = append(prob.Variables, solver.Variable{
			Name:  feed.Name,
			Cost:  feed.Cost,
			Lower: feed.MinIntake,
			Upper: feed.MaxIntake,
		})
	}

	// Block exclusivity is an optional layer: when disabled, or when the
	// table has no block feeds, the model is a pure LP.
	if policy.BlockExclusive {
		cardinality := map[string]float64{}
		for _, feed := range resolved {
			if !feed.Block {
				continue
			}
			indicator := indicatorPrefix + feed.Name
			prob.Variables = append(prob.Variables, solver.Variable{
				Name:   indicator,
				Binary: true,
				Upper:  1,
			})
			prob.Constraints = append(prob.Constraints, solver.Constraint{
				Name:         "link_" + feed.Name,
				Coefficients: map[string]float64{feed.Name: 1, indicator: -feed.MaxIntake},
				Lower:        solver.NegInf(),
				Upper:        0,
			})
			cardinality[indicator] = 1
		}
		if len(cardinality) > 0 {
			prob.Constraints = append(prob.Constraints, solver.Constraint{
				Name:         "one_block_only",
				Coefficients: cardinality,
				Lower:        solver.NegInf(),
				Upper:        1,
			})
		}
	}

	protein := map[string]float64{ForageVariable: forage.ProteinPct / constants.PercentageMultiplier}
	tdn := map[string]float64{ForageVariable: forage.TDNPct / constants.PercentageMultiplier}
	dryMatter := map[string]float64{ForageVariable: forage.DMPct / constants.PercentageMultiplier}
	totalIntake := map[string]float64{ForageVariable: 1}
	for _, feed := range resolved {
		protein[feed.Name] = feed.ProteinPct / constants.PercentageMultiplier
		tdn[feed.Name] = feed.TDNPct / constants.PercentageMultiplier
		dryMatter[feed.Name] = feed.DMPct / constants.PercentageMultiplier
		totalIntake[feed.Name] = 1
	}

	proteinReqLbs := stage.MaxDMI * stage.ProteinPct / constants.PercentageMultiplier
	tdnReqLbs := stage.MaxDMI * stage.TDNPct / constants.PercentageMultiplier

	prob.Constraints = append(prob.Constraints,
		solver.Constraint{
			Name:         "protein_requirement",
			Coefficients: protein,
			Lower:        proteinReqLbs,
			Upper:        solver.Inf(),
		},
		solver.Constraint{
			Name:         "tdn_requirement",
			Coefficients: tdn,
			Lower:        tdnReqLbs,
			Upper:        solver.Inf(),
		},
		solver.Constraint{
			Name:         "dry_matter_limit",
			Coefficients: dryMatter,
			Lower:        solver.NegInf(),
			Upper:        stage.MaxDMI,
		},
	)

	total := solver.Constraint{
		Name:         "total_intake",
		Coefficients: totalIntake,
		Upper:        stage.MaxDMI,
	}
	if policy.ExactDMI {
		total.Lower = stage.MaxDMI
	} else {
		total.Lower = solver.NegInf()
	}
	prob.Constraints = append(prob.Constraints, total)

	return model, nil
}

// Solve runs the model through the solver exactly once and maps the solved
// variable values back onto feed names. Intake and cost values are populated
// only on an Optimal status.
func (m *Model) Solve(ctx context.Context, logger *zap.Logger) (*SolvedRation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result, err := solver.Solve(ctx, logger, m.Problem)
	if err != nil {
		return nil, err
	}

	solved := &SolvedRation{Status: result.Status}
	if result.Status != solver.Optimal {
		return solved, nil
	}

	solved.Cost = result.Objective
	solved.ForageIntake = result.Values[ForageVariable]
	solved.Intakes = make(map[string]float64, len(m.Feeds))
	solved.Indicators = make(map[string]float64)
	for _, feed := range m.Feeds {
		solved.Intakes[feed.Name] = result.Values[feed.Name]
		if indicator, ok := result.Values[indicatorPrefix+feed.Name]; ok {
			solved.Indicators[feed.Name] = indicator
		}
	}

	logger.Debug(fmt.Sprintf("solved ration for %s at $%.2f per head per day", m.Stage.Name, solved.Cost),
		zap.String("op", "ration.Solve"),
	)

	return solved, nil
}
