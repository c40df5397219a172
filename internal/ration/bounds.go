// Package ration builds the minimum-cost ration optimization model from the
// selected nutrition stage, forage quality, pasture context, and feed table,
// and runs it through the solver.
package ration

import (
	"github.com/shepline/ration-forecast/internal/nutrition"
	"github.com/shepline/ration-forecast/pkg/constants"
	"github.com/shepline/ration-forecast/pkg/mathutil"
)

// Pasture describes the standing forage available to the herd.
type Pasture struct {
	AvailableForagePerAcre float64 // lbs as-fed forage per acre
	StockingRate           float64 // sheep per acre
}

// ForageBounds holds the feasible range for daily forage intake per head.
type ForageBounds struct {
	Lower float64
	Upper float64
}

// ForageIntakeBounds caps forage intake by both the animal's appetite and the
// per-head share of standing pasture dry matter. An exhausted pasture or an
// extreme stocking rate degenerates the bounds to [0, 0] so the model stays
// constructible; infeasibility is left for the solver to report. When
// minUtilization is set a forage floor of half the daily dry-matter limit is
// applied, clamped to the upper bound so scarce pasture degrades gracefully.
func ForageIntakeBounds(stage nutrition.Stage, forage nutrition.Forage, pasture Pasture, minUtilization bool) ForageBounds {
	if pasture.StockingRate <= 0 {
		return ForageBounds{}
	}

	standingDMPerHead := mathutil.ApplyPercentage(pasture.AvailableForagePerAcre, forage.DMPct) / pasture.StockingRate
	upper := min(stage.MaxDMI, standingDMPerHead)
	if upper <= 0 {
		return ForageBounds{}
	}

	bounds := ForageBounds{Upper: upper}
	if minUtilization {
		bounds.Lower = min(stage.MaxDMI*constants.MinForageUtilizationFraction, upper)
	}
	return bounds
}

// DerivedMaxIntake computes the intake ceiling for a feed governed by the
// one-third-protein rule: at most a third of the stage's required protein may
// come from this supplement, converted to as-fed pounds through the feed's
// protein content. A feed with no protein cannot contribute and gets a zero
// ceiling.
func DerivedMaxIntake(stage nutrition.Stage, feed nutrition.Feed) float64 {
	if feed.ProteinPct <= 0 {
		return 0
	}
	requiredProteinLbs := mathutil.ApplyPercentage(stage.MaxDMI, stage.ProteinPct)
	allowedProteinLbs := requiredProteinLbs * constants.SupplementProteinFraction
	return allowedProteinLbs / (feed.ProteinPct / constants.PercentageMultiplier)
}

// ApplyDerivedBounds returns a copy of the feed table with every
// derived-bound feed's max intake replaced by the one-third-protein ceiling
// for the given stage.
func ApplyDerivedBounds(stage nutrition.Stage, feeds []nutrition.Feed) []nutrition.Feed {
	resolved := make([]nutrition.Feed, len(feeds))
	copy(resolved, feeds)
	for i := range resolved {
		if resolved[i].DerivedMax {
			resolved[i].MaxIntake = DerivedMaxIntake(stage, resolved[i])
		}
	}
	return resolved
}
