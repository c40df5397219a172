// Package report interprets a solved ration into herd-scale and
// pasture-duration quantities. Everything here is a pure function of the
// solved values; nothing re-solves or talks to the solver.
package report

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/shepline/ration-forecast/internal/nutrition"
	"github.com/shepline/ration-forecast/internal/ration"
	"github.com/shepline/ration-forecast/internal/solver"
	"github.com/shepline/ration-forecast/pkg/constants"
	"github.com/shepline/ration-forecast/pkg/mathutil"
)

// Amount is a quantity that may be unlimited (+Inf), e.g. the pasture
// duration when the herd consumes no forage. Unlimited values marshal as
// null since JSON has no representation for infinity.
type Amount float64

// MarshalJSON emits null for non-finite values.
func (a Amount) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(a), 0) || math.IsNaN(float64(a)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(a))
}

// IsUnlimited reports whether the amount is positive infinity.
func (a Amount) IsUnlimited() bool {
	return math.IsInf(float64(a), 1)
}

// Report is the structured result record consumed by the presentation layer.
type Report struct {
	Stage       string `json:"stage"`
	ForageStage string `json:"forageStage"`
	Status      string `json:"status"`

	Ration    *Ration    `json:"ration,omitempty"`
	Nutrition *Nutrition `json:"nutrition,omitempty"`
	Pasture   *Pasture   `json:"pasture,omitempty"`
	Supply    *Supply    `json:"supply,omitempty"`
	Costs     *Costs     `json:"costs,omitempty"`
}

// Ration holds the per-sheep daily feed plan.
type Ration struct {
	ForageIntake    float64      `json:"forageIntake"`    // lbs/day
	Supplements     []FeedIntake `json:"supplements"`     // only feeds actually used
	TotalSupplement float64      `json:"totalSupplement"` // lbs/day
	TotalIntake     float64      `json:"totalIntake"`     // lbs/day
	DMIRequirement  float64      `json:"dmiRequirement"`  // lbs/day
}

// FeedIntake is one feed's solved daily intake per sheep.
type FeedIntake struct {
	Name   string  `json:"name"`
	Intake float64 `json:"intake"` // lbs/day
}

// Nutrition verifies the achieved nutrient levels against the requirement.
type Nutrition struct {
	ProteinLbs         float64 `json:"proteinLbs"`
	ProteinPct         float64 `json:"proteinPct"`
	RequiredProteinLbs float64 `json:"requiredProteinLbs"`
	RequiredProteinPct float64 `json:"requiredProteinPct"`
	TDNLbs             float64 `json:"tdnLbs"`
	TDNPct             float64 `json:"tdnPct"`
	RequiredTDNLbs     float64 `json:"requiredTdnLbs"`
	RequiredTDNPct     float64 `json:"requiredTdnPct"`
	ProteinMet         bool    `json:"proteinMet"`
	TDNMet             bool    `json:"tdnMet"`
}

// Pasture projects forage consumption to the whole stocking and derives how
// long the standing forage lasts.
type Pasture struct {
	StockingRate     float64 `json:"stockingRate"`     // sheep per acre
	StandingForageDM float64 `json:"standingForageDm"` // lbs DM per acre
	DailyHerdForage  float64 `json:"dailyHerdForage"`  // lbs DM/day, all sheep
	DurationDays     Amount  `json:"durationDays"`     // +Inf when no forage is consumed
}

// Supply plans the supplement purchases needed over the pasture duration.
type Supply struct {
	DailyPerSheep float64      `json:"dailyPerSheep"` // lbs/day
	DailyHerd     float64      `json:"dailyHerd"`     // lbs/day, all sheep
	TotalNeeded   Amount       `json:"totalNeeded"`   // lbs over the pasture duration
	Feeds         []FeedSupply `json:"feeds"`
}

// FeedSupply is the herd-scale requirement for one feed.
type FeedSupply struct {
	Name      string  `json:"name"`
	DailyHerd float64 `json:"dailyHerd"` // lbs/day, all sheep
	Total     Amount  `json:"total"`     // lbs over the pasture duration
	TotalCost Amount  `json:"totalCost"` // $ over the pasture duration
}

// Costs breaks the objective value out to herd and grazing-period scale.
type Costs struct {
	DailyPerSheep    float64 `json:"dailyPerSheep"`    // $/sheep/day
	DailyHerd        float64 `json:"dailyHerd"`        // $/day, all sheep
	TotalGrazingCost Amount  `json:"totalGrazingCost"` // $ over the pasture duration
}

// Interpret converts a solved ration into the structured report. For any
// status other than Optimal only the status and selections are populated.
func Interpret(model *ration.Model, solved *ration.SolvedRation) Report {
	rep := Report{
		Stage:       model.Stage.Name,
		ForageStage: model.Forage.Name,
		Status:      solved.Status.String(),
	}
	if solved.Status != solver.Optimal {
		return rep
	}

	feedsByName := make(map[string]nutrition.Feed, len(model.Feeds))
	for _, feed := range model.Feeds {
		feedsByName[feed.Name] = feed
	}

	// Per-sheep totals. Feeds below the display threshold are omitted from
	// the supplement list but still counted in the totals.
	totalSupplement := 0.0
	var supplements []FeedIntake
	for name, intake := range solved.Intakes {
		totalSupplement += intake
		if intake > constants.IntakeDisplayThreshold {
			supplements = append(supplements, FeedIntake{Name: name, Intake: intake})
		}
	}
	sort.Slice(supplements, func(i, j int) bool { return supplements[i].Name < supplements[j].Name })

	rep.Ration = &Ration{
		ForageIntake:    solved.ForageIntake,
		Supplements:     supplements,
		TotalSupplement: totalSupplement,
		TotalIntake:     solved.ForageIntake + totalSupplement,
		DMIRequirement:  model.Stage.MaxDMI,
	}

	rep.Nutrition = verifyNutrition(model, solved, rep.Ration.TotalIntake)
	rep.Pasture = projectPasture(model, solved)
	rep.Supply = planSupply(model, solved, rep.Pasture, feedsByName, totalSupplement)
	rep.Costs = &Costs{
		DailyPerSheep:    solved.Cost,
		DailyHerd:        solved.Cost * model.Pasture.StockingRate,
		TotalGrazingCost: scaleOverDuration(solved.Cost*model.Pasture.StockingRate, rep.Pasture.DurationDays),
	}

	return rep
}

// verifyNutrition recomputes the achieved protein and TDN from the solved
// intakes as a post-hoc sanity check against the requirements.
func verifyNutrition(model *ration.Model, solved *ration.SolvedRation, totalIntake float64) *Nutrition {
	proteinLbs := mathutil.ApplyPercentage(solved.ForageIntake, model.Forage.ProteinPct)
	tdnLbs := mathutil.ApplyPercentage(solved.ForageIntake, model.Forage.TDNPct)
	for _, feed := range model.Feeds {
		intake := solved.Intakes[feed.Name]
		proteinLbs += mathutil.ApplyPercentage(intake, feed.ProteinPct)
		tdnLbs += mathutil.ApplyPercentage(intake, feed.TDNPct)
	}

	requiredProteinLbs := mathutil.ApplyPercentage(model.Stage.MaxDMI, model.Stage.ProteinPct)
	requiredTDNLbs := mathutil.ApplyPercentage(model.Stage.MaxDMI, model.Stage.TDNPct)

	return &Nutrition{
		ProteinLbs:         proteinLbs,
		ProteinPct:         mathutil.CalculatePercentage(proteinLbs, totalIntake),
		RequiredProteinLbs: requiredProteinLbs,
		RequiredProteinPct: model.Stage.ProteinPct,
		TDNLbs:             tdnLbs,
		TDNPct:             mathutil.CalculatePercentage(tdnLbs, totalIntake),
		RequiredTDNLbs:     requiredTDNLbs,
		RequiredTDNPct:     model.Stage.TDNPct,
		ProteinMet:         mathutil.AtLeast(proteinLbs, requiredProteinLbs, constants.SolverTolerance),
		TDNMet:             mathutil.AtLeast(tdnLbs, requiredTDNLbs, constants.SolverTolerance),
	}
}

// projectPasture scales forage consumption to the stocking rate and derives
// the pasture duration. Zero herd consumption yields an unlimited duration
// rather than a division error.
func projectPasture(model *ration.Model, solved *ration.SolvedRation) *Pasture {
	standingDM := mathutil.ApplyPercentage(model.Pasture.AvailableForagePerAcre, model.Forage.DMPct)
	dailyHerdForage := solved.ForageIntake * model.Pasture.StockingRate

	pasture := &Pasture{
		StockingRate:     model.Pasture.StockingRate,
		StandingForageDM: standingDM,
		DailyHerdForage:  dailyHerdForage,
	}
	if mathutil.IsPositive(dailyHerdForage) {
		pasture.DurationDays = Amount(standingDM / dailyHerdForage)
	} else {
		pasture.DurationDays = Amount(math.Inf(1))
	}
	return pasture
}

// planSupply computes how much of each supplement must be purchased for the
// whole herd over the pasture duration.
func planSupply(model *ration.Model, solved *ration.SolvedRation, pasture *Pasture, feedsByName map[string]nutrition.Feed, totalSupplement float64) *Supply {
	supply := &Supply{
		DailyPerSheep: totalSupplement,
		DailyHerd:     totalSupplement * model.Pasture.StockingRate,
	}
	supply.TotalNeeded = scaleOverDuration(supply.DailyHerd, pasture.DurationDays)

	names := make([]string, 0, len(solved.Intakes))
	for name := range solved.Intakes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		intake := solved.Intakes[name]
		if intake <= constants.IntakeDisplayThreshold {
			continue
		}
		dailyHerd := intake * model.Pasture.StockingRate
		total := scaleOverDuration(dailyHerd, pasture.DurationDays)
		feedSupply := FeedSupply{
			Name:      name,
			DailyHerd: dailyHerd,
			Total:     total,
			TotalCost: scaleOverDuration(feedsByName[name].Cost*dailyHerd, pasture.DurationDays),
		}
		supply.Feeds = append(supply.Feeds, feedSupply)
	}
	return supply
}

// scaleOverDuration multiplies a daily quantity by a possibly-unlimited day
// count; a zero daily quantity stays zero rather than producing NaN.
func scaleOverDuration(daily float64, days Amount) Amount {
	if daily == 0 {
		return 0
	}
	return Amount(daily * float64(days))
}
