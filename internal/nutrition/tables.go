// Package nutrition defines the reference data for sheep nutritional
// requirements, forage quality by maturity, and supplemental feeds, and
// includes the lookup functions used at configuration-load time.
package nutrition

import (
	"fmt"
	"sort"
)

// Stage holds the daily nutritional requirements for one production stage
// of a 154-lb ewe.
type Stage struct {
	Name       string
	Weeks      int     // duration of the stage
	MaxDMI     float64 // lbs dry matter per day
	TDNLbs     float64 // lbs TDN per day
	ProteinLbs float64 // lbs protein per day
	TDNPct     float64 // required TDN as % of dry matter
	ProteinPct float64 // required protein as % of dry matter
}

// Forage holds the quality characteristics of standing forage at one
// maturity class.
type Forage struct {
	Name       string
	ProteinPct float64
	FiberPct   float64
	TDNPct     float64
	DMPct      float64 // dry matter as % of as-fed weight
}

// stages is the requirement table keyed by stage name.
var stages = map[string]Stage{
	"Maintenance_Single":             {Name: "Maintenance_Single", Weeks: 16, MaxDMI: 2.6, TDNLbs: 1.5, ProteinLbs: 0.25, TDNPct: 57.69, ProteinPct: 9.62},
	"Maintenance_Twin":               {Name: "Maintenance_Twin", Weeks: 14, MaxDMI: 2.6, TDNLbs: 1.5, ProteinLbs: 0.25, TDNPct: 57.69, ProteinPct: 9.62},
	"Flushing":                       {Name: "Flushing", Weeks: 5, MaxDMI: 4.0, TDNLbs: 2.3, ProteinLbs: 0.36, TDNPct: 57.50, ProteinPct: 9.00},
	"Nonlactating":                   {Name: "Nonlactating", Weeks: 15, MaxDMI: 3.1, TDNLbs: 1.7, ProteinLbs: 0.29, TDNPct: 54.84, ProteinPct: 9.35},
	"Last_4_Weeks_Gestation":         {Name: "Last_4_Weeks_Gestation", Weeks: 4, MaxDMI: 4.0, TDNLbs: 2.3, ProteinLbs: 0.42, TDNPct: 57.50, ProteinPct: 10.50},
	"First_6_Weeks_Lactation_Single": {Name: "First_6_Weeks_Lactation_Single", Weeks: 8, MaxDMI: 5.5, TDNLbs: 3.6, ProteinLbs: 0.73, TDNPct: 65.45, ProteinPct: 13.27},
	"First_6_Weeks_Lactation_Twin":   {Name: "First_6_Weeks_Lactation_Twin", Weeks: 8, MaxDMI: 6.2, TDNLbs: 4.0, ProteinLbs: 0.92, TDNPct: 64.52, ProteinPct: 14.84},
}

// forages is the forage quality table keyed by maturity class.
var forages = map[string]Forage{
	"Early_vegetative": {Name: "Early_vegetative", ProteinPct: 18, FiberPct: 24, TDNPct: 60, DMPct: 25},
	"Late_vegetative":  {Name: "Late_vegetative", ProteinPct: 15, FiberPct: 25, TDNPct: 58, DMPct: 30},
	"Early_flowering":  {Name: "Early_flowering", ProteinPct: 15, FiberPct: 26, TDNPct: 56, DMPct: 35},
	"Late_flowering":   {Name: "Late_flowering", ProteinPct: 10, FiberPct: 29, TDNPct: 50, DMPct: 45},
	"Mature":           {Name: "Mature", ProteinPct: 6, FiberPct: 33, TDNPct: 40, DMPct: 75},
	"Dry":              {Name: "Dry", ProteinPct: 5, FiberPct: 34, TDNPct: 34, DMPct: 90},
	"Dry_leached":      {Name: "Dry_leached", ProteinPct: 3, FiberPct: 35, TDNPct: 30, DMPct: 92},
}

// LookupStage returns the nutritional requirements for the named stage.
func LookupStage(name string) (Stage, error) {
	stage, ok := stages[name]
	if !ok {
		return Stage{}, fmt.Errorf("unknown nutrition stage %q, expected one of %v", name, StageNames())
	}
	return stage, nil
}

// LookupForage returns the forage characteristics for the named maturity class.
func LookupForage(name string) (Forage, error) {
	forage, ok := forages[name]
	if !ok {
		return Forage{}, fmt.Errorf("unknown forage stage %q, expected one of %v", name, ForageNames())
	}
	return forage, nil
}

// StageNames returns the known nutrition stage names in sorted order.
func StageNames() []string {
	names := make([]string, 0, len(stages))
	for name := range stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForageNames returns the known forage maturity class names in sorted order.
func ForageNames() []string {
	names := make([]string, 0, len(forages))
	for name := range forages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
