package nutrition

// Feed describes one supplemental feed available for the ration. Costs are
// per as-fed pound; nutrient percentages are relative to dry matter.
type Feed struct {
	Name       string
	Cost       float64 // $ per lb as fed
	ProteinPct float64
	TDNPct     float64
	DMPct      float64
	MinIntake  float64 // lbs per head per day
	MaxIntake  float64 // lbs per head per day
	Block      bool    // self-fed block or tub, subject to exclusivity
	DerivedMax bool    // max intake derived from the one-third-protein rule
}

// DefaultFeeds returns the built-in supplement table. Prices are the
// as-purchased package price divided by the package weight in pounds.
func DefaultFeeds() []Feed {
	return []Feed{
		// Feed mill supplements
		{Name: "Corn", Cost: 0.25, ProteinPct: 9, TDNPct: 90, DMPct: 88, MinIntake: 0, MaxIntake: 3.0},
		{Name: "Soybean_Meal", Cost: 0.30, ProteinPct: 44, TDNPct: 80, DMPct: 89, MinIntake: 0, MaxIntake: 2.0},
		{Name: "Wheat_Middlings", Cost: 0.13, ProteinPct: 16, TDNPct: 77, DMPct: 89, MinIntake: 0, MaxIntake: 2.5},
		{Name: "Molasses", Cost: 0.20, ProteinPct: 4, TDNPct: 75, DMPct: 75, MinIntake: 0.05, MaxIntake: 0.5},
		{Name: "Limestone", Cost: 0.05, ProteinPct: 0, TDNPct: 0, DMPct: 99, MinIntake: 0, MaxIntake: 0.1},

		// Feed store supplements
		{Name: "Purina_Accuration", Cost: 129.99 / 200, ProteinPct: 25, TDNPct: 85, DMPct: 90, MaxIntake: 1.0, Block: true},
		{Name: "Cascade_Pellets", Cost: 11.49 / 50, ProteinPct: 14.5, TDNPct: 68, DMPct: 90, MaxIntake: 2.0},
		{Name: "Purina_Stocker_Grower", Cost: 17.99 / 50, ProteinPct: 14, TDNPct: 68, DMPct: 90, MaxIntake: 2.0},
		{Name: "Accuration_Block_Concord", Cost: 129.99 / 200, ProteinPct: 25, TDNPct: 85, DMPct: 96, MaxIntake: 1.0, Block: true},
		{Name: "Rangeland_Tub_Wilco", Cost: 104.99 / 125, ProteinPct: 23, TDNPct: 85, DMPct: 96, MaxIntake: 1.0, Block: true},
		{Name: "Accuration_Block_Wilco", Cost: 149.99 / 200, ProteinPct: 25, TDNPct: 85, DMPct: 96, MaxIntake: 1.0, Block: true},
		{Name: "Rangeland_Allstock_Tub", Cost: 99.99 / 125, ProteinPct: 15, TDNPct: 85, DMPct: 96, MaxIntake: 1.0, Block: true},

		// Range pellet whose ceiling comes from the one-third-protein rule
		{Name: "Purina_Accuration_Range_Pellet", Cost: 14.50 / 50, ProteinPct: 33, TDNPct: 85, DMPct: 90, Block: true, DerivedMax: true},
	}
}
