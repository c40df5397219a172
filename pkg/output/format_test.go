package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shepline/ration-forecast/internal/report"
)

func optimalReport() report.Report {
	return report.Report{
		Stage:       "Last_4_Weeks_Gestation",
		ForageStage: "Dry",
		Status:      "Optimal",
		Ration: &report.Ration{
			ForageIntake: 1.0,
			Supplements: []report.FeedIntake{
				{Name: "Corn", Intake: 2.0},
				{Name: "Soybean_Meal", Intake: 1.0},
			},
			TotalSupplement: 3.0,
			TotalIntake:     4.0,
			DMIRequirement:  4.0,
		},
		Nutrition: &report.Nutrition{
			ProteinLbs: 0.67, ProteinPct: 16.75,
			RequiredProteinLbs: 0.42, RequiredProteinPct: 10.50,
			TDNLbs: 2.94, TDNPct: 73.5,
			RequiredTDNLbs: 2.30, RequiredTDNPct: 57.50,
			ProteinMet: true, TDNMet: true,
		},
		Pasture: &report.Pasture{
			StockingRate:     90,
			StandingForageDM: 1800,
			DailyHerdForage:  90,
			DurationDays:     20,
		},
		Supply: &report.Supply{
			DailyPerSheep: 3.0,
			DailyHerd:     270,
			TotalNeeded:   5400,
			Feeds: []report.FeedSupply{
				{Name: "Corn", DailyHerd: 180, Total: 3600, TotalCost: 900},
				{Name: "Soybean_Meal", DailyHerd: 90, Total: 1800, TotalCost: 540},
			},
		},
		Costs: &report.Costs{
			DailyPerSheep:    0.80,
			DailyHerd:        72,
			TotalGrazingCost: 1440,
		},
	}
}

func TestFprintPretty(t *testing.T) {
	var buf bytes.Buffer
	FprintPretty(&buf, optimalReport())
	got := buf.String()

	for _, want := range []string{
		"--- Ration for Last_4_Weeks_Gestation stage on Dry forage ---",
		"Status: Optimal",
		"Forage: 1.00",
		"Corn: 2.00",
		"Days pasture will last: 20.0",
		"Total forage available: 1,800.00 lbs DM",
		"Feed cost per sheep per day: $0.80",
		"Total feed cost over grazing period: $1,440.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pretty output missing %q\n%s", want, got)
		}
	}
}

func TestFprintPrettyInfeasible(t *testing.T) {
	var buf bytes.Buffer
	FprintPretty(&buf, report.Report{Stage: "Flushing", ForageStage: "Mature", Status: "Infeasible"})
	got := buf.String()

	if !strings.Contains(got, "Status: Infeasible") {
		t.Errorf("expected infeasible status line, got\n%s", got)
	}
	if !strings.Contains(got, "No feasible ration") {
		t.Errorf("expected infeasibility note, got\n%s", got)
	}
	if strings.Contains(got, "Feed Plan") {
		t.Errorf("infeasible report should not print a feed plan\n%s", got)
	}
}

func TestFprintPrettyUnlimitedDuration(t *testing.T) {
	rep := optimalReport()
	rep.Pasture.DurationDays = report.Amount(math.Inf(1))
	rep.Supply.TotalNeeded = report.Amount(math.Inf(1))
	rep.Costs.TotalGrazingCost = report.Amount(math.Inf(1))

	var buf bytes.Buffer
	FprintPretty(&buf, rep)
	got := buf.String()

	if !strings.Contains(got, "Days pasture will last: unlimited") {
		t.Errorf("expected unlimited duration, got\n%s", got)
	}
	if !strings.Contains(got, "Total feed cost over grazing period: unlimited") {
		t.Errorf("expected unlimited grazing cost, got\n%s", got)
	}
}

func TestFprintCsv(t *testing.T) {
	var buf bytes.Buffer
	FprintCsv(&buf, optimalReport())
	got := buf.String()

	for _, want := range []string{
		`"section","item","value","unit"`,
		`"run","status","Optimal",""`,
		`"ration","Corn","2.0000","lbs/day"`,
		`"pasture","duration","20.0","days"`,
		`"supply","Corn","3600","lbs"`,
		`"cost","grazing_total","1440","$"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("csv output missing %q\n%s", want, got)
		}
	}
}

func TestFprintCsvNonOptimal(t *testing.T) {
	var buf bytes.Buffer
	FprintCsv(&buf, report.Report{Stage: "Flushing", ForageStage: "Dry", Status: "Infeasible"})
	got := buf.String()

	if !strings.Contains(got, `"run","status","Infeasible",""`) {
		t.Errorf("expected status row, got\n%s", got)
	}
	if strings.Contains(got, `"ration"`) {
		t.Errorf("non-optimal csv should carry no ration rows\n%s", got)
	}
}

func TestFprintJson(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJson(&buf, optimalReport()); err != nil {
		t.Fatalf("FprintJson() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["status"] != "Optimal" {
		t.Errorf("status = %v, expected Optimal", decoded["status"])
	}
	if _, ok := decoded["ration"]; !ok {
		t.Error("expected ration section in JSON output")
	}
}
