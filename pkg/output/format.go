// Package output provides utilities for formatting and displaying ration reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shepline/ration-forecast/internal/report"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(rep report.Report) {
	FprintPretty(os.Stdout, rep)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(rep report.Report) {
	FprintCsv(os.Stdout, rep)
}

// JsonFormat outputs the report as indented JSON.
func JsonFormat(rep report.Report) error {
	return FprintJson(os.Stdout, rep)
}

// FprintPretty writes the human-readable report to w.
func FprintPretty(w io.Writer, rep report.Report) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Ration for %s stage on %s forage ---\n", rep.Stage, rep.ForageStage)
	fmt.Fprintf(w, "Status: %s\n", rep.Status)
	if rep.Ration == nil {
		if rep.Status == "Infeasible" {
			fmt.Fprintf(w, "No feasible ration exists; check the feed table, bounds, and requirements.\n")
		}
		return
	}

	fmt.Fprintf(w, "\nOptimal Feed Plan (lbs/sheep/day):\n")
	fmt.Fprintf(w, "  Forage: %.2f\n", rep.Ration.ForageIntake)
	for _, feed := range rep.Ration.Supplements {
		fmt.Fprintf(w, "  %s: %.2f\n", feed.Name, feed.Intake)
	}
	fmt.Fprintf(w, "  Total intake: %.2f (DMI limit %.2f)\n", rep.Ration.TotalIntake, rep.Ration.DMIRequirement)
	fmt.Fprintf(w, "  Total supplement: %.2f\n", rep.Ration.TotalSupplement)

	fmt.Fprintf(w, "\nNutritional Analysis:\n")
	fmt.Fprintf(w, "  Protein: %.2f lbs (%.2f%%), required %.2f lbs (%.2f%%)\n",
		rep.Nutrition.ProteinLbs, rep.Nutrition.ProteinPct, rep.Nutrition.RequiredProteinLbs, rep.Nutrition.RequiredProteinPct)
	fmt.Fprintf(w, "  TDN: %.2f lbs (%.2f%%), required %.2f lbs (%.2f%%)\n",
		rep.Nutrition.TDNLbs, rep.Nutrition.TDNPct, rep.Nutrition.RequiredTDNLbs, rep.Nutrition.RequiredTDNPct)

	fmt.Fprintf(w, "\nPasture Duration Analysis:\n")
	fmt.Fprintf(w, "  Sheep per acre: %.0f\n", rep.Pasture.StockingRate)
	_, _ = p.Fprintf(w, "  Total forage available: %.2f lbs DM\n", rep.Pasture.StandingForageDM)
	_, _ = p.Fprintf(w, "  Daily forage consumption (all sheep): %.2f lbs DM/day\n", rep.Pasture.DailyHerdForage)
	fmt.Fprintf(w, "  Days pasture will last: %s\n", formatDays(rep.Pasture.DurationDays))

	fmt.Fprintf(w, "\nSupplemental Feed Requirements:\n")
	fmt.Fprintf(w, "  Daily supplement per sheep: %.2f lbs/day\n", rep.Supply.DailyPerSheep)
	_, _ = p.Fprintf(w, "  Daily supplement for all sheep: %.2f lbs/day\n", rep.Supply.DailyHerd)
	fmt.Fprintf(w, "  Total supplement needed: %s lbs\n", formatAmount(rep.Supply.TotalNeeded))
	for _, feed := range rep.Supply.Feeds {
		_, _ = p.Fprintf(w, "  %s: %.2f lbs/day, %s lbs total (%s)\n",
			feed.Name, feed.DailyHerd, formatAmount(feed.Total), formatCurrency(feed.TotalCost))
	}

	fmt.Fprintf(w, "\nFeed Cost Analysis:\n")
	fmt.Fprintf(w, "  Feed cost per sheep per day: %s\n", formatCurrency(report.Amount(rep.Costs.DailyPerSheep)))
	_, _ = p.Fprintf(w, "  Feed cost for all sheep per day: %s\n", formatCurrency(report.Amount(rep.Costs.DailyHerd)))
	fmt.Fprintf(w, "  Total feed cost over grazing period: %s\n", formatCurrency(rep.Costs.TotalGrazingCost))
}

// FprintCsv writes the report to w as section,item,value,unit rows.
func FprintCsv(w io.Writer, rep report.Report) {
	fmt.Fprintf(w, "\"section\",\"item\",\"value\",\"unit\"\n")
	fmt.Fprintf(w, "\"run\",\"stage\",\"%s\",\"\"\n", rep.Stage)
	fmt.Fprintf(w, "\"run\",\"forage_stage\",\"%s\",\"\"\n", rep.ForageStage)
	fmt.Fprintf(w, "\"run\",\"status\",\"%s\",\"\"\n", rep.Status)
	if rep.Ration == nil {
		return
	}

	fmt.Fprintf(w, "\"ration\",\"forage\",\"%.4f\",\"lbs/day\"\n", rep.Ration.ForageIntake)
	for _, feed := range rep.Ration.Supplements {
		fmt.Fprintf(w, "\"ration\",\"%s\",\"%.4f\",\"lbs/day\"\n", feed.Name, feed.Intake)
	}
	fmt.Fprintf(w, "\"ration\",\"total_intake\",\"%.4f\",\"lbs/day\"\n", rep.Ration.TotalIntake)

	fmt.Fprintf(w, "\"nutrition\",\"protein\",\"%.4f\",\"lbs\"\n", rep.Nutrition.ProteinLbs)
	fmt.Fprintf(w, "\"nutrition\",\"protein_required\",\"%.4f\",\"lbs\"\n", rep.Nutrition.RequiredProteinLbs)
	fmt.Fprintf(w, "\"nutrition\",\"tdn\",\"%.4f\",\"lbs\"\n", rep.Nutrition.TDNLbs)
	fmt.Fprintf(w, "\"nutrition\",\"tdn_required\",\"%.4f\",\"lbs\"\n", rep.Nutrition.RequiredTDNLbs)

	fmt.Fprintf(w, "\"pasture\",\"standing_forage\",\"%.2f\",\"lbs DM\"\n", rep.Pasture.StandingForageDM)
	fmt.Fprintf(w, "\"pasture\",\"daily_herd_forage\",\"%.2f\",\"lbs DM/day\"\n", rep.Pasture.DailyHerdForage)
	fmt.Fprintf(w, "\"pasture\",\"duration\",\"%s\",\"days\"\n", formatDays(rep.Pasture.DurationDays))

	for _, feed := range rep.Supply.Feeds {
		fmt.Fprintf(w, "\"supply\",\"%s\",\"%s\",\"lbs\"\n", feed.Name, formatAmount(feed.Total))
		fmt.Fprintf(w, "\"supply_cost\",\"%s\",\"%s\",\"$\"\n", feed.Name, formatAmount(feed.TotalCost))
	}

	fmt.Fprintf(w, "\"cost\",\"per_sheep_day\",\"%.4f\",\"$\"\n", rep.Costs.DailyPerSheep)
	fmt.Fprintf(w, "\"cost\",\"herd_day\",\"%.2f\",\"$\"\n", rep.Costs.DailyHerd)
	fmt.Fprintf(w, "\"cost\",\"grazing_total\",\"%s\",\"$\"\n", formatAmount(rep.Costs.TotalGrazingCost))
}

// FprintJson writes the report to w as indented JSON.
func FprintJson(w io.Writer, rep report.Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode report, %s", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// formatDays renders a possibly-unlimited day count with one decimal.
func formatDays(days report.Amount) string {
	if days.IsUnlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%.1f", float64(days))
}

// formatAmount renders a possibly-unlimited quantity with two decimals.
func formatAmount(amount report.Amount) string {
	if amount.IsUnlimited() {
		return "unlimited"
	}
	return decimal.NewFromFloat(float64(amount)).Round(2).String()
}

// formatCurrency renders a dollar amount rounded to cents.
func formatCurrency(amount report.Amount) string {
	if amount.IsUnlimited() {
		return "unlimited"
	}
	return "$" + decimal.NewFromFloat(float64(amount)).StringFixed(2)
}
