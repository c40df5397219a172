// Package config defines the data structures related to configuration and
// includes functions for loading, parsing, and validating the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/shepline/ration-forecast/internal/nutrition"
	"github.com/shepline/ration-forecast/internal/ration"
)

// Configuration holds all configuration for ration-forecast.
type Configuration struct {
	Stage       string
	ForageStage string
	Pasture     PastureConfig
	Policy      PolicyConfig
	Solver      SolverConfig
	Feeds       []FeedConfig
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// PastureConfig describes the standing forage and herd density.
type PastureConfig struct {
	AvailableForagePerAcre float64 // lbs as-fed forage per acre
	StockingRate           float64 // sheep per acre
}

// PolicyConfig selects the optional model features.
type PolicyConfig struct {
	ExactDMI             bool `mapstructure:"exactDmi"`
	BlockExclusive       bool
	MinForageUtilization bool
}

// SolverConfig holds solver invocation options.
type SolverConfig struct {
	TimeLimitSeconds float64 // 0 means no limit
}

// FeedConfig is one supplemental feed record. An empty Feeds list selects
// the built-in supplement table.
type FeedConfig struct {
	Name             string
	Cost             float64 // $ per lb as fed
	Protein          float64 // % of dry matter
	TDN              float64 // % of dry matter
	DM               float64 // % of as-fed weight
	MinIntake        float64 // lbs per head per day
	MaxIntake        float64 // lbs per head per day
	Block            bool
	DerivedMaxIntake bool
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Validate fails fast on configuration defects that must never reach the
// solver: unknown table keys, a degenerate pasture context, and malformed
// feed records.
func (c *Configuration) Validate() error {
	if _, err := nutrition.LookupStage(c.Stage); err != nil {
		return err
	}
	if _, err := nutrition.LookupForage(c.ForageStage); err != nil {
		return err
	}

	if c.Pasture.StockingRate <= 0 {
		return fmt.Errorf("stocking rate must be positive, got %.3f", c.Pasture.StockingRate)
	}
	if c.Pasture.AvailableForagePerAcre < 0 {
		return fmt.Errorf("available forage per acre must not be negative, got %.3f", c.Pasture.AvailableForagePerAcre)
	}

	seen := make(map[string]bool)
	for _, feed := range c.resolvedFeedConfigs() {
		if feed.Name == "" {
			return fmt.Errorf("feed with empty name")
		}
		if feed.Name == ration.ForageVariable {
			return fmt.Errorf("feed name %q is reserved", ration.ForageVariable)
		}
		if seen[feed.Name] {
			return fmt.Errorf("duplicate feed name %s", feed.Name)
		}
		seen[feed.Name] = true
		if !feed.DerivedMaxIntake && feed.MinIntake > feed.MaxIntake {
			return fmt.Errorf("feed %s has min intake %.3f above max intake %.3f", feed.Name, feed.MinIntake, feed.MaxIntake)
		}
		if feed.MinIntake < 0 {
			return fmt.Errorf("feed %s has negative min intake %.3f", feed.Name, feed.MinIntake)
		}
		// A negative cost makes the minimization unbounded in ceiling mode;
		// treat it as a defect rather than letting the solver report it.
		if feed.Cost < 0 {
			return fmt.Errorf("feed %s has negative cost %.4f", feed.Name, feed.Cost)
		}
		for _, pct := range []struct {
			name  string
			value float64
		}{
			{"protein", feed.Protein},
			{"tdn", feed.TDN},
			{"dm", feed.DM},
		} {
			if pct.value < 0 || pct.value > 100 {
				return fmt.Errorf("feed %s has %s percentage %.2f outside [0, 100]", feed.Name, pct.name, pct.value)
			}
		}
	}

	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for conditions that are suspect but not fatal.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Feeds) == 0 {
		warnings = append(warnings, "no feeds configured, using the built-in supplement table")
	}

	hasProteinSource := false
	for _, feed := range c.resolvedFeedConfigs() {
		if !feed.DerivedMaxIntake && feed.MaxIntake == 0 && feed.MinIntake == 0 {
			warnings = append(warnings, fmt.Sprintf("feed '%s' has a zero intake ceiling and can never enter the ration", feed.Name))
		}
		if feed.Protein > 0 {
			hasProteinSource = true
		}
	}
	if !hasProteinSource {
		warnings = append(warnings, "no configured feed provides protein; the model is likely infeasible")
	}

	return warnings
}

// ResolvedFeeds converts the configured feed records into the nutrition feed
// table, falling back to the built-in table when none are configured.
func (c *Configuration) ResolvedFeeds() []nutrition.Feed {
	if len(c.Feeds) == 0 {
		return nutrition.DefaultFeeds()
	}
	feeds := make([]nutrition.Feed, len(c.Feeds))
	for i, feed := range c.Feeds {
		feeds[i] = nutrition.Feed{
			Name:       feed.Name,
			Cost:       feed.Cost,
			ProteinPct: feed.Protein,
			TDNPct:     feed.TDN,
			DMPct:      feed.DM,
			MinIntake:  feed.MinIntake,
			MaxIntake:  feed.MaxIntake,
			Block:      feed.Block,
			DerivedMax: feed.DerivedMaxIntake,
		}
	}
	return feeds
}

// resolvedFeedConfigs mirrors ResolvedFeeds at the config-record level so
// validation covers the built-in table fallback too.
func (c *Configuration) resolvedFeedConfigs() []FeedConfig {
	if len(c.Feeds) > 0 {
		return c.Feeds
	}
	defaults := nutrition.DefaultFeeds()
	feeds := make([]FeedConfig, len(defaults))
	for i, feed := range defaults {
		feeds[i] = FeedConfig{
			Name:             feed.Name,
			Cost:             feed.Cost,
			Protein:          feed.ProteinPct,
			TDN:              feed.TDNPct,
			DM:               feed.DMPct,
			MinIntake:        feed.MinIntake,
			MaxIntake:        feed.MaxIntake,
			Block:            feed.Block,
			DerivedMaxIntake: feed.DerivedMax,
		}
	}
	return feeds
}

// Selections resolves the configured stage and forage keys against the
// reference tables.
func (c *Configuration) Selections() (nutrition.Stage, nutrition.Forage, error) {
	stage, err := nutrition.LookupStage(c.Stage)
	if err != nil {
		return nutrition.Stage{}, nutrition.Forage{}, err
	}
	forage, err := nutrition.LookupForage(c.ForageStage)
	if err != nil {
		return nutrition.Stage{}, nutrition.Forage{}, err
	}
	return stage, forage, nil
}

// PastureContext converts the pasture configuration for the model builder.
func (c *Configuration) PastureContext() ration.Pasture {
	return ration.Pasture{
		AvailableForagePerAcre: c.Pasture.AvailableForagePerAcre,
		StockingRate:           c.Pasture.StockingRate,
	}
}

// ModelPolicy converts the policy flags for the model builder.
func (c *Configuration) ModelPolicy() ration.Policy {
	return ration.Policy{
		ExactDMI:             c.Policy.ExactDMI,
		BlockExclusive:       c.Policy.BlockExclusive,
		MinForageUtilization: c.Policy.MinForageUtilization,
	}
}
