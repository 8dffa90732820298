// internal/config/config.go
// App-wide parameter tables, unmarshalled from YAML over compiled-in
// defaults. Everything here feeds the core constructors as immutable value
// structs; nothing is consulted again after startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/core/score"
	"github.com/seqfoundry/primedesign/core/thermo"
)

// Reaction holds the wet-lab conditions for Tm calculation.
type Reaction struct {
	// Concentrations accept unit suffixes: "50mM", "0.5uM", "250nM".
	Monovalent string `yaml:"monovalent"`
	Magnesium  string `yaml:"magnesium"`
	Primer     string `yaml:"primer"`
	// AnnealC is the temperature (°C) at which ΔG values are evaluated.
	AnnealC float64 `yaml:"anneal_c"`
	// MgAsMonovalent enables the Na+-equivalent transform for Mg2+.
	MgAsMonovalent bool `yaml:"mg_as_monovalent"`
}

// Scoring holds the composite-scorer tables.
type Scoring struct {
	Weights         map[score.Mode]score.Weights `yaml:"weights"`
	Bands           score.Bands                  `yaml:"bands"`
	Tiers           score.TierCuts               `yaml:"tiers"`
	CriticalPenalty float64                      `yaml:"critical_penalty"`
}

// Config is the root settings struct.
type Config struct {
	Reaction Reaction                `yaml:"reaction"`
	Severity fold.SeverityThresholds `yaml:"severity"`
	Scoring  Scoring                 `yaml:"scoring"`
}

// Default returns the compiled-in tables.
func Default() Config {
	return Config{
		Reaction: Reaction{
			Monovalent: "50mM",
			Magnesium:  "0mM",
			Primer:     "500nM",
			AnnealC:    37,
		},
		Severity: fold.DefaultSeverityThresholds(),
		Scoring: Scoring{
			Weights:         score.DefaultWeights(),
			Bands:           score.DefaultBands(),
			Tiers:           score.DefaultTierCuts(),
			CriticalPenalty: score.DefaultCriticalPenalty,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects tables a running engine could not honor.
func (c Config) Validate() error {
	if err := c.Scoring.Tiers.Validate(); err != nil {
		return err
	}
	if c.Severity.CriticalDG > c.Severity.WarningDG {
		return fmt.Errorf("severity thresholds out of order: critical %.1f above warning %.1f",
			c.Severity.CriticalDG, c.Severity.WarningDG)
	}
	if c.Severity.TerminalWindow <= 0 {
		return fmt.Errorf("severity terminal_window must be positive")
	}
	for _, m := range score.Modes() {
		if _, ok := c.Scoring.Weights[m]; !ok {
			return fmt.Errorf("scoring weights missing mode %q", m)
		}
	}
	return nil
}

// Conditions converts the reaction settings to thermo.Conditions.
func (c Config) Conditions() (thermo.Conditions, error) {
	cond := thermo.DefaultConditions()
	var err error
	if c.Reaction.Monovalent != "" {
		if cond.NaM, err = thermo.ParseConc(c.Reaction.Monovalent); err != nil {
			return cond, err
		}
	}
	if c.Reaction.Magnesium != "" {
		if cond.MgM, err = thermo.ParseConc(c.Reaction.Magnesium); err != nil {
			return cond, err
		}
	}
	if c.Reaction.Primer != "" {
		if cond.PrimerTotalM, err = thermo.ParseConc(c.Reaction.Primer); err != nil {
			return cond, err
		}
	}
	if c.Reaction.AnnealC != 0 {
		cond.AnnealC = c.Reaction.AnnealC
	}
	cond.MgAsMonovalent = c.Reaction.MgAsMonovalent
	return cond, nil
}
