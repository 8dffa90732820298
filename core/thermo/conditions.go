// core/thermo/conditions.go
package thermo

import (
	"fmt"
	"math"
	"strings"
)

// Conditions is a lightweight holder for commonly tuned wet-lab knobs.
type Conditions struct {
	NaM          float64 // monovalent cations, mol/L
	MgM          float64 // magnesium, mol/L
	PrimerTotalM float64 // total primer concentration, mol/L
	AnnealC      float64 // annealing temperature for ΔG evaluation, °C
	// MgAsMonovalent enables the Owczarzy-lite Na+-equivalent transform
	// Na_eff = Na + 3.8*sqrt(Mg). Off by default so results do not shift
	// silently for Mg-free buffers.
	MgAsMonovalent bool
}

// DefaultConditions matches common PCR mixes: 50 mM monovalent salt,
// 0.5 µM total primer, ΔG evaluated at 37 °C.
func DefaultConditions() Conditions {
	return Conditions{
		NaM:          0.05,
		MgM:          0,
		PrimerTotalM: 5e-7,
		AnnealC:      37,
	}
}

// EffectiveMonovalent returns the Na+-equivalent concentration used in salt
// corrections.
func (c Conditions) EffectiveMonovalent() float64 {
	if c.MgAsMonovalent && c.MgM > 0 {
		return c.NaM + 3.8*math.Sqrt(c.MgM)
	}
	return c.NaM
}

// ParseConc parses "50mM", "250nM", "3uM" → mol/L.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	unit := ""
	val := 0.0
	_, err := fmt.Sscanf(s, "%f%s", &val, &unit)
	if err != nil {
		return 0, fmt.Errorf("invalid conc %q: %w", s, err)
	}
	switch unit {
	case "m", "":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
	}
}
