// core/score/config.go
// Immutable scoring configuration: per-mode feature weights, evidence-based
// feature bands, and tier cut points. Bands follow common oligo-design
// guidance (|ΔTm| ≤ 2 °C ideal, 2–5 acceptable; hairpins past -2 kcal/mol
// and dimers past -5 kcal/mol start costing, -6/-9 are critical).
package score

import (
	"fmt"
	"sort"
)

// Mode selects the weighting profile for a design's intended use.
type Mode string

const (
	ModeAmplification Mode = "amplification"
	ModeMutagenesis   Mode = "mutagenesis"
	ModeSequencing    Mode = "sequencing"
	ModeGoldenGate    Mode = "golden-gate"
	ModeAssembly      Mode = "assembly"
)

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{ModeAmplification, ModeMutagenesis, ModeSequencing, ModeGoldenGate, ModeAssembly}
}

// Weights are relative feature weights; they need not sum to anything since
// the composite normalizes over the weights of known features.
type Weights struct {
	Tm          float64 `yaml:"tm"`
	DeltaTm     float64 `yaml:"delta_tm"`
	GC          float64 `yaml:"gc"`
	Length      float64 `yaml:"length"`
	Hairpin     float64 `yaml:"hairpin"`
	SelfDimer   float64 `yaml:"self_dimer"`
	HeteroDimer float64 `yaml:"hetero_dimer"`
	OffTarget   float64 `yaml:"off_target"`
}

// Band is a symmetric-or-not piecewise score band: values at or inside the
// ideal range score 100, falling linearly to 60 at the acceptable edge and
// to 0 at the critical edge.
type Band struct {
	IdealLo    float64 `yaml:"ideal_lo"`
	IdealHi    float64 `yaml:"ideal_hi"`
	AcceptLo   float64 `yaml:"accept_lo"`
	AcceptHi   float64 `yaml:"accept_hi"`
	CriticalLo float64 `yaml:"critical_lo"`
	CriticalHi float64 `yaml:"critical_hi"`
}

// Bands collects the documented per-feature bands.
type Bands struct {
	// TmDelta is |Tm - target| in °C.
	TmDelta Band `yaml:"tm_delta"`
	// PairDeltaTm is |Tm_fwd - Tm_rev| in °C.
	PairDeltaTm Band `yaml:"pair_delta_tm"`
	// GCFrac is the G+C fraction.
	GCFrac Band `yaml:"gc_frac"`
	// Length in bases.
	Length Band `yaml:"length"`
	// Structure ΔG bands in kcal/mol (more negative = worse, so the band
	// runs downward: lo edges are the harmful side).
	HairpinDG     Band `yaml:"hairpin_dg"`
	SelfDimerDG   Band `yaml:"self_dimer_dg"`
	HeteroDimerDG Band `yaml:"hetero_dimer_dg"`
}

// TierCuts maps composite scores to quality tiers; cut points are
// configuration but must stay strictly decreasing.
type TierCuts struct {
	Excellent  float64 `yaml:"excellent"`
	Good       float64 `yaml:"good"`
	Acceptable float64 `yaml:"acceptable"`
	Marginal   float64 `yaml:"marginal"`
}

// Validate rejects non-monotonic tier cuts.
func (t TierCuts) Validate() error {
	cuts := []float64{t.Excellent, t.Good, t.Acceptable, t.Marginal}
	if !sort.IsSorted(sort.Reverse(sort.Float64Slice(cuts))) {
		return fmt.Errorf("tier cuts must be strictly decreasing: %+v", t)
	}
	for i := 1; i < len(cuts); i++ {
		if cuts[i] == cuts[i-1] {
			return fmt.Errorf("tier cuts must be strictly decreasing: %+v", t)
		}
	}
	return nil
}

// Tier buckets a composite score.
func (t TierCuts) Tier(score float64) string {
	switch {
	case score >= t.Excellent:
		return "excellent"
	case score >= t.Good:
		return "good"
	case score >= t.Acceptable:
		return "acceptable"
	case score >= t.Marginal:
		return "marginal"
	default:
		return "poor"
	}
}

// DefaultTierCuts returns the documented bucket boundaries.
func DefaultTierCuts() TierCuts {
	return TierCuts{Excellent: 90, Good: 75, Acceptable: 60, Marginal: 40}
}

// DefaultBands returns the documented feature bands.
func DefaultBands() Bands {
	return Bands{
		TmDelta:     Band{IdealLo: 0, IdealHi: 2, AcceptLo: 0, AcceptHi: 5, CriticalLo: 0, CriticalHi: 10},
		PairDeltaTm: Band{IdealLo: 0, IdealHi: 2, AcceptLo: 0, AcceptHi: 5, CriticalLo: 0, CriticalHi: 8},
		GCFrac:      Band{IdealLo: 0.40, IdealHi: 0.60, AcceptLo: 0.30, AcceptHi: 0.70, CriticalLo: 0.20, CriticalHi: 0.80},
		Length:      Band{IdealLo: 18, IdealHi: 25, AcceptLo: 15, AcceptHi: 32, CriticalLo: 10, CriticalHi: 45},
		// ΔG bands: only the low side matters; positive side is open.
		HairpinDG:     Band{IdealLo: -2, IdealHi: 1e9, AcceptLo: -4, AcceptHi: 1e9, CriticalLo: -6, CriticalHi: 1e9},
		SelfDimerDG:   Band{IdealLo: -5, IdealHi: 1e9, AcceptLo: -7, AcceptHi: 1e9, CriticalLo: -9, CriticalHi: 1e9},
		HeteroDimerDG: Band{IdealLo: -5, IdealHi: 1e9, AcceptLo: -7, AcceptHi: 1e9, CriticalLo: -9, CriticalHi: 1e9},
	}
}

// DefaultWeights returns the per-mode weighting profiles.
func DefaultWeights() map[Mode]Weights {
	return map[Mode]Weights{
		ModeAmplification: {Tm: 20, DeltaTm: 15, GC: 15, Length: 10, Hairpin: 15, SelfDimer: 15, HeteroDimer: 10, OffTarget: 10},
		ModeMutagenesis:   {Tm: 20, DeltaTm: 10, GC: 10, Length: 10, Hairpin: 20, SelfDimer: 15, HeteroDimer: 15, OffTarget: 5},
		ModeSequencing:    {Tm: 25, DeltaTm: 0, GC: 20, Length: 15, Hairpin: 20, SelfDimer: 20, HeteroDimer: 0, OffTarget: 10},
		ModeGoldenGate:    {Tm: 25, DeltaTm: 10, GC: 15, Length: 10, Hairpin: 15, SelfDimer: 15, HeteroDimer: 10, OffTarget: 10},
		ModeAssembly:      {Tm: 25, DeltaTm: 10, GC: 15, Length: 10, Hairpin: 15, SelfDimer: 15, HeteroDimer: 10, OffTarget: 10},
	}
}

// DefaultCriticalPenalty is subtracted from the composite per critical
// warning when deriving the effective score.
const DefaultCriticalPenalty = 15.0

// scoreValue maps v through a band to [0,100]: 100 inside the ideal range,
// linear to 60 at the acceptable edge, linear to 0 at the critical edge.
func scoreValue(v float64, b Band) float64 {
	side := func(v, ideal, accept, critical float64) float64 {
		// Distances measured toward the harmful side.
		if between(v, ideal, accept) {
			return 100 - 40*frac(v, ideal, accept)
		}
		if between(v, accept, critical) {
			return 60 - 60*frac(v, accept, critical)
		}
		return 0
	}
	switch {
	case v >= b.IdealLo && v <= b.IdealHi:
		return 100
	case v < b.IdealLo:
		return side(v, b.IdealLo, b.AcceptLo, b.CriticalLo)
	default:
		return side(v, b.IdealHi, b.AcceptHi, b.CriticalHi)
	}
}

func between(v, a, b float64) bool {
	if a <= b {
		return v >= a && v <= b
	}
	return v <= a && v >= b
}

func frac(v, from, to float64) float64 {
	if from == to {
		return 1
	}
	f := (v - from) / (to - from)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
