// core/score/scorer.go
// Multi-factor composite scoring: every thermodynamic/structural/off-target
// feature maps through a mode-specific band into [0,100]; the composite is
// the weighted mean over features whose inputs are known, so a degraded
// (unknown) feature drops out instead of dragging the score to zero.
package score

import (
	"math"

	"github.com/seqfoundry/primedesign/core/align"
	"github.com/seqfoundry/primedesign/core/fold"
)

// PrimerInput carries one primer's measured features.
type PrimerInput struct {
	Seq    string
	Length int

	Tm      float64
	TmKnown bool

	GC float64

	HairpinDG    float64
	HairpinSev   fold.Severity
	HairpinKnown bool

	SelfDimerDG    float64
	SelfDimerSev   fold.Severity
	SelfDimerKnown bool
}

// PairInput carries the full feature set for a primer pair.
type PairInput struct {
	Mode     Mode
	TmTarget float64

	Fwd PrimerInput
	Rev PrimerInput

	HeteroDimerDG    float64
	HeteroDimerSev   fold.Severity
	HeteroDimerKnown bool

	OffTargets      int
	OffTargetsKnown bool
}

// Feature is one scored component of a report.
type Feature struct {
	Name     string
	Value    float64
	Score    float64
	Severity string
	Known    bool
	Critical bool
}

// Report is the scorer's aggregate verdict.
type Report struct {
	Composite        float64
	Effective        float64
	Tier             string
	CriticalWarnings int
	Features         []Feature
}

// Scorer combines features under injected, immutable configuration.
type Scorer struct {
	Weights         map[Mode]Weights
	Bands           Bands
	Tiers           TierCuts
	CriticalPenalty float64
}

// NewScorer builds a Scorer; zero CriticalPenalty falls back to the default.
func NewScorer(w map[Mode]Weights, b Bands, t TierCuts, criticalPenalty float64) Scorer {
	if criticalPenalty == 0 {
		criticalPenalty = DefaultCriticalPenalty
	}
	return Scorer{Weights: w, Bands: b, Tiers: t, CriticalPenalty: criticalPenalty}
}

// Default returns a Scorer over the documented defaults.
func Default() Scorer {
	return NewScorer(DefaultWeights(), DefaultBands(), DefaultTierCuts(), DefaultCriticalPenalty)
}

// Score computes the composite report for a pair.
func (s Scorer) Score(in PairInput) Report {
	w, ok := s.Weights[in.Mode]
	if !ok {
		w = s.Weights[ModeAmplification]
	}

	var (
		features    []Feature
		weightedSum float64
		weightTotal float64
		criticals   int
	)
	add := func(name string, value, score, weight float64, sev fold.Severity, known, structural bool) {
		f := Feature{Name: name, Value: value, Score: score, Known: known}
		if structural {
			f.Severity = sev.String()
			f.Critical = known && sev == fold.SeverityCritical
		} else {
			f.Critical = known && score == 0
		}
		features = append(features, f)
		if !known || weight == 0 {
			return
		}
		weightedSum += weight * score
		weightTotal += weight
		if f.Critical {
			criticals++
		}
	}

	perPrimer := func(tag string, p PrimerInput) {
		add(tag+"_tm", p.Tm, scoreValue(math.Abs(p.Tm-in.TmTarget), s.Bands.TmDelta), w.Tm/2, 0, p.TmKnown, false)
		add(tag+"_gc", p.GC, scoreValue(p.GC, s.Bands.GCFrac), w.GC/2, 0, p.Length > 0, false)
		add(tag+"_length", float64(p.Length), scoreValue(float64(p.Length), s.Bands.Length), w.Length/2, 0, p.Length > 0, false)
		add(tag+"_hairpin", p.HairpinDG, scoreValue(p.HairpinDG, s.Bands.HairpinDG), w.Hairpin/2, p.HairpinSev, p.HairpinKnown, true)
		add(tag+"_self_dimer", p.SelfDimerDG, scoreValue(p.SelfDimerDG, s.Bands.SelfDimerDG), w.SelfDimer/2, p.SelfDimerSev, p.SelfDimerKnown, true)
	}
	perPrimer("fwd", in.Fwd)
	perPrimer("rev", in.Rev)

	dTmKnown := in.Fwd.TmKnown && in.Rev.TmKnown
	dTm := math.Abs(in.Fwd.Tm - in.Rev.Tm)
	add("delta_tm", dTm, scoreValue(dTm, s.Bands.PairDeltaTm), w.DeltaTm, 0, dTmKnown, false)

	add("hetero_dimer", in.HeteroDimerDG, scoreValue(in.HeteroDimerDG, s.Bands.HeteroDimerDG), w.HeteroDimer, in.HeteroDimerSev, in.HeteroDimerKnown, true)

	add("off_target", float64(in.OffTargets), offTargetScore(in.OffTargets), w.OffTarget, 0, in.OffTargetsKnown, false)

	composite := 0.0
	if weightTotal > 0 {
		composite = weightedSum / weightTotal
	}
	effective := composite - s.CriticalPenalty*float64(criticals)
	if effective < 0 {
		effective = 0
	}
	return Report{
		Composite:        composite,
		Effective:        effective,
		Tier:             s.Tiers.Tier(composite),
		CriticalWarnings: criticals,
		Features:         features,
	}
}

// offTargetScore penalizes extra binding sites beyond the intended one.
func offTargetScore(n int) float64 {
	switch {
	case n <= 0:
		return 100
	case n == 1:
		return 60
	case n == 2:
		return 30
	default:
		return 0
	}
}

// minAnnealing is the shortest 3' suffix considered a usable annealing
// region for tailed assembly primers.
const minAnnealing = 10

// AnnealingRegion splits a tailed assembly/golden-gate primer into its
// non-binding 5' tail and the 3' template-binding annealing region: the
// longest 3' portion that matches the template exactly. Golden-gate and
// assembly modes score Tm/GC on the annealing region, never the full primer.
func AnnealingRegion(aligner align.Aligner, template, primer string, dir align.Direction, circular bool) (tail, region string, ok bool) {
	for cut := 0; cut <= len(primer)-minAnnealing; cut++ {
		sub := primer[cut:]
		b, err := aligner.Find(align.Request{
			Template:       template,
			Circular:       circular,
			Primer:         sub,
			Dir:            dir,
			MutationOffset: -1,
		})
		if err != nil || b.Method != align.MethodExact {
			continue
		}
		return primer[:cut], sub, true
	}
	return primer, "", false
}
