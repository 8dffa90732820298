// core/design/design.go
// Input and output contracts for the primer design engine.
package design

import (
	"errors"
	"fmt"

	"github.com/seqfoundry/primedesign/core/align"
	"github.com/seqfoundry/primedesign/core/dna"
	"github.com/seqfoundry/primedesign/core/score"
)

var (
	// ErrInputTooShort covers templates under 50 bp and primers under 10 bp.
	ErrInputTooShort = errors.New("input too short")
	// ErrInvalidRegion covers out-of-bounds regions, and end<start on
	// non-circular templates.
	ErrInvalidRegion = errors.New("invalid region")
	// ErrNoFeasibleDesign means no candidate satisfies the hard Tm/length/GC
	// bounds.
	ErrNoFeasibleDesign = errors.New("no feasible design under the given constraints")
)

// MinTemplateLen is the smallest template the engine accepts.
const MinTemplateLen = 50

// MinPrimerLen is the smallest primer the engine will emit or analyze.
const MinPrimerLen = 10

// Op is the kind of edit a Spec requests.
type Op string

const (
	OpAmplify    Op = "amplify"
	OpDelete     Op = "delete"
	OpSubstitute Op = "substitute"
)

// Spec is one design request: a half-open template region [Start,End) plus
// the operation on it. Replacement is only meaningful for OpSubstitute.
type Spec struct {
	Op          Op
	Start       int
	End         int
	Replacement string
}

// Amplify requests primers flanking [start,end) for plain amplification.
func Amplify(start, end int) Spec { return Spec{Op: OpAmplify, Start: start, End: end} }

// Delete requests removal of [start,end).
func Delete(start, end int) Spec { return Spec{Op: OpDelete, Start: start, End: end} }

// Substitute requests replacement of [start,end) with seq.
func Substitute(start, end int, seq string) Spec {
	return Spec{Op: OpSubstitute, Start: start, End: end, Replacement: seq}
}

// edit returns the effective replacement written between the flanks.
func (s Spec) edit() string {
	if s.Op == OpSubstitute {
		return s.Replacement
	}
	return ""
}

// validate checks the region against a template of length n.
func (s Spec) validate(n int, circular bool) error {
	if s.Start < 0 || s.Start >= n || s.End < 0 || s.End > n {
		return fmt.Errorf("%w: [%d,%d) on %d bp template", ErrInvalidRegion, s.Start, s.End, n)
	}
	if s.End < s.Start && !circular {
		return fmt.Errorf("%w: end %d before start %d on a linear template", ErrInvalidRegion, s.End, s.Start)
	}
	if s.Op == OpSubstitute {
		if _, err := dna.Validate(s.Replacement); err != nil {
			return err
		}
	}
	return nil
}

// Strategy selects the mutagenic primer layout.
type Strategy string

const (
	// StrategyBackToBack puts the edit on the forward primer extending
	// downstream; the reverse primer abuts without overlapping (Q5-style).
	StrategyBackToBack Strategy = "back-to-back"
	// StrategyOverlapping spans the edit with both primers (QuikChange-style).
	StrategyOverlapping Strategy = "overlapping"
)

// Options bound the candidate search. Zero-valued fields take defaults.
type Options struct {
	TmTarget float64
	TmMin    float64
	TmMax    float64

	MinLen int
	MaxLen int

	GCMin float64
	GCMax float64

	Strategy Strategy
	Mode     score.Mode
	Circular bool

	// Exhaustive evaluates the full length×offset space; otherwise a
	// pruned quick subset is used for interactive feedback.
	Exhaustive bool
	// TopK alternatives returned alongside the best result.
	TopK int
	// MaxCandidates bounds the exhaustive space to guarantee termination.
	MaxCandidates int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		TmTarget:      62,
		TmMin:         55,
		TmMax:         72,
		MinLen:        18,
		MaxLen:        30,
		GCMin:         0.30,
		GCMax:         0.70,
		Strategy:      StrategyBackToBack,
		Mode:          "",
		TopK:          5,
		MaxCandidates: 20000,
	}
}

// normalized fills defaults and derives the scoring mode from the operation
// when the caller left it unset. Zero and negative values both fall back to
// the defaults: counts and lengths below one have no meaning, and letting
// them through would corrupt the search loops downstream.
func (o Options) normalized(op Op) Options {
	d := DefaultOptions()
	if o.TmTarget == 0 {
		o.TmTarget = d.TmTarget
	}
	if o.TmMin == 0 {
		o.TmMin = d.TmMin
	}
	if o.TmMax == 0 {
		o.TmMax = d.TmMax
	}
	if o.MinLen <= 0 {
		o.MinLen = d.MinLen
	}
	if o.MaxLen <= 0 {
		o.MaxLen = d.MaxLen
	}
	if o.GCMin <= 0 {
		o.GCMin = d.GCMin
	}
	if o.GCMax <= 0 {
		o.GCMax = d.GCMax
	}
	if o.Strategy == "" {
		o.Strategy = d.Strategy
	}
	if o.TopK <= 0 {
		o.TopK = d.TopK
	}
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = d.MaxCandidates
	}
	if o.Mode == "" {
		if op == OpAmplify {
			o.Mode = score.ModeAmplification
		} else {
			o.Mode = score.ModeMutagenesis
		}
	}
	return o
}

// Primer is one designed oligo. Start/End record the annealing footprint on
// the template plus strand (half-open); for mutagenic primers any edit tail
// lies outside this footprint. Primers are immutable once produced.
type Primer struct {
	Seq string
	Dir align.Direction

	Start int
	End   int

	Tm          float64
	GC          float64
	HairpinDG   float64
	SelfDimerDG float64
}

// Result is a scored primer pair with ranked runners-up.
type Result struct {
	Forward Primer
	Reverse Primer

	CompositeScore   float64
	EffectiveScore   float64
	QualityTier      string
	CriticalWarnings int

	Report score.Report

	Alternatives []Result
}
