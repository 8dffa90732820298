// core/design/engine.go
// Candidate generation and search. The engine enumerates primer boundary
// offsets around the edit region under the active layout strategy, scores
// every feasible candidate through the composite scorer, and keeps the
// global best plus ranked alternatives. Quick mode walks a coarser lattice
// of the same space, so the exhaustive result can never score below it.
package design

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/seqfoundry/primedesign/core/align"
	"github.com/seqfoundry/primedesign/core/dna"
	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/core/score"
	"github.com/seqfoundry/primedesign/core/thermo"
)

// Engine wires the leaf components into the design search.
type Engine struct {
	Calc    thermo.Calculator
	Folder  *fold.Folder
	Aligner align.Aligner
	Scorer  score.Scorer
	Sev     fold.SeverityThresholds
}

// NewEngine builds an Engine from explicit components.
func NewEngine(calc thermo.Calculator, folder *fold.Folder, scorer score.Scorer, sev fold.SeverityThresholds) *Engine {
	return &Engine{Calc: calc, Folder: folder, Scorer: scorer, Sev: sev}
}

// Default returns an Engine over all default parameter sets.
func Default() *Engine {
	return NewEngine(thermo.Default(), fold.Default(), score.Default(), fold.DefaultSeverityThresholds())
}

// candidate is one untried primer pair placement.
type candidate struct {
	fwdSeq string
	revSeq string
	// Annealing footprints on the template plus strand.
	fwdStart, fwdEnd int
	revStart, revEnd int
}

// Design searches for the best primer pair implementing spec on template.
func (e *Engine) Design(ctx context.Context, template string, spec Spec, opts Options) (Result, error) {
	tpl, err := dna.Validate(template)
	if err != nil {
		return Result{}, err
	}
	if len(tpl) < MinTemplateLen {
		return Result{}, fmt.Errorf("%w: template is %d bp, need at least %d", ErrInputTooShort, len(tpl), MinTemplateLen)
	}
	opts = opts.normalized(spec.Op)
	if err := spec.validate(len(tpl), opts.Circular); err != nil {
		return Result{}, err
	}
	if opts.MinLen > opts.MaxLen || opts.MinLen < MinPrimerLen {
		return Result{}, fmt.Errorf("%w: primer length range [%d,%d]", ErrNoFeasibleDesign, opts.MinLen, opts.MaxLen)
	}

	stride := e.strides(spec, opts)
	cands := e.enumerate(tpl, spec, opts, stride)

	var kept []Result
	for i, c := range cands {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if r, ok := e.evaluate(tpl, c, opts); ok {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return Result{}, ErrNoFeasibleDesign
	}

	sort.SliceStable(kept, func(i, j int) bool { return better(kept[i], kept[j]) })
	best := kept[0]
	k := opts.TopK
	if k > len(kept)-1 {
		k = len(kept) - 1
	}
	for _, alt := range kept[1 : 1+k] {
		alt.Alternatives = nil
		best.Alternatives = append(best.Alternatives, alt)
	}
	return best, nil
}

// better orders results: composite desc, then smaller |ΔTm|, then shorter
// total primer length, then leftmost/shortest forward primer for stability.
func better(a, b Result) bool {
	if a.CompositeScore != b.CompositeScore {
		return a.CompositeScore > b.CompositeScore
	}
	da := math.Abs(a.Forward.Tm - a.Reverse.Tm)
	db := math.Abs(b.Forward.Tm - b.Reverse.Tm)
	if da != db {
		return da < db
	}
	la := len(a.Forward.Seq) + len(a.Reverse.Seq)
	lb := len(b.Forward.Seq) + len(b.Reverse.Seq)
	if la != lb {
		return la < lb
	}
	if a.Forward.Start != b.Forward.Start {
		return a.Forward.Start < b.Forward.Start
	}
	return len(a.Forward.Seq) < len(b.Forward.Seq)
}

// strides derives the lattice steps: exhaustive walks stride 1 unless the
// space exceeds MaxCandidates; quick walks a 3× coarser multiple of the
// exhaustive stride, keeping its lattice a strict subset.
func (e *Engine) strides(spec Spec, opts Options) int {
	span := opts.MaxLen - opts.MinLen + 1
	full := span * span
	s := 1
	for full/(s*s) > opts.MaxCandidates {
		s++
	}
	if opts.Exhaustive {
		return s
	}
	q := s * 3
	const quickBudget = 400
	for full/(q*q) > quickBudget {
		q += s * 3
	}
	return q
}

// sliceTpl extracts [i,j) with origin wrap-around when circular.
func sliceTpl(t string, i, j int, circular bool) (string, bool) {
	n := len(t)
	if !circular {
		if i < 0 || j > n || i > j {
			return "", false
		}
		return t[i:j], true
	}
	length := j - i
	if length < 0 || length > n {
		return "", false
	}
	i = ((i % n) + n) % n
	if i+length <= n {
		return t[i : i+length], true
	}
	return t[i:] + t[:i+length-n], true
}

// enumerate produces the candidate lattice for the spec's operation.
func (e *Engine) enumerate(tpl string, spec Spec, opts Options, stride int) []candidate {
	switch {
	case spec.Op == OpAmplify:
		return e.enumerateAmplify(tpl, spec, opts, stride)
	case opts.Strategy == StrategyOverlapping:
		return e.enumerateOverlapping(tpl, spec, opts, stride)
	default:
		return e.enumerateBackToBack(tpl, spec, opts, stride)
	}
}

func (e *Engine) enumerateAmplify(tpl string, spec Spec, opts Options, stride int) []candidate {
	var out []candidate
	for lf := opts.MinLen; lf <= opts.MaxLen; lf += stride {
		fwd, ok := sliceTpl(tpl, spec.Start, spec.Start+lf, opts.Circular)
		if !ok {
			continue
		}
		for lr := opts.MinLen; lr <= opts.MaxLen; lr += stride {
			revRegion, ok := sliceTpl(tpl, spec.End-lr, spec.End, opts.Circular)
			if !ok {
				continue
			}
			out = append(out, candidate{
				fwdSeq:   fwd,
				revSeq:   dna.RevComp(revRegion),
				fwdStart: spec.Start, fwdEnd: spec.Start + lf,
				revStart: spec.End - lr, revEnd: spec.End,
			})
		}
	}
	return out
}

// enumerateBackToBack: the forward primer carries the edit and anneals
// downstream of it; the reverse primer ends flush against the edit's 5'
// side without overlapping it.
func (e *Engine) enumerateBackToBack(tpl string, spec Spec, opts Options, stride int) []candidate {
	edit := spec.edit()
	var out []candidate
	laMin := opts.MinLen - len(edit)
	if laMin < MinPrimerLen {
		laMin = MinPrimerLen
	}
	laMax := opts.MaxLen - len(edit)
	for la := laMin; la <= laMax; la += stride {
		down, ok := sliceTpl(tpl, spec.End, spec.End+la, opts.Circular)
		if !ok {
			continue
		}
		for lb := opts.MinLen; lb <= opts.MaxLen; lb += stride {
			up, ok := sliceTpl(tpl, spec.Start-lb, spec.Start, opts.Circular)
			if !ok {
				continue
			}
			out = append(out, candidate{
				fwdSeq:   edit + down,
				revSeq:   dna.RevComp(up),
				fwdStart: spec.End, fwdEnd: spec.End + la,
				revStart: spec.Start - lb, revEnd: spec.Start,
			})
		}
	}
	return out
}

// enumerateOverlapping: both primers span the edit symmetrically; the
// reverse primer is the exact reverse complement of the forward region.
func (e *Engine) enumerateOverlapping(tpl string, spec Spec, opts Options, stride int) []candidate {
	edit := spec.edit()
	const minFlank = 8
	var out []candidate
	for lu := minFlank; lu+len(edit)+minFlank <= opts.MaxLen; lu += stride {
		up, ok := sliceTpl(tpl, spec.Start-lu, spec.Start, opts.Circular)
		if !ok {
			continue
		}
		for ld := minFlank; lu+len(edit)+ld <= opts.MaxLen; ld += stride {
			total := lu + len(edit) + ld
			if total < opts.MinLen {
				continue
			}
			down, ok := sliceTpl(tpl, spec.End, spec.End+ld, opts.Circular)
			if !ok {
				continue
			}
			fwd := up + edit + down
			out = append(out, candidate{
				fwdSeq:   fwd,
				revSeq:   dna.RevComp(fwd),
				fwdStart: spec.Start - lu, fwdEnd: spec.End + ld,
				revStart: spec.Start - lu, revEnd: spec.End + ld,
			})
		}
	}
	return out
}

// evaluate computes thermodynamics, applies the hard bounds, and scores one
// candidate. Fold and binding failures degrade features to unknown per the
// best-effort enrichment contract.
func (e *Engine) evaluate(tpl string, c candidate, opts Options) (Result, bool) {
	fp, fin, ok := e.profilePrimer(tpl, c.fwdSeq, align.Forward, opts)
	if !ok {
		return Result{}, false
	}
	rp, rin, ok := e.profilePrimer(tpl, c.revSeq, align.Reverse, opts)
	if !ok {
		return Result{}, false
	}
	fp.Start, fp.End = c.fwdStart, c.fwdEnd
	rp.Start, rp.End = c.revStart, c.revEnd

	in := score.PairInput{
		Mode:     opts.Mode,
		TmTarget: opts.TmTarget,
		Fwd:      fin,
		Rev:      rin,
	}
	if het, err := e.Folder.FoldDimer(c.fwdSeq, c.revSeq); err == nil {
		in.HeteroDimerDG = het.DeltaG
		in.HeteroDimerSev = e.Sev.Classify(het, len(c.fwdSeq))
		in.HeteroDimerKnown = true
	}
	in.OffTargets, in.OffTargetsKnown = e.offTargets(tpl, c)

	rep := e.Scorer.Score(in)
	return Result{
		Forward:          fp,
		Reverse:          rp,
		CompositeScore:   rep.Composite,
		EffectiveScore:   rep.Effective,
		QualityTier:      rep.Tier,
		CriticalWarnings: rep.CriticalWarnings,
		Report:           rep,
	}, true
}

// profilePrimer computes one primer's thermodynamic profile and applies the
// hard Tm/GC bounds. Golden-gate and assembly modes measure Tm/GC on the
// annealing region, not the full primer.
func (e *Engine) profilePrimer(tpl, seq string, dir align.Direction, opts Options) (Primer, score.PrimerInput, bool) {
	if len(seq) < MinPrimerLen {
		return Primer{}, score.PrimerInput{}, false
	}
	measured := seq
	if opts.Mode == score.ModeGoldenGate || opts.Mode == score.ModeAssembly {
		if _, region, ok := score.AnnealingRegion(e.Aligner, tpl, seq, dir, opts.Circular); ok {
			measured = region
		}
	}

	p := Primer{Seq: seq, Dir: dir}
	in := score.PrimerInput{Seq: seq, Length: len(seq)}

	if tm, err := e.Calc.Tm(measured); err == nil {
		if tm < opts.TmMin || tm > opts.TmMax {
			return Primer{}, score.PrimerInput{}, false
		}
		p.Tm = tm
		in.Tm = tm
		in.TmKnown = true
	}
	gc := dna.GC(measured)
	if gc < opts.GCMin || gc > opts.GCMax {
		return Primer{}, score.PrimerInput{}, false
	}
	p.GC = gc
	in.GC = gc

	if h, err := e.Folder.Fold(seq); err == nil {
		p.HairpinDG = h.DeltaG
		in.HairpinDG = h.DeltaG
		in.HairpinSev = e.Sev.Classify(h, len(seq))
		in.HairpinKnown = true
	}
	if sd, err := e.Folder.FoldSelf(seq); err == nil {
		p.SelfDimerDG = sd.DeltaG
		in.SelfDimerDG = sd.DeltaG
		in.SelfDimerSev = e.Sev.Classify(sd, len(seq))
		in.SelfDimerKnown = true
	}
	return p, in, true
}

// offTargets counts extra exact binding sites of both annealing footprints
// beyond the intended one each.
func (e *Engine) offTargets(tpl string, c candidate) (int, bool) {
	count := func(start, end int) (int, bool) {
		site, ok := sliceTpl(tpl, start, end, true)
		if !ok || site == "" {
			return 0, false
		}
		n := strings.Count(tpl, site)
		if rc := dna.RevComp(site); rc != site {
			n += strings.Count(tpl, rc)
		}
		if n > 0 {
			n--
		}
		return n, true
	}
	f, okF := count(c.fwdStart, c.fwdEnd)
	r, okR := count(c.revStart, c.revEnd)
	if !okF || !okR {
		return 0, false
	}
	return f + r, true
}
