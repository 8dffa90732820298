// core/design/analyze.go
// Primer analysis: the read-only half of the engine. Folding and binding
// are best-effort enrichments — when either fails the affected feature is
// reported unknown, never raised, since Tm/GC/length facts stand on their
// own.
package design

import (
	"fmt"
	"math"

	"github.com/seqfoundry/primedesign/core/align"
	"github.com/seqfoundry/primedesign/core/dna"
	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/core/score"
)

// PrimerAnalysis is the full single-primer report.
type PrimerAnalysis struct {
	Seq    string
	Dir    align.Direction
	Length int

	Tm      float64
	TmKnown bool
	TmErr   error

	GC float64

	Hairpin      fold.Result
	HairpinSev   fold.Severity
	HairpinKnown bool

	SelfDimer      fold.Result
	SelfDimerSev   fold.Severity
	SelfDimerKnown bool

	Binding      align.Binding
	BindingKnown bool

	// Tail/annealing split for golden-gate and assembly primers. Known is
	// set only when an exact 3' annealing region was found on the template;
	// those modes then score Tm/GC on the region, never the full primer.
	Tail           string
	AnnealingSeq   string
	AnnealingTm    float64
	AnnealingGC    float64
	AnnealingKnown bool
}

// PairAnalysis is the full primer-pair report against a template.
type PairAnalysis struct {
	Forward PrimerAnalysis
	Reverse PrimerAnalysis

	DeltaTm      float64
	DeltaTmKnown bool

	HeteroDimer      fold.Result
	HeteroDimerSev   fold.Severity
	HeteroDimerKnown bool

	Report score.Report
}

// AnalyzePrimer profiles one primer. template may be empty, in which case
// the binding search is skipped. A Tm failure is recorded on the analysis
// rather than returned, so sibling facts still display.
func (e *Engine) AnalyzePrimer(template, seq string, dir align.Direction) (PrimerAnalysis, error) {
	s, err := dna.Validate(seq)
	if err != nil {
		return PrimerAnalysis{}, err
	}
	if len(s) < MinPrimerLen {
		return PrimerAnalysis{}, fmt.Errorf("%w: primer is %d bp, need at least %d", ErrInputTooShort, len(s), MinPrimerLen)
	}

	a := PrimerAnalysis{Seq: s, Dir: dir, Length: len(s), GC: dna.GC(s)}
	if tm, err := e.Calc.Tm(s); err == nil {
		a.Tm = tm
		a.TmKnown = true
	} else {
		a.TmErr = err
	}
	if h, err := e.Folder.Fold(s); err == nil {
		a.Hairpin = h
		a.HairpinSev = e.Sev.Classify(h, len(s))
		a.HairpinKnown = true
	}
	if sd, err := e.Folder.FoldSelf(s); err == nil {
		a.SelfDimer = sd
		a.SelfDimerSev = e.Sev.Classify(sd, len(s))
		a.SelfDimerKnown = true
	}
	if template != "" {
		if b, err := e.Aligner.Find(align.Request{
			Template:       template,
			Primer:         s,
			Dir:            dir,
			MutationOffset: -1,
		}); err == nil {
			a.Binding = b
			a.BindingKnown = true
		}
	}
	return a, nil
}

// AnalyzePair profiles a primer pair and scores it under the given mode.
// Golden-gate and assembly primers carry non-binding 5' tails, so those
// modes resolve the annealing region first and measure Tm/GC on it.
func (e *Engine) AnalyzePair(template, fwdSeq, revSeq string, mode score.Mode, tmTarget float64) (PairAnalysis, error) {
	var tpl string
	if template != "" {
		t, err := dna.Validate(template)
		if err != nil {
			return PairAnalysis{}, err
		}
		tpl = t
	}
	if mode == "" {
		mode = score.ModeAmplification
	}
	if tmTarget == 0 {
		tmTarget = DefaultOptions().TmTarget
	}

	fwd, err := e.AnalyzePrimer(tpl, fwdSeq, align.Forward)
	if err != nil {
		return PairAnalysis{}, err
	}
	rev, err := e.AnalyzePrimer(tpl, revSeq, align.Reverse)
	if err != nil {
		return PairAnalysis{}, err
	}
	if mode == score.ModeGoldenGate || mode == score.ModeAssembly {
		e.splitAnnealing(tpl, &fwd)
		e.splitAnnealing(tpl, &rev)
	}

	pa := PairAnalysis{Forward: fwd, Reverse: rev}
	fTm, fKnown := scoredTm(fwd)
	rTm, rKnown := scoredTm(rev)
	if fKnown && rKnown {
		pa.DeltaTm = math.Abs(fTm - rTm)
		pa.DeltaTmKnown = true
	}
	if het, err := e.Folder.FoldDimer(fwd.Seq, rev.Seq); err == nil {
		pa.HeteroDimer = het
		pa.HeteroDimerSev = e.Sev.Classify(het, len(fwd.Seq))
		pa.HeteroDimerKnown = true
	}

	in := score.PairInput{
		Mode:     mode,
		TmTarget: tmTarget,
		Fwd:      toScoreInput(fwd),
		Rev:      toScoreInput(rev),
	}
	if pa.HeteroDimerKnown {
		in.HeteroDimerDG = pa.HeteroDimer.DeltaG
		in.HeteroDimerSev = pa.HeteroDimerSev
		in.HeteroDimerKnown = true
	}
	pa.Report = e.Scorer.Score(in)
	return pa, nil
}

// splitAnnealing resolves the 5' tail / 3' annealing-region split of a
// tailed primer against the template.
func (e *Engine) splitAnnealing(tpl string, a *PrimerAnalysis) {
	if tpl == "" {
		return
	}
	tail, region, ok := score.AnnealingRegion(e.Aligner, tpl, a.Seq, a.Dir, false)
	if !ok {
		return
	}
	tm, err := e.Calc.Tm(region)
	if err != nil {
		return
	}
	a.Tail = tail
	a.AnnealingSeq = region
	a.AnnealingTm = tm
	a.AnnealingGC = dna.GC(region)
	a.AnnealingKnown = true
}

// scoredTm returns the Tm the scorer sees: annealing-region Tm when the
// split resolved, full-primer Tm otherwise.
func scoredTm(a PrimerAnalysis) (float64, bool) {
	if a.AnnealingKnown {
		return a.AnnealingTm, true
	}
	return a.Tm, a.TmKnown
}

func toScoreInput(a PrimerAnalysis) score.PrimerInput {
	in := score.PrimerInput{
		Seq:            a.Seq,
		Length:         a.Length,
		Tm:             a.Tm,
		TmKnown:        a.TmKnown,
		GC:             a.GC,
		HairpinDG:      a.Hairpin.DeltaG,
		HairpinSev:     a.HairpinSev,
		HairpinKnown:   a.HairpinKnown,
		SelfDimerDG:    a.SelfDimer.DeltaG,
		SelfDimerSev:   a.SelfDimerSev,
		SelfDimerKnown: a.SelfDimerKnown,
	}
	if a.AnnealingKnown {
		in.Tm = a.AnnealingTm
		in.TmKnown = true
		in.GC = a.AnnealingGC
	}
	return in
}
