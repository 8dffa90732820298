// internal/output/convert.go
package output

import (
	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/core/score"
	"github.com/seqfoundry/primedesign/pkg/api"
)

// ToAPIPrimer converts a domain Primer to the stable wire schema (v1).
func ToAPIPrimer(p design.Primer) api.PrimerV1 {
	return api.PrimerV1{
		Seq:         p.Seq,
		Dir:         p.Dir.String(),
		Start:       p.Start,
		End:         p.End,
		Tm:          p.Tm,
		GC:          p.GC,
		HairpinDG:   p.HairpinDG,
		SelfDimerDG: p.SelfDimerDG,
	}
}

func toAPIFeatures(fs []score.Feature) []api.FeatureV1 {
	if len(fs) == 0 {
		return nil
	}
	out := make([]api.FeatureV1, 0, len(fs))
	for _, f := range fs {
		out = append(out, api.FeatureV1{
			Name:     f.Name,
			Value:    f.Value,
			Score:    f.Score,
			Severity: f.Severity,
			Known:    f.Known,
			Critical: f.Critical,
		})
	}
	return out
}

// ToAPIDesignResult converts a design outcome, alternatives included.
func ToAPIDesignResult(r design.Result) api.DesignResultV1 {
	v := api.DesignResultV1{
		Forward:          ToAPIPrimer(r.Forward),
		Reverse:          ToAPIPrimer(r.Reverse),
		CompositeScore:   r.CompositeScore,
		EffectiveScore:   r.EffectiveScore,
		QualityTier:      r.QualityTier,
		CriticalWarnings: r.CriticalWarnings,
		Features:         toAPIFeatures(r.Report.Features),
	}
	for _, alt := range r.Alternatives {
		v.Alternatives = append(v.Alternatives, ToAPIDesignResult(alt))
	}
	return v
}

// ToAPIBatch converts batch items; failed items carry the error string and
// a nil result so the index mapping survives the wire.
func ToAPIBatch(items []design.BatchItem) []api.BatchItemV1 {
	out := make([]api.BatchItemV1, 0, len(items))
	for _, it := range items {
		v := api.BatchItemV1{Index: it.Index, Success: it.OK()}
		if it.OK() {
			r := ToAPIDesignResult(it.Result)
			v.Result = &r
		} else {
			v.Error = it.Err.Error()
		}
		out = append(out, v)
	}
	return out
}

// ToAPIFold converts a fold prediction plus its classified severity.
func ToAPIFold(r fold.Result, sev fold.Severity) api.FoldV1 {
	return api.FoldV1{
		DeltaG:     r.DeltaG,
		Pairs:      append([][2]int(nil), r.Pairs...),
		DotBracket: r.DotBracket,
		Severity:   sev.String(),
	}
}

// ToAPIPrimerAnalysis converts a single-primer report. Unknown features map
// to nil pointers so degraded analyses stay distinguishable from zeros.
func ToAPIPrimerAnalysis(a design.PrimerAnalysis) api.PrimerAnalysisV1 {
	v := api.PrimerAnalysisV1{
		Seq:    a.Seq,
		Dir:    a.Dir.String(),
		Length: a.Length,
		GC:     a.GC,
	}
	if a.TmKnown {
		tm := a.Tm
		v.Tm = &tm
	}
	if a.HairpinKnown {
		f := ToAPIFold(a.Hairpin, a.HairpinSev)
		v.Hairpin = &f
	}
	if a.SelfDimerKnown {
		f := ToAPIFold(a.SelfDimer, a.SelfDimerSev)
		v.SelfDimer = &f
	}
	if a.BindingKnown {
		v.Binding = &api.BindingV1{
			Start:       a.Binding.Start,
			End:         a.Binding.End,
			MatchLength: a.Binding.MatchLength,
			Score:       a.Binding.Score,
			Method:      string(a.Binding.Method),
		}
	}
	if a.AnnealingKnown {
		v.Annealing = &api.AnnealingV1{
			Tail:   a.Tail,
			Region: a.AnnealingSeq,
			Tm:     a.AnnealingTm,
			GC:     a.AnnealingGC,
		}
	}
	return v
}

// ToAPIPairAnalysis converts a pair report with its score breakdown.
func ToAPIPairAnalysis(a design.PairAnalysis) api.PairAnalysisV1 {
	v := api.PairAnalysisV1{
		Forward:          ToAPIPrimerAnalysis(a.Forward),
		Reverse:          ToAPIPrimerAnalysis(a.Reverse),
		CompositeScore:   a.Report.Composite,
		EffectiveScore:   a.Report.Effective,
		QualityTier:      a.Report.Tier,
		CriticalWarnings: a.Report.CriticalWarnings,
		Features:         toAPIFeatures(a.Report.Features),
	}
	if a.DeltaTmKnown {
		d := a.DeltaTm
		v.DeltaTm = &d
	}
	if a.HeteroDimerKnown {
		f := ToAPIFold(a.HeteroDimer, a.HeteroDimerSev)
		v.HeteroDimer = &f
	}
	return v
}
