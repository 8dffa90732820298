// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/core/fold"
)

// WriteDesignText prints the best pair first, then alternatives, one TSV
// row each under DesignTSVHeader.
func WriteDesignText(w io.Writer, r design.Result) error {
	if _, err := fmt.Fprintln(w, DesignTSVHeader); err != nil {
		return err
	}
	if err := writeDesignRow(w, 0, r); err != nil {
		return err
	}
	for i, alt := range r.Alternatives {
		if err := writeDesignRow(w, i+1, alt); err != nil {
			return err
		}
	}
	return nil
}

func writeDesignRow(w io.Writer, rank int, r design.Result) error {
	_, err := fmt.Fprintf(w,
		"%d\t%s\t%.1f\t%s\t%.1f\t%.1f\t%.1f\t%s\t%d\n",
		rank,
		r.Forward.Seq, r.Forward.Tm,
		r.Reverse.Seq, r.Reverse.Tm,
		r.CompositeScore, r.EffectiveScore,
		r.QualityTier, r.CriticalWarnings,
	)
	return err
}

// WriteBatchText prints one block per item; failures become a single
// commented line so downstream TSV parsers can skip them.
func WriteBatchText(w io.Writer, items []design.BatchItem) error {
	if _, err := fmt.Fprintln(w, "index\t"+DesignTSVHeader); err != nil {
		return err
	}
	for _, it := range items {
		if !it.OK() {
			if _, err := fmt.Fprintf(w, "# item %d failed: %v\n", it.Index, it.Err); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%d\t", it.Index); err != nil {
			return err
		}
		if err := writeDesignRow(w, 0, it.Result); err != nil {
			return err
		}
	}
	return nil
}

// WritePrimerAnalysisText prints one TSV row under AnalysisTSVHeader.
// Unknown fields print as ".".
func WritePrimerAnalysisText(w io.Writer, a design.PrimerAnalysis) error {
	if _, err := fmt.Fprintln(w, AnalysisTSVHeader); err != nil {
		return err
	}
	tm, hp, sd, bind := ".", ".", ".", "."
	if a.TmKnown {
		tm = fmt.Sprintf("%.1f", a.Tm)
	}
	if a.HairpinKnown {
		hp = fmt.Sprintf("%.2f", a.Hairpin.DeltaG)
	}
	if a.SelfDimerKnown {
		sd = fmt.Sprintf("%.2f", a.SelfDimer.DeltaG)
	}
	if a.BindingKnown {
		bind = fmt.Sprintf("%d-%d/%s", a.Binding.Start, a.Binding.End, a.Binding.Method)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.2f\t%s\t%s\t%s\n",
		a.Seq, a.Dir, a.Length, tm, a.GC, hp, sd, bind)
	return err
}

// WriteFoldText prints the dot-bracket view with its energy and class.
func WriteFoldText(w io.Writer, seq string, r fold.Result, sev fold.Severity) error {
	if r.Cut > 0 && r.Cut <= len(seq) {
		seq = seq[:r.Cut] + "+" + seq[r.Cut:]
	}
	_, err := fmt.Fprintf(w, "%s\n%s\ndG = %.2f kcal/mol (%s)\n",
		seq, r.DotBracket, r.DeltaG, sev)
	return err
}
