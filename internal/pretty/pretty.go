// internal/pretty/pretty.go
// ASCII rendering of a designed primer pair on its template. The interior
// between the two annealing sites is capped with dots so long amplicons stay
// readable on a terminal.
package pretty

import (
	"fmt"
	"strings"

	"github.com/seqfoundry/primedesign/core/design"
)

// Options control the rendering.
type Options struct {
	// MaxGap caps the dotted interior between the two footprints.
	MaxGap int

	BarGlyph string
	DotGlyph string
}

// DefaultOptions matches the default terminal look.
var DefaultOptions = Options{
	MaxGap:   60,
	BarGlyph: "|",
	DotGlyph: ".",
}

const margin = 3 // width of the "5'-" / "3'-" sequence block prefix

// RenderDesign draws one scored pair against its template and appends the
// score summary. tpl must be the normalized template the pair was designed
// on; footprint coordinates index into it.
func RenderDesign(tpl string, r design.Result, o Options) string {
	if o.MaxGap <= 0 {
		o.MaxGap = DefaultOptions.MaxGap
	}
	if o.BarGlyph == "" {
		o.BarGlyph = DefaultOptions.BarGlyph
	}
	if o.DotGlyph == "" {
		o.DotGlyph = DefaultOptions.DotGlyph
	}

	fwd, rev := r.Forward, r.Reverse
	left, right := fwd, rev
	if rev.Start < fwd.Start {
		left, right = rev, fwd
	}
	wStart := left.Start
	wEnd := right.End
	if left.End > wEnd {
		wEnd = left.End
	}
	if wStart < 0 || wEnd > len(tpl) || wStart >= wEnd {
		return scoreLine(r) + "\n"
	}

	// Column mapping: template positions left of the gap map directly;
	// positions right of it shift by the dots compression.
	gapStart, gapEnd := left.End, right.Start
	var tplLine string
	col := func(pos int) int { return pos - wStart }
	if gapEnd > gapStart {
		gap := gapEnd - gapStart
		shown := gap
		if shown > o.MaxGap {
			shown = o.MaxGap
		}
		tplLine = tpl[wStart:gapStart] + strings.Repeat(o.DotGlyph, shown) + tpl[gapEnd:wEnd]
		col = func(pos int) int {
			if pos <= gapStart {
				return pos - wStart
			}
			return (gapStart - wStart) + shown + (pos - gapEnd)
		}
	} else {
		tplLine = tpl[wStart:wEnd]
	}

	var b strings.Builder

	writeBars := func(p design.Primer) {
		fmt.Fprintf(&b, "%s%s\n",
			strings.Repeat(" ", margin+col(p.Start)),
			strings.Repeat(o.BarGlyph, col(p.End)-col(p.Start)))
	}

	// Forward primer reads 5'->3' left to right; the reverse primer is
	// drawn 3'->5' so its bases line up with the plus strand.
	fmt.Fprintf(&b, "%s5'-%s-3'  forward %.1fC\n",
		strings.Repeat(" ", col(fwd.Start)), fwd.Seq, fwd.Tm)
	writeBars(fwd)
	fmt.Fprintf(&b, "%s%s  template %d..%d\n", strings.Repeat(" ", margin), tplLine, wStart, wEnd)
	writeBars(rev)
	fmt.Fprintf(&b, "%s3'-%s-5'  reverse %.1fC\n",
		strings.Repeat(" ", col(rev.Start)), reverse(rev.Seq), rev.Tm)

	b.WriteString(scoreLine(r))
	b.WriteByte('\n')
	return b.String()
}

func scoreLine(r design.Result) string {
	return fmt.Sprintf("composite %.1f  effective %.1f  tier %s  criticals %d",
		r.CompositeScore, r.EffectiveScore, r.QualityTier, r.CriticalWarnings)
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
