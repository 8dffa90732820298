// core/design/engine_test.go
package design

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seqfoundry/primedesign/core/dna"
	"github.com/seqfoundry/primedesign/core/score"
)

// testTemplate is a fixed 200 bp sequence at 47.5% GC; every design test
// shares it so coordinates stay meaningful.
const testTemplate = "GCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCG" +
	"CTTAAGGGTTAAGTAAGTGTGATGCATACGCCTTTACTTGCTGTGTCCACCCCATCGGAC" +
	"TGGCATTTTTATTACACTCAGAAACAGAACTCGGGTAATTTTGACAGGTCACGCAGAGGC" +
	"GCGCCCTCCTGAAGTGCGTG"

func mustDesign(t *testing.T, spec Spec, opts Options) Result {
	t.Helper()
	res, err := Default().Design(context.Background(), testTemplate, spec, opts)
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	return res
}

func checkBounds(t *testing.T, res Result, opts Options) {
	t.Helper()
	opts = opts.normalized(OpDelete)
	for _, p := range []Primer{res.Forward, res.Reverse} {
		if len(p.Seq) > opts.MaxLen {
			t.Fatalf("primer %q exceeds max length %d", p.Seq, opts.MaxLen)
		}
		if p.Tm < opts.TmMin || p.Tm > opts.TmMax {
			t.Fatalf("primer Tm %.2f outside [%v,%v]", p.Tm, opts.TmMin, opts.TmMax)
		}
		if p.GC < opts.GCMin || p.GC > opts.GCMax {
			t.Fatalf("primer GC %.2f outside [%v,%v]", p.GC, opts.GCMin, opts.GCMax)
		}
	}
}

func TestDesignDeletion(t *testing.T) {
	spec := Delete(90, 120)
	opts := Options{Exhaustive: true}
	res := mustDesign(t, spec, opts)
	checkBounds(t, res, opts)

	// Back-to-back: the forward primer anneals downstream of the deleted
	// region, the reverse primer flush against its 5' side.
	if res.Forward.Start != 120 {
		t.Fatalf("forward annealing start = %d, want 120", res.Forward.Start)
	}
	if res.Reverse.End != 90 {
		t.Fatalf("reverse annealing end = %d, want 90", res.Reverse.End)
	}
	// With no insert, the footprints reproduce the primers exactly.
	if got := testTemplate[res.Forward.Start:res.Forward.End]; got != res.Forward.Seq {
		t.Fatalf("forward footprint %q != primer %q", got, res.Forward.Seq)
	}
	if got := dna.RevComp(testTemplate[res.Reverse.Start:res.Reverse.End]); got != res.Reverse.Seq {
		t.Fatalf("reverse footprint revcomp %q != primer %q", got, res.Reverse.Seq)
	}

	if res.EffectiveScore > res.CompositeScore {
		t.Fatalf("effective %v above composite %v", res.EffectiveScore, res.CompositeScore)
	}
	if want := score.DefaultTierCuts().Tier(res.CompositeScore); res.QualityTier != want {
		t.Fatalf("tier %q inconsistent with composite %.1f (want %q)", res.QualityTier, res.CompositeScore, want)
	}

	if len(res.Alternatives) == 0 || len(res.Alternatives) > DefaultOptions().TopK {
		t.Fatalf("alternatives = %d, want 1..%d", len(res.Alternatives), DefaultOptions().TopK)
	}
	prev := res.CompositeScore
	for i, alt := range res.Alternatives {
		if alt.CompositeScore > prev {
			t.Fatalf("alternative %d outscores its predecessor: %v > %v", i, alt.CompositeScore, prev)
		}
		prev = alt.CompositeScore
		if alt.Alternatives != nil {
			t.Fatal("alternatives must not nest")
		}
	}
}

func TestDesignAmplify(t *testing.T) {
	spec := Amplify(40, 160)
	opts := Options{Exhaustive: true}
	res := mustDesign(t, spec, opts)
	checkBounds(t, res, opts)

	if res.Forward.Start != 40 {
		t.Fatalf("forward start = %d, want 40", res.Forward.Start)
	}
	if res.Reverse.End != 160 {
		t.Fatalf("reverse end = %d, want 160", res.Reverse.End)
	}
	if got := testTemplate[res.Forward.Start:res.Forward.End]; got != res.Forward.Seq {
		t.Fatalf("forward footprint %q != primer %q", got, res.Forward.Seq)
	}
	if got := dna.RevComp(testTemplate[res.Reverse.Start:res.Reverse.End]); got != res.Reverse.Seq {
		t.Fatalf("reverse footprint revcomp %q != primer %q", got, res.Reverse.Seq)
	}
}

func TestDesignSubstituteOverlapping(t *testing.T) {
	spec := Substitute(99, 102, "GCG")
	opts := Options{Strategy: StrategyOverlapping, Exhaustive: true}
	res := mustDesign(t, spec, opts)
	checkBounds(t, res, opts)

	if !strings.Contains(res.Forward.Seq, "GCG") {
		t.Fatalf("forward primer %q does not carry the edit", res.Forward.Seq)
	}
	if res.Reverse.Seq != dna.RevComp(res.Forward.Seq) {
		t.Fatal("overlapping primers must be exact reverse complements")
	}
	if res.Forward.Start >= 99 || res.Forward.End <= 102 {
		t.Fatalf("overlapping footprint [%d,%d) does not span the edit", res.Forward.Start, res.Forward.End)
	}
}

func TestDesignCircularWraparound(t *testing.T) {
	spec := Amplify(180, 20)
	opts := Options{Circular: true, Exhaustive: true}
	res := mustDesign(t, spec, opts)
	checkBounds(t, res, opts)

	if res.Forward.Start != 180 {
		t.Fatalf("forward start = %d, want 180", res.Forward.Start)
	}
	// The forward footprint wraps the origin.
	lf := len(res.Forward.Seq)
	wrapped := testTemplate[180:]
	if lf <= 20 {
		wrapped = testTemplate[180 : 180+lf]
	} else {
		wrapped += testTemplate[:lf-20]
	}
	if res.Forward.Seq != wrapped {
		t.Fatalf("forward %q does not match wrapped region %q", res.Forward.Seq, wrapped)
	}
}

// The quick lattice is a subset of the exhaustive one, so the exhaustive
// best can never score below the quick best.
func TestExhaustiveAtLeastQuick(t *testing.T) {
	spec := Delete(90, 120)
	quick := mustDesign(t, spec, Options{Exhaustive: false})
	full := mustDesign(t, spec, Options{Exhaustive: true})
	if full.CompositeScore < quick.CompositeScore {
		t.Fatalf("exhaustive %.2f below quick %.2f", full.CompositeScore, quick.CompositeScore)
	}
}

// Negative counts and lengths reachable from CLI flags fall back to the
// defaults instead of corrupting the search.
func TestDesignNegativeOptions(t *testing.T) {
	res, err := Default().Design(context.Background(), testTemplate, Delete(90, 120), Options{
		TopK:          -1,
		MaxCandidates: -5,
		MinLen:        -3,
		MaxLen:        -3,
		Exhaustive:    true,
	})
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if n := len(res.Alternatives); n == 0 || n > DefaultOptions().TopK {
		t.Fatalf("alternatives = %d, want 1..%d", n, DefaultOptions().TopK)
	}
	checkBounds(t, res, Options{})
}

// A 60 bp template with the edit in the middle leaves exactly 20 bases on
// either flank, so every candidate length is pinned against both the template
// edges and the 50 bp minimum.
func TestDesignShortTemplate(t *testing.T) {
	const shortTpl = "CTAGGGGCGCCCCAAAGGTAAACGAACCGTTGCGGTCAATCTTGTCGCGGCTGATGAATT"
	opts := Options{Exhaustive: true}
	res, err := Default().Design(context.Background(), shortTpl, Delete(20, 40), opts)
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	if res.Forward.Start != 40 {
		t.Fatalf("forward annealing start = %d, want 40", res.Forward.Start)
	}
	if res.Reverse.End != 20 {
		t.Fatalf("reverse annealing end = %d, want 20", res.Reverse.End)
	}
	if res.Forward.End > len(shortTpl) {
		t.Fatalf("forward runs past the template: end = %d", res.Forward.End)
	}
	if res.Reverse.Start < 0 {
		t.Fatalf("reverse runs before the template: start = %d", res.Reverse.Start)
	}
	checkBounds(t, res, opts)
}

func TestDesignErrors(t *testing.T) {
	eng := Default()
	ctx := context.Background()

	if _, err := eng.Design(ctx, "ACGTACGT", Delete(1, 2), Options{}); !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("short template: %v", err)
	}
	if _, err := eng.Design(ctx, testTemplate, Delete(150, 900), Options{}); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("out of bounds: %v", err)
	}
	if _, err := eng.Design(ctx, testTemplate, Delete(120, 90), Options{}); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("reversed region on linear template: %v", err)
	}
	if _, err := eng.Design(ctx, testTemplate, Substitute(90, 93, "XYZ"), Options{}); !errors.Is(err, dna.ErrInvalidSequence) {
		t.Fatalf("bad replacement: %v", err)
	}
	if _, err := eng.Design(ctx, testTemplate, Delete(90, 120), Options{MinLen: 30, MaxLen: 20}); !errors.Is(err, ErrNoFeasibleDesign) {
		t.Fatalf("inverted length range: %v", err)
	}
	// Infeasible hard bounds leave no candidate standing.
	if _, err := eng.Design(ctx, testTemplate, Delete(90, 120), Options{TmMin: 95, TmMax: 96}); !errors.Is(err, ErrNoFeasibleDesign) {
		t.Fatalf("impossible Tm window: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := eng.Design(cancelled, testTemplate, Delete(90, 120), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled context: %v", err)
	}
}

func TestSliceTpl(t *testing.T) {
	tpl := "ABCDEFGHIJ"
	tests := []struct {
		name     string
		i, j     int
		circular bool
		want     string
		ok       bool
	}{
		{"linear inner", 2, 5, false, "CDE", true},
		{"linear out of range", 8, 12, false, "", false},
		{"linear negative", -2, 3, false, "", false},
		{"circular wrap", 8, 12, true, "IJAB", true},
		{"circular negative start", -2, 3, true, "IJABC", true},
		{"circular full turn", 0, 10, true, "ABCDEFGHIJ", true},
		{"circular too long", 0, 11, true, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := sliceTpl(tpl, tc.i, tc.j, tc.circular)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("sliceTpl(%d,%d,circ=%v) = (%q,%v), want (%q,%v)",
					tc.i, tc.j, tc.circular, got, ok, tc.want, tc.ok)
			}
		})
	}
}
