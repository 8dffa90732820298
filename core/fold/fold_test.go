// core/fold/fold_test.go
package fold

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestFoldNoStructure(t *testing.T) {
	f := Default()
	for _, seq := range []string{"AAAAAAAAAAAA", "ACTGACTG", "GGGGGGGGGG"} {
		r, err := f.Fold(seq)
		if err != nil {
			t.Fatalf("Fold(%q): %v", seq, err)
		}
		if r.DeltaG != 0 {
			t.Fatalf("Fold(%q) dG = %v, want 0", seq, r.DeltaG)
		}
		if len(r.Pairs) != 0 {
			t.Fatalf("Fold(%q) pairs = %v, want none", seq, r.Pairs)
		}
		if r.DotBracket != strings.Repeat(".", len(seq)) {
			t.Fatalf("Fold(%q) dot-bracket = %q", seq, r.DotBracket)
		}
	}
}

func TestFoldHairpin(t *testing.T) {
	f := Default()
	r, err := f.Fold("GCGCGCAAAAGCGCGC")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.DeltaG-(-5.425)) > 0.01 {
		t.Fatalf("hairpin dG = %.3f, want -5.425", r.DeltaG)
	}
	if r.DotBracket != "((((((....))))))" {
		t.Fatalf("dot-bracket = %q", r.DotBracket)
	}
	wantPairs := [][2]int{{0, 15}, {1, 14}, {2, 13}, {3, 12}, {4, 11}, {5, 10}}
	if !reflect.DeepEqual(r.Pairs, wantPairs) {
		t.Fatalf("pairs = %v, want %v", r.Pairs, wantPairs)
	}
	if r.Cut != 0 {
		t.Fatalf("single-strand Cut = %d, want 0", r.Cut)
	}
}

// A short GC stem cannot pay for its loop penalty: the model reports no
// structure rather than a positive-energy one.
func TestFoldSubthresholdStem(t *testing.T) {
	r, err := Default().Fold("GGGGAAAACCCC")
	if err != nil {
		t.Fatal(err)
	}
	if r.DeltaG != 0 || len(r.Pairs) != 0 {
		t.Fatalf("weak stem: dG=%v pairs=%v, want none", r.DeltaG, r.Pairs)
	}
}

func TestFoldDimerPerfect(t *testing.T) {
	f := Default()
	r, err := f.FoldDimer("ACGTGCCA", "TGGCACGT")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.DeltaG-(-10.081)) > 0.01 {
		t.Fatalf("duplex dG = %.3f, want -10.081", r.DeltaG)
	}
	if r.Cut != 8 {
		t.Fatalf("Cut = %d, want 8", r.Cut)
	}
	if r.DotBracket != "((((((((+))))))))" {
		t.Fatalf("dot-bracket = %q", r.DotBracket)
	}
	if len(r.Pairs) != 8 {
		t.Fatalf("pairs = %v, want 8 pairs", r.Pairs)
	}
}

// The junction loop is exempt from the hairpin minimum: two 4-mers can form
// a full intermolecular duplex.
func TestFoldDimerJunctionExempt(t *testing.T) {
	r, err := Default().FoldDimer("AAAA", "TTTT")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.DeltaG-(-1.014)) > 0.01 {
		t.Fatalf("AT duplex dG = %.3f, want -1.014", r.DeltaG)
	}
	if r.DotBracket != "((((+))))" {
		t.Fatalf("dot-bracket = %q", r.DotBracket)
	}
}

func TestFoldSelf(t *testing.T) {
	r, err := Default().FoldSelf("AGCGTAAGCTGGGATCAAGC")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.DeltaG-(-5.173)) > 0.01 {
		t.Fatalf("self-dimer dG = %.3f, want -5.173", r.DeltaG)
	}
	if r.Cut != 20 {
		t.Fatalf("Cut = %d, want 20", r.Cut)
	}
}

func TestFoldDeterministic(t *testing.T) {
	f := Default()
	a, err := f.Fold("GCGCGCAAAAGCGCGC")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Fold("GCGCGCAAAAGCGCGC")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated folds differ: %+v vs %+v", a, b)
	}
}

func TestFoldInputLimits(t *testing.T) {
	f := Default()
	long := strings.Repeat("ACGT", 51) // 204 bases
	if _, err := f.Fold(long); !errors.Is(err, ErrSequenceTooLong) {
		t.Fatalf("want ErrSequenceTooLong, got %v", err)
	}
	if _, err := f.FoldDimer(long[:150], long[:150]); !errors.Is(err, ErrSequenceTooLong) {
		t.Fatalf("dimer: want ErrSequenceTooLong, got %v", err)
	}
	if _, err := f.Fold("ACGN"); err == nil {
		t.Fatal("invalid base must error")
	}
}
