// core/thermo/calc_test.go
package thermo

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/seqfoundry/primedesign/core/dna"
)

func TestTmKnownValues(t *testing.T) {
	c := Default() // 50 mM Na+, 500 nM primer

	tests := []struct {
		name string
		seq  string
		want float64
	}{
		{"mixed 20-mer", "AGCGTAAGCTGGGATCAAGC", 57.759},
		{"repeat 20-mer", "ACGTACGTACGTACGTACGT", 56.990},
		{"AT-only 20-mer", "ATATATATATATATATATAT", 28.141},
		{"GC-only 20-mer", "GCGCGCGCGCGCGCGCGCGC", 80.905},
		{"mixed 12-mer", "AGCGTAAGCTGG", 41.260},
		{"self-complementary", "AAAAAAAAAATTTTTTTTTT", 38.792},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Tm(tc.seq)
			if err != nil {
				t.Fatalf("Tm(%q): %v", tc.seq, err)
			}
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("Tm(%q) = %.3f, want %.3f", tc.seq, got, tc.want)
			}
		})
	}
}

func TestTmInputHandling(t *testing.T) {
	c := Default()

	// Whitespace and case are cleaned before calculation.
	a, err := c.Tm("agcgtaagctgggatcaagc")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Tm(" AGCGTAAGCT GGGATCAAGC\n")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("cleaned inputs disagree: %v vs %v", a, b)
	}

	for _, bad := range []string{"", "A", "ACGN", "ACGU"} {
		if _, err := c.Tm(bad); !errors.Is(err, dna.ErrInvalidSequence) {
			t.Fatalf("Tm(%q): want ErrInvalidSequence, got %v", bad, err)
		}
	}
}

func TestTmSaltMonotonic(t *testing.T) {
	seq := "AGCGTAAGCTGGGATCAAGC"
	lo := New(SantaLucia2004(), Conditions{NaM: 0.05, PrimerTotalM: 5e-7, AnnealC: 37})
	hi := New(SantaLucia2004(), Conditions{NaM: 0.1, PrimerTotalM: 5e-7, AnnealC: 37})

	tmLo, err := lo.Tm(seq)
	if err != nil {
		t.Fatal(err)
	}
	tmHi, err := hi.Tm(seq)
	if err != nil {
		t.Fatal(err)
	}
	if tmHi <= tmLo {
		t.Fatalf("Tm should rise with salt: %.2f at 50mM vs %.2f at 100mM", tmLo, tmHi)
	}
	if math.Abs(tmHi-61.192) > 0.01 {
		t.Fatalf("Tm at 100mM = %.3f, want 61.192", tmHi)
	}
}

func TestTmDeterministic(t *testing.T) {
	c := Default()
	rapid.Check(t, func(t *rapid.T) {
		seq := rapid.StringMatching(`[ACGT]{8,35}`).Draw(t, "seq")
		a, err := c.Tm(seq)
		if err != nil {
			t.Fatalf("Tm(%q): %v", seq, err)
		}
		b, _ := c.Tm(seq)
		if a != b {
			t.Fatalf("Tm(%q) not deterministic: %v vs %v", seq, a, b)
		}
	})
}

func TestTmGCExtremes(t *testing.T) {
	c := Default()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(10, 30).Draw(t, "n")
		at := make([]byte, n)
		gc := make([]byte, n)
		for i := range at {
			at[i] = 'A'
			gc[i] = 'G'
		}
		tmAT, err := c.Tm(string(at))
		if err != nil {
			t.Fatal(err)
		}
		tmGC, err := c.Tm(string(gc))
		if err != nil {
			t.Fatal(err)
		}
		if tmGC <= tmAT {
			t.Fatalf("n=%d: poly-G Tm %.2f not above poly-A Tm %.2f", n, tmGC, tmAT)
		}
	})
}

// Raising GC at one position of a random sequence never lowers Tm: every
// G/C-containing stack is at least as stable as its A/T counterpart, so the
// property holds across arbitrary neighbor contexts, not just homopolymers.
func TestTmGCMonotonicRandomContext(t *testing.T) {
	c := Default()
	rapid.Check(t, func(t *rapid.T) {
		seq := []byte(rapid.StringMatching(`[ACGT]{10,30}`).Draw(t, "seq"))
		i := rapid.IntRange(0, len(seq)-1).Draw(t, "pos")
		if seq[i] != 'A' && seq[i] != 'T' {
			t.Skip("position already G/C")
		}
		lower, err := c.Tm(string(seq))
		if err != nil {
			t.Fatal(err)
		}
		sub := rapid.SampledFrom([]byte{'G', 'C'}).Draw(t, "sub")
		seq[i] = sub
		higher, err := c.Tm(string(seq))
		if err != nil {
			t.Fatal(err)
		}
		if higher < lower-1e-9 {
			t.Fatalf("Tm dropped from %.4f to %.4f after %c substitution at %d in %s",
				lower, higher, sub, i, seq)
		}
	})
}

func TestTmDetailTerms(t *testing.T) {
	c := Default()
	r, err := c.TmDetail("AGCGTAAGCTGGGATCAAGC")
	if err != nil {
		t.Fatal(err)
	}
	if r.DHkcal >= 0 || r.DScal >= 0 {
		t.Fatalf("duplex formation must be exothermic: dH=%v dS=%v", r.DHkcal, r.DScal)
	}
	if r.DSNa <= r.DScal {
		t.Fatalf("salt correction at 50mM must raise dS toward zero: %v -> %v", r.DScal, r.DSNa)
	}
}

func TestParseConc(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"50mM", 0.05, false},
		{"500nM", 5e-7, false},
		{"0.5uM", 5e-7, false},
		{"1M", 1.0, false},
		{"fifty", 0, true},
		{"10kg", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseConc(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseConc(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseConc(%q): %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > tc.want*1e-9 {
			t.Fatalf("ParseConc(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEffectiveMonovalent(t *testing.T) {
	c := Conditions{NaM: 0.05, MgM: 0.0025}
	if got := c.EffectiveMonovalent(); got != 0.05 {
		t.Fatalf("Mg transform off: got %v, want 0.05", got)
	}
	c.MgAsMonovalent = true
	want := 0.05 + 3.8*math.Sqrt(0.0025)
	if got := c.EffectiveMonovalent(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Mg transform on: got %v, want %v", got, want)
	}
}

func TestDeltaGAt(t *testing.T) {
	// dG = dH - T*dS/1000 at 37°C.
	got := DeltaGAt(-10, -25, 37)
	want := -10 + 310.15*25/1000
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("DeltaGAt = %v, want %v", got, want)
	}
}
