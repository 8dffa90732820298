// core/align/align_test.go
package align

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/seqfoundry/primedesign/core/dna"
)

func find(t *testing.T, req Request) Binding {
	t.Helper()
	b, err := Aligner{}.Find(req)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	return b
}

func TestFindHint(t *testing.T) {
	tpl := "ACGTACGTACGTACGTACGT"
	b := find(t, Request{
		Template:       tpl,
		Primer:         "ACGTACGT",
		Hint:           &Span{Start: 4, End: 12},
		MutationOffset: -1,
	})
	if b.Method != MethodHint || b.Start != 4 || b.End != 12 || b.Score != 1.0 {
		t.Fatalf("hint binding = %+v", b)
	}
}

func TestFindExactForward(t *testing.T) {
	primer := "GATTACAGATTACAGG"
	tpl := "AAAA" + primer + "TTTT"
	b := find(t, Request{Template: tpl, Primer: primer, Dir: Forward, MutationOffset: -1})
	if b.Method != MethodExact {
		t.Fatalf("method = %s, want exact", b.Method)
	}
	if b.Start != 4 || b.End != 4+len(primer) {
		t.Fatalf("span = [%d,%d), want [4,%d)", b.Start, b.End, 4+len(primer))
	}
	if b.Score != 1.0 || b.MatchLength != len(primer) {
		t.Fatalf("score=%v matchLen=%d", b.Score, b.MatchLength)
	}
}

func TestFindExactReverse(t *testing.T) {
	site := "GATTACAGATTACAGG"
	tpl := "AAAA" + site + "TTTT"
	// A reverse primer is given 5'→3' on the minus strand.
	b := find(t, Request{Template: tpl, Primer: dna.RevComp(site), Dir: Reverse, MutationOffset: -1})
	if b.Method != MethodExact || b.Start != 4 || b.End != 4+len(site) {
		t.Fatalf("reverse binding = %+v", b)
	}
}

// Any primer cut verbatim from a template must be found exactly at its
// source position when that slice is unique.
func TestFindExactProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		primer := rapid.StringMatching(`[ACGT]{15,25}`).Draw(t, "primer")
		tpl := strings.Repeat("A", 20) + primer + strings.Repeat("T", 20)
		if strings.Count(tpl, primer) != 1 {
			t.Skip("embedded slice not unique")
		}
		b, err := Aligner{}.Find(Request{Template: tpl, Primer: primer, Dir: Forward, MutationOffset: -1})
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if b.Method != MethodExact || b.Start != 20 {
			t.Fatalf("binding = %+v, want exact at 20", b)
		}
	})
}

func TestFindExactCircular(t *testing.T) {
	tpl := "CAGGTTTTTTTTTTTTTTTTGATTA"
	primer := "GATTACAGG" // spans the origin
	b := find(t, Request{Template: tpl, Circular: true, Primer: primer, Dir: Forward, MutationOffset: -1})
	if b.Method != MethodExact || b.Start != 20 {
		t.Fatalf("circular binding = %+v, want exact start 20", b)
	}

	// The same primer must not match on a linear template.
	if _, err := (Aligner{}).Find(Request{Template: tpl, Primer: primer, Dir: Forward, MutationOffset: -1}); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("linear search: want ErrBindingNotFound, got %v", err)
	}
}

func TestFindMutationAnchor(t *testing.T) {
	tpl := "GCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCG"
	// A mutagenic primer whose middle diverges from the template entirely:
	// 10 matching bases 5' of the edit at offset 20, then foreign sequence.
	primer := tpl[10:20] + "GGGGGGGGGG"
	b := find(t, Request{Template: tpl, Primer: primer, Dir: Forward, MutationOffset: 20})
	if b.Method != MethodMutationAnchor {
		t.Fatalf("method = %s, want mutation-anchor", b.Method)
	}
	if b.Start != 10 || b.End != 30 {
		t.Fatalf("span = [%d,%d), want [10,30)", b.Start, b.End)
	}
	if b.Score != 0.85 {
		t.Fatalf("score = %v, want 0.85", b.Score)
	}
}

func TestFindDualAnchor(t *testing.T) {
	tpl := "GCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCG"
	// Both halves match the template, one base substituted in the middle.
	region := tpl[20:40]
	primer := region[:9] + string(flip(region[9])) + region[10:]
	b := find(t, Request{Template: tpl, Primer: primer, Dir: Forward, MutationOffset: -1})
	if b.Method != MethodDualAnchor {
		t.Fatalf("method = %s, want dual-anchor", b.Method)
	}
	if b.Start != 20 || b.End != 40 {
		t.Fatalf("span = [%d,%d), want [20,40)", b.Start, b.End)
	}
	if b.Score <= 0 || b.Score > 1 {
		t.Fatalf("score = %v out of (0,1]", b.Score)
	}
}

func TestFindThreePrimeAnchor(t *testing.T) {
	tpl := "GCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCG"
	// Foreign 5' half, template-matching 3' half: the 5' tail places exact
	// and dual-anchor out of reach.
	primer := "GGGGGGGGGG" + tpl[30:40]
	b := find(t, Request{Template: tpl, Primer: primer, Dir: Forward, MutationOffset: -1})
	if b.Method != MethodThreePrime {
		t.Fatalf("method = %s, want three-prime-anchor", b.Method)
	}
	if b.Start != 20 || b.End != 40 {
		t.Fatalf("span = [%d,%d), want [20,40)", b.Start, b.End)
	}
	if b.MatchLength != 10 {
		t.Fatalf("matchLen = %d, want 10", b.MatchLength)
	}
}

func TestFindWeightedScan(t *testing.T) {
	tpl := "GCTAAAGACAATTACATAACATACACGTCAGCACGAAACTTGTTGGCCCAGTGTGAATCG"
	// Scattered substitutions in the 5' half defeat the anchors; the 3'
	// window keeps at least 7/10 matches so the scan accepts.
	region := tpl[20:40]
	p := []byte(region)
	for _, i := range []int{1, 4, 7, 11, 13} {
		p[i] = flip(p[i])
	}
	b := find(t, Request{Template: tpl, Primer: string(p), Dir: Forward, MutationOffset: -1})
	if b.Method != MethodWeightedScan {
		t.Fatalf("method = %s, want weighted-scan", b.Method)
	}
	if b.Start != 20 || b.End != 40 {
		t.Fatalf("span = [%d,%d), want [20,40)", b.Start, b.End)
	}
	if b.MatchLength != 15 {
		t.Fatalf("matchLen = %d, want 15", b.MatchLength)
	}
	// 8 of the 10 terminal-window bases match and count double.
	want := float64(15+8) / float64(20+10)
	if b.Score != want {
		t.Fatalf("score = %v, want %v", b.Score, want)
	}
}

// A placement whose 3'-terminal window keeps fewer than 7/10 matches can
// never extend and must be rejected. The template equals the primer length
// so exactly one placement exists.
func TestWeightedScanTerminalCutoff(t *testing.T) {
	tpl := "ATACACGTCAGCACGAAACT"
	p := []byte(tpl)
	for _, i := range []int{12, 13, 15, 17, 19} { // 5 terminal matches left
		p[i] = flip(p[i])
	}
	// Break the 5' half too so no anchor strategy rescues it.
	for _, i := range []int{1, 4, 7} {
		p[i] = flip(p[i])
	}
	_, err := Aligner{}.Find(Request{Template: tpl, Primer: string(p), Dir: Forward, MutationOffset: -1})
	if !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("want ErrBindingNotFound, got %v", err)
	}
}

func TestFindEmptyInputs(t *testing.T) {
	if _, err := (Aligner{}).Find(Request{Template: "", Primer: "ACGT"}); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("empty template: %v", err)
	}
	if _, err := (Aligner{}).Find(Request{Template: "ACGT", Primer: ""}); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("empty primer: %v", err)
	}
}

// flip substitutes a base with a non-complementary other base.
func flip(b byte) byte {
	switch b {
	case 'A':
		return 'C'
	case 'C':
		return 'A'
	case 'G':
		return 'T'
	default:
		return 'G'
	}
}
