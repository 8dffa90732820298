// core/align/align.go
// Primer-to-template binding search: an ordered fallback cascade of pure
// strategies, tried in strict priority with short-circuit on first success.
// Each Binding records which level produced it; results from different
// levels are never blended.
package align

import (
	"errors"
	"strings"

	"github.com/seqfoundry/primedesign/core/dna"
)

// ErrBindingNotFound is returned when the whole cascade is exhausted. It is
// non-fatal: callers degrade the affected feature rather than abort.
var ErrBindingNotFound = errors.New("primer binding not found on template")

// Direction of a primer relative to the template's plus strand.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Method tags which cascade level succeeded.
type Method string

const (
	MethodHint           Method = "hint"
	MethodExact          Method = "exact"
	MethodMutationAnchor Method = "mutation-anchor"
	MethodDualAnchor     Method = "dual-anchor"
	MethodThreePrime     Method = "three-prime-anchor"
	MethodWeightedScan   Method = "weighted-scan"
)

// Span is a half-open [Start,End) template interval.
type Span struct {
	Start, End int
}

// Request describes one binding search.
type Request struct {
	Template string
	Circular bool
	Primer   string
	Dir      Direction
	// Hint short-circuits the cascade with a caller-known placement.
	Hint *Span
	// MutationOffset, when >= 0, flags a mutagenesis primer whose edit
	// starts at this template offset, enabling the anchor heuristic.
	MutationOffset int
}

// Binding is a located primer placement. Score ∈ [0,1].
type Binding struct {
	Start       int
	End         int
	MatchLength int
	Score       float64
	Method      Method
}

// Aligner runs the cascade. It is stateless and safe for concurrent use.
type Aligner struct{}

// Fixed flank assumptions for the mutation-anchor heuristic (level 3): a
// forward mutagenic primer is assumed to begin this many bases 5' of the
// edit; a reverse primer is assumed to end flush at the edit. This is an
// acknowledged approximation carried over from the original cascade, not a
// guaranteed placement.
const (
	mutFlankForward = 10
	minAnchor       = 8
	scanWindow      = 10
	scanWindowMin   = 7
)

type strategy struct {
	method Method
	find   func(Request, string) (Binding, bool)
}

// Find locates the primer on the template, trying each level in order and
// returning the first success.
func (Aligner) Find(req Request) (Binding, error) {
	if len(req.Primer) == 0 || len(req.Template) == 0 {
		return Binding{}, ErrBindingNotFound
	}
	// The search sequence is the primer as it lies on the plus strand.
	search := req.Primer
	if req.Dir == Reverse {
		search = dna.RevComp(req.Primer)
	}

	cascade := []strategy{
		{MethodHint, findHint},
		{MethodExact, findExact},
		{MethodMutationAnchor, findMutationAnchor},
		{MethodDualAnchor, findDualAnchor},
		{MethodThreePrime, findThreePrimeAnchor},
		{MethodWeightedScan, findWeightedScan},
	}
	for _, s := range cascade {
		if b, ok := s.find(req, search); ok {
			b.Method = s.method
			return b, nil
		}
	}
	return Binding{}, ErrBindingNotFound
}

func findHint(req Request, search string) (Binding, bool) {
	h := req.Hint
	if h == nil || h.Start < 0 || h.End <= h.Start || h.End > len(req.Template) {
		return Binding{}, false
	}
	return Binding{Start: h.Start, End: h.End, MatchLength: h.End - h.Start, Score: 1.0}, true
}

func findExact(req Request, search string) (Binding, bool) {
	tpl := req.Template
	limit := len(tpl)
	if req.Circular && len(search) > 1 {
		// Allow matches crossing the origin.
		tpl = tpl + tpl[:len(search)-1]
	}
	i := strings.Index(tpl, search)
	if i < 0 || i >= limit {
		return Binding{}, false
	}
	return Binding{Start: i, End: i + len(search), MatchLength: len(search), Score: 1.0}, true
}

func findMutationAnchor(req Request, search string) (Binding, bool) {
	if req.MutationOffset < 0 {
		return Binding{}, false
	}
	n := len(search)
	var start int
	if req.Dir == Forward {
		start = req.MutationOffset - mutFlankForward
	} else {
		// Reverse mutagenic primers are assumed to anneal flush against
		// the edit on its 5' side.
		start = req.MutationOffset - n
	}
	if start < 0 || start+n > len(req.Template) {
		return Binding{}, false
	}
	return Binding{Start: start, End: start + n, MatchLength: n, Score: 0.85}, true
}

// occurrences returns every start index of pat in s, overlapping allowed.
func occurrences(s, pat string) []int {
	var out []int
	for off := 0; ; {
		i := strings.Index(s[off:], pat)
		if i < 0 {
			return out
		}
		out = append(out, off+i)
		off += i + 1
	}
}

func findDualAnchor(req Request, search string) (Binding, bool) {
	n := len(search)
	lo := n * 2 / 5
	if lo < minAnchor {
		lo = minAnchor
	}
	for anchorLen := n / 2; anchorLen >= lo; anchorLen-- {
		left := occurrences(req.Template, search[:anchorLen])
		if len(left) == 0 {
			continue
		}
		right := occurrences(req.Template, search[n-anchorLen:])
		if len(right) == 0 {
			continue
		}
		want := n - anchorLen // expected separation of the anchor starts
		for _, ls := range left {
			for _, rs := range right {
				gap := rs - ls
				if gap < want-2 || gap > want+2 {
					continue
				}
				end := rs + anchorLen
				return Binding{
					Start:       ls,
					End:         end,
					MatchLength: end - ls,
					Score:       float64(2*anchorLen) / float64(n),
				}, true
			}
		}
	}
	return Binding{}, false
}

// findThreePrimeAnchor shrinks the primer's 3'-terminal anchor until it
// occurs exactly once. A correct 3' match is necessary for extension even if
// the 5' remainder mismatches.
func findThreePrimeAnchor(req Request, search string) (Binding, bool) {
	n := len(search)
	for anchorLen := n; anchorLen >= minAnchor; anchorLen-- {
		var anchor string
		if req.Dir == Forward {
			anchor = search[n-anchorLen:]
		} else {
			// On the plus strand, a reverse primer's 3' end is the left
			// edge of its reverse complement.
			anchor = search[:anchorLen]
		}
		occ := occurrences(req.Template, anchor)
		if len(occ) == 0 {
			continue
		}
		if len(occ) > 1 {
			return Binding{}, false
		}
		var start int
		if req.Dir == Forward {
			start = occ[0] + anchorLen - n
		} else {
			start = occ[0]
		}
		if start < 0 || start+n > len(req.Template) {
			return Binding{}, false
		}
		return Binding{
			Start:       start,
			End:         start + n,
			MatchLength: anchorLen,
			Score:       float64(anchorLen) / float64(n),
		}, true
	}
	return Binding{}, false
}

// findWeightedScan slides the primer across every template offset, counting
// matches with the 3'-terminal 10 bases weighted double. Placements with
// fewer than 7 of those 10 matching never extend and are rejected outright.
func findWeightedScan(req Request, search string) (Binding, bool) {
	tpl := req.Template
	n := len(search)
	if req.Circular && n > 1 {
		tpl = tpl + tpl[:n-1]
	}
	if len(tpl) < n {
		return Binding{}, false
	}

	win := scanWindow
	if win > n {
		win = n
	}
	// Template-orientation positions of the primer's 3'-terminal window.
	terminal := func(j int) bool {
		if req.Dir == Forward {
			return j >= n-win
		}
		return j < win
	}

	bestScore := -1.0
	bestPos := -1
	for pos := 0; pos+n <= len(tpl); pos++ {
		if pos >= len(req.Template) {
			break // wrapped copies only extend matches, not start them
		}
		weighted := 0
		termHits := 0
		for j := 0; j < n; j++ {
			if tpl[pos+j] != search[j] {
				continue
			}
			if terminal(j) {
				weighted += 2
				termHits++
			} else {
				weighted++
			}
		}
		if termHits < scanWindowMin {
			continue
		}
		score := float64(weighted) / float64(n+win)
		if score > bestScore {
			bestScore = score
			bestPos = pos
		}
	}
	if bestPos < 0 {
		return Binding{}, false
	}
	matches := 0
	for j := 0; j < n; j++ {
		if tpl[bestPos+j] == search[j] {
			matches++
		}
	}
	return Binding{
		Start:       bestPos,
		End:         bestPos + n,
		MatchLength: matches,
		Score:       bestScore,
	}, true
}
