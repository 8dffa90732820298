// core/fold/fold.go
// Minimum-free-energy secondary-structure prediction, Zuker-style dynamic
// programming: O(n³) time, O(n²) space. Single-strand mode folds hairpins;
// two-strand mode folds a concatenated pair of sequences with the junction
// loop exempt from hairpin constraints, covering self- and heterodimers.
//
// The fold is deterministic: equal-energy structures are resolved toward the
// earliest pair start index, then the shortest enclosed loop.
package fold

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/seqfoundry/primedesign/core/dna"
)

// DefaultMaxLen bounds folder input; the DP assumes primer-scale sequences,
// not whole templates.
const DefaultMaxLen = 200

// ErrSequenceTooLong is returned when input exceeds Folder.MaxLen.
var ErrSequenceTooLong = errors.New("sequence too long to fold")

// Result is one predicted minimum-free-energy structure.
type Result struct {
	DeltaG     float64  // kcal/mol; 0 for no predicted structure
	Pairs      [][2]int // non-crossing base pairs, sorted by first index
	DotBracket string   // '+' marks the strand junction in two-strand mode
	Cut        int      // 0 for single-strand; else index of second strand
}

// Folder predicts MFE structures from injected energy parameters.
type Folder struct {
	Params EnergyParams
	MaxLen int
}

// New returns a Folder with the given parameters and the default input cap.
func New(p EnergyParams) *Folder {
	return &Folder{Params: p, MaxLen: DefaultMaxLen}
}

// Default returns a Folder over DefaultEnergyParams.
func Default() *Folder { return New(DefaultEnergyParams()) }

// Fold predicts the MFE hairpin structure of a single strand.
func (f *Folder) Fold(seq string) (Result, error) {
	s, err := dna.Validate(seq)
	if err != nil {
		return Result{}, err
	}
	if len(s) > f.maxLen() {
		return Result{}, fmt.Errorf("%w: %d bases (max %d)", ErrSequenceTooLong, len(s), f.maxLen())
	}
	return f.run(s, -1), nil
}

// FoldDimer predicts the MFE duplex structure of two strands given 5'→3'.
// Pair indices are in concatenated coordinates; Result.Cut marks where the
// second strand begins.
func (f *Folder) FoldDimer(a, b string) (Result, error) {
	sa, err := dna.Validate(a)
	if err != nil {
		return Result{}, err
	}
	sb, err := dna.Validate(b)
	if err != nil {
		return Result{}, err
	}
	if len(sa)+len(sb) > f.maxLen() {
		return Result{}, fmt.Errorf("%w: %d bases (max %d)", ErrSequenceTooLong, len(sa)+len(sb), f.maxLen())
	}
	r := f.run(sa+sb, len(sa))
	r.Cut = len(sa)
	return r, nil
}

// FoldSelf predicts the self-dimer structure of one primer.
func (f *Folder) FoldSelf(a string) (Result, error) { return f.FoldDimer(a, a) }

func (f *Folder) maxLen() int {
	if f.MaxLen > 0 {
		return f.MaxLen
	}
	return DefaultMaxLen
}

const eps = 1e-9

type dp struct {
	s   string
	n   int
	cut int // -1 = single strand
	p   EnergyParams
	v   [][]float64
	wm  [][]float64
	w   [][]float64
}

func (f *Folder) run(s string, cut int) Result {
	n := len(s)
	out := Result{DeltaG: 0}
	if n < 2 {
		out.DotBracket = dots(n, cut)
		return out
	}

	d := &dp{s: s, n: n, cut: cut, p: f.Params}
	d.v = mat(n)
	d.wm = mat(n)
	d.w = mat(n)
	d.fill()

	mfe := d.w[0][n-1]
	br := make([]byte, n)
	for i := range br {
		br[i] = '.'
	}
	var pairs [][2]int
	if mfe < -eps {
		out.DeltaG = mfe
		pairs = d.traceW(0, n-1, nil, br)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	out.Pairs = pairs
	out.DotBracket = withCut(string(br), cut)
	return out
}

func mat(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

func dots(n, cut int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '.'
	}
	return withCut(string(b), cut)
}

func withCut(s string, cut int) string {
	if cut <= 0 || cut >= len(s) {
		return s
	}
	return s[:cut] + "+" + s[cut:]
}

// intermolecular reports whether a pair (i,j) spans the strand junction.
func (d *dp) intermolecular(i, j int) bool {
	return d.cut >= 0 && i < d.cut && j >= d.cut
}

func (d *dp) canPair(i, j int) bool {
	if !dna.IsWC(d.s[i], d.s[j]) {
		return false
	}
	if d.intermolecular(i, j) {
		return true
	}
	return j-i-1 >= d.p.MinHairpin
}

// closureEnergy is the terminal cost of pair (i,j) with nothing stacked
// inside: a hairpin loop, or duplex initiation when (i,j) spans the junction.
func (d *dp) closureEnergy(i, j int) float64 {
	if d.intermolecular(i, j) {
		return d.p.DuplexInitDG
	}
	return loopEval(d.p.HairpinDG, j-i-1)
}

// twoLoopEnergy is the cost of pair (k,l) directly inside pair (i,j):
// stack, bulge, or interior loop by gap sizes.
func (d *dp) twoLoopEnergy(i, j, k, l int) float64 {
	n1 := k - i - 1
	n2 := j - l - 1
	switch {
	case n1 == 0 && n2 == 0:
		return d.stackDG(i)
	case n1 == 0 || n2 == 0:
		return loopEval(d.p.BulgeDG, n1+n2)
	default:
		return loopEval(d.p.InternalDG, n1+n2)
	}
}

func (d *dp) stackDG(i int) float64 {
	if g, ok := d.p.StackDG[d.s[i:i+2]]; ok {
		return g
	}
	return math.Inf(1)
}

func (d *dp) fill() {
	inf := math.Inf(1)
	p := d.p
	// Single bases carry no structure.
	for i := 0; i < d.n; i++ {
		d.v[i][i] = inf
		d.wm[i][i] = inf
		d.w[i][i] = 0
	}
	for span := 1; span < d.n; span++ {
		for i := 0; i+span < d.n; i++ {
			j := i + span

			// V(i,j): best structure closed by pair (i,j).
			v := inf
			if d.canPair(i, j) {
				v = d.closureEnergy(i, j)
				maxLoop := p.MaxLoop
				for total := 0; total <= maxLoop; total++ {
					for n1 := 0; n1 <= total; n1++ {
						k := i + 1 + n1
						l := j - 1 - (total - n1)
						if k >= l {
							continue
						}
						if !d.canPair(k, l) {
							continue
						}
						if e := d.v[k][l] + d.twoLoopEnergy(i, j, k, l); e < v {
							v = e
						}
					}
				}
				// Multibranch closure.
				for k := i + 2; k < j-2; k++ {
					e := p.MultiInit + d.wm[i+1][k] + d.wm[k+1][j-1]
					if e < v {
						v = e
					}
				}
			}
			d.v[i][j] = v

			// WM(i,j): multiloop interior contributions.
			wm := v + p.MultiBranch
			if e := d.wm[i+1][j] + p.MultiUnpaired; i+1 <= j && e < wm {
				wm = e
			}
			if e := d.wm[i][j-1] + p.MultiUnpaired; i <= j-1 && e < wm {
				wm = e
			}
			for k := i; k < j; k++ {
				if e := d.wm[i][k] + d.wm[k+1][j]; e < wm {
					wm = e
				}
			}
			d.wm[i][j] = wm

			// W(i,j): best structure on the open interval.
			w := 0.0
			if v < w {
				w = v
			}
			if e := d.w[i+1][j]; e < w {
				w = e
			}
			if e := d.w[i][j-1]; e < w {
				w = e
			}
			for k := i; k < j; k++ {
				if e := d.w[i][k] + d.w[k+1][j]; e < w {
					w = e
				}
			}
			d.w[i][j] = w
		}
	}
}

func eq(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	return math.Abs(a-b) <= eps
}

// traceW reconstructs one MFE structure for interval [i,j]. Candidates are
// probed in a fixed order so ties resolve to the earliest pair start, then
// the shortest enclosed loop.
func (d *dp) traceW(i, j int, pairs [][2]int, br []byte) [][2]int {
	for i < j {
		e := d.w[i][j]
		if e >= -eps {
			return pairs
		}
		if eq(e, d.v[i][j]) {
			return d.traceV(i, j, pairs, br)
		}
		if eq(e, d.w[i+1][j]) {
			i++
			continue
		}
		split := false
		for k := i; k < j; k++ {
			if eq(e, d.w[i][k]+d.w[k+1][j]) {
				pairs = d.traceW(i, k, pairs, br)
				i = k + 1
				split = true
				break
			}
		}
		if split {
			continue
		}
		if eq(e, d.w[i][j-1]) {
			j--
			continue
		}
		return pairs
	}
	return pairs
}

func (d *dp) traceV(i, j int, pairs [][2]int, br []byte) [][2]int {
	pairs = append(pairs, [2]int{i, j})
	br[i], br[j] = '(', ')'
	e := d.v[i][j]

	// Enclosed pair, smallest loop first.
	for total := 0; total <= d.p.MaxLoop; total++ {
		for n1 := 0; n1 <= total; n1++ {
			k := i + 1 + n1
			l := j - 1 - (total - n1)
			if k >= l || !d.canPair(k, l) {
				continue
			}
			if eq(e, d.v[k][l]+d.twoLoopEnergy(i, j, k, l)) {
				return d.traceV(k, l, pairs, br)
			}
		}
	}
	// Terminal closure (hairpin loop / duplex end).
	if eq(e, d.closureEnergy(i, j)) {
		return pairs
	}
	// Multibranch.
	for k := i + 2; k < j-2; k++ {
		if eq(e, d.p.MultiInit+d.wm[i+1][k]+d.wm[k+1][j-1]) {
			pairs = d.traceWM(i+1, k, pairs, br)
			return d.traceWM(k+1, j-1, pairs, br)
		}
	}
	return pairs
}

func (d *dp) traceWM(i, j int, pairs [][2]int, br []byte) [][2]int {
	for i < j {
		e := d.wm[i][j]
		if math.IsInf(e, 1) {
			return pairs
		}
		if eq(e, d.v[i][j]+d.p.MultiBranch) {
			return d.traceV(i, j, pairs, br)
		}
		if eq(e, d.wm[i+1][j]+d.p.MultiUnpaired) {
			i++
			continue
		}
		if eq(e, d.wm[i][j-1]+d.p.MultiUnpaired) {
			j--
			continue
		}
		split := false
		for k := i; k < j; k++ {
			if eq(e, d.wm[i][k]+d.wm[k+1][j]) {
				pairs = d.traceWM(i, k, pairs, br)
				i = k + 1
				split = true
				break
			}
		}
		if split {
			continue
		}
		return pairs
	}
	return pairs
}
