// core/thermo/nnparams.go
// Nearest-neighbor parameter set: SantaLucia & Hicks (2004) unified values
// at 1 M Na+. ΔH in kcal/mol, ΔS in cal/(K·mol). The table is immutable
// configuration injected into Calculator, so alternate published sets can be
// swapped in for testing without touching the algorithm.
package thermo

// Stack holds ΔH/ΔS for one nearest-neighbor doublet.
type Stack struct {
	DH float64 // kcal/mol
	DS float64 // cal/(K·mol)
}

// NNTable is a complete nearest-neighbor parameter set.
type NNTable struct {
	Name string
	// Propagation parameters keyed by top-strand doublet (5'→3').
	Stacks map[string]Stack
	// Duplex initiation.
	InitDH, InitDS float64
	// Applied once per terminal A·T pair.
	TermATDH, TermATDS float64
	// Self-complementary symmetry correction.
	SymDH, SymDS float64
}

// SantaLucia2004 returns the unified NN set from SantaLucia & Hicks (2004),
// Annu Rev Biophys, Table 1.
func SantaLucia2004() NNTable {
	return NNTable{
		Name: "santalucia-hicks-2004",
		Stacks: map[string]Stack{
			"AA": {-7.6, -21.3}, "TT": {-7.6, -21.3},
			"AT": {-7.2, -20.4}, "TA": {-7.2, -21.3},
			"CA": {-8.5, -22.7}, "TG": {-8.5, -22.7},
			"GT": {-8.4, -22.4}, "AC": {-8.4, -22.4},
			"CT": {-7.8, -21.0}, "AG": {-7.8, -21.0},
			"GA": {-8.2, -22.2}, "TC": {-8.2, -22.2},
			"CG": {-10.6, -27.2}, "GC": {-9.8, -24.4},
			"GG": {-8.0, -19.9}, "CC": {-8.0, -19.9},
		},
		InitDH:   0.2,
		InitDS:   -5.7,
		TermATDH: 2.2,
		TermATDS: 6.9,
		SymDH:    0.0,
		SymDS:    -1.4,
	}
}
