// core/fold/params.go
// Free-energy model for the MFE folder. Stacking terms derive from the
// SantaLucia & Hicks (2004) nearest-neighbor set evaluated at 37 °C; loop
// penalties are coarse Turner-style values with Jacobson-Stockmayer
// log extrapolation beyond the tabulated sizes. All values kcal/mol.
package fold

import (
	"math"

	"github.com/seqfoundry/primedesign/core/thermo"
)

// EnergyParams is immutable configuration for Folder.
type EnergyParams struct {
	Name string
	// ΔG37 for a stacked doublet keyed by the top-strand pair of bases.
	StackDG map[string]float64
	// Loop penalties indexed by loop size; the last entry extrapolates.
	HairpinDG  []float64 // index = unpaired bases, valid from MinHairpin
	BulgeDG    []float64 // index = bulged bases, valid from 1
	InternalDG []float64 // index = total unpaired bases, valid from 2
	// Multibranch loop affine model.
	MultiInit     float64
	MultiBranch   float64
	MultiUnpaired float64
	// Intermolecular duplex initiation (two-strand mode).
	DuplexInitDG float64
	// Minimum unpaired bases enclosed by an intramolecular pair.
	MinHairpin int
	// Largest interior/bulge loop considered by the DP.
	MaxLoop int
}

// loopEval indexes a penalty table with log extrapolation past its end.
func loopEval(table []float64, size int) float64 {
	if size <= 0 {
		return math.Inf(1)
	}
	if size < len(table) {
		if v := table[size]; v != 0 {
			return v
		}
		return math.Inf(1)
	}
	last := len(table) - 1
	// Jacobson-Stockmayer: ΔG(n) = ΔG(last) + 1.75*R*T*ln(n/last) at 310.15 K.
	return table[last] + 1.75*thermo.Rcal/1000.0*310.15*math.Log(float64(size)/float64(last))
}

// DefaultEnergyParams builds the standard model from the SantaLucia table.
func DefaultEnergyParams() EnergyParams {
	nn := thermo.SantaLucia2004()
	stacks := make(map[string]float64, len(nn.Stacks))
	for k, s := range nn.Stacks {
		stacks[k] = thermo.DeltaGAt(s.DH, s.DS, 37)
	}
	return EnergyParams{
		Name:    "santalucia-2004-37C-turner-loops",
		StackDG: stacks,
		// Index = loop size. Zero entries are unreachable sizes.
		HairpinDG:     []float64{0, 0, 0, 5.4, 5.6, 5.7, 5.4, 6.0, 5.5, 6.4},
		BulgeDG:       []float64{0, 3.8, 2.8, 3.2, 3.6, 4.0, 4.4},
		InternalDG:    []float64{0, 0, 1.3, 1.7, 1.1, 2.0, 2.3, 2.5, 2.6, 2.8},
		MultiInit:     3.4,
		MultiBranch:   0.4,
		MultiUnpaired: 0.1,
		DuplexInitDG:  thermo.DeltaGAt(nn.InitDH, nn.InitDS, 37),
		MinHairpin:    3,
		MaxLoop:       30,
	}
}
