// core/design/aa.go
package design

import (
	"fmt"

	"github.com/seqfoundry/primedesign/core/dna"
)

// SpecFromAminoAcidChange resolves a protein-level edit to a codon-range
// substitution. cdsStart is the template offset where the reading frame
// begins, codonIndex is 0-based, and targetAA is a single-letter amino acid
// (or '*' for a stop). The replacement codon is the preferred E. coli
// triplet for the target residue.
func SpecFromAminoAcidChange(template string, cdsStart, codonIndex int, targetAA byte) (Spec, error) {
	tpl, err := dna.Validate(template)
	if err != nil {
		return Spec{}, err
	}
	start := cdsStart + 3*codonIndex
	end := start + 3
	if cdsStart < 0 || start < 0 || end > len(tpl) {
		return Spec{}, fmt.Errorf("%w: codon %d of CDS at %d lies outside the template", ErrInvalidRegion, codonIndex, cdsStart)
	}
	current, err := dna.Translate(tpl[start:end])
	if err != nil {
		return Spec{}, err
	}
	codon, err := dna.PreferredCodon(targetAA)
	if err != nil {
		return Spec{}, err
	}
	if current == targetAA {
		return Spec{}, fmt.Errorf("codon %d already encodes %c", codonIndex, targetAA)
	}
	return Substitute(start, end, codon), nil
}
