// core/dna/codon.go
// Standard genetic code plus an E. coli-preferred codon table used when an
// amino-acid change must be resolved to a concrete codon substitution.
package dna

import "fmt"

// geneticCode maps DNA codons to single-letter amino acids ('*' = stop).
var geneticCode = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// preferredCodon picks the highest-usage E. coli K-12 codon per amino acid
// (Kazusa codon usage database).
var preferredCodon = map[byte]string{
	'A': "GCG", 'R': "CGT", 'N': "AAC", 'D': "GAT",
	'C': "TGC", 'Q': "CAG", 'E': "GAA", 'G': "GGC",
	'H': "CAT", 'I': "ATT", 'L': "CTG", 'K': "AAA",
	'M': "ATG", 'F': "TTT", 'P': "CCG", 'S': "AGC",
	'T': "ACC", 'W': "TGG", 'Y': "TAT", 'V': "GTG",
	'*': "TAA",
}

// Translate returns the amino acid encoded by a 3-base DNA codon.
func Translate(codon string) (byte, error) {
	if len(codon) != 3 {
		return 0, fmt.Errorf("%w: codon %q is not 3 bases", ErrInvalidSequence, codon)
	}
	aa, ok := geneticCode[codon]
	if !ok {
		return 0, fmt.Errorf("%w: codon %q has non-ATGC base", ErrInvalidSequence, codon)
	}
	return aa, nil
}

// PreferredCodon returns the preferred coding triplet for a single-letter
// amino acid (or stop '*').
func PreferredCodon(aa byte) (string, error) {
	c, ok := preferredCodon[aa]
	if !ok {
		return "", fmt.Errorf("unknown amino acid %q", aa)
	}
	return c, nil
}
