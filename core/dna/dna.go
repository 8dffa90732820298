// core/dna/dna.go
// Sequence normalization, validation and strand arithmetic for strict
// A/C/G/T DNA. The design engine works on the normalized form only;
// IUPAC ambiguity codes are rejected at the boundary.
package dna

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidSequence marks sequences that are empty or contain non-ATGC
// characters after cleaning.
var ErrInvalidSequence = errors.New("invalid sequence")

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// Normalize removes whitespace and quotes and uppercases bases. It does not
// validate; pair with Validate at ingestion boundaries.
func Normalize(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, byte(unicode.ToUpper(r)))
	}
	return string(out)
}

// Validate returns the normalized sequence or ErrInvalidSequence if it is
// empty or contains a non-ATGC base.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty after cleaning", ErrInvalidSequence)
	}
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return "", fmt.Errorf("%w: base %q at position %d (need A/C/G/T)", ErrInvalidSequence, s[i], i+1)
		}
	}
	return s, nil
}

// IsACGT reports whether every byte of s is a strict A/C/G/T base.
func IsACGT(s string) bool {
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return false
		}
	}
	return len(s) > 0
}

// Comp returns the Watson-Crick complement of a single base, or 'N' for
// anything else.
func Comp(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return 'N'
}

// RevComp returns the reverse complement of s. Non-ATGC bytes map to 'N'.
func RevComp(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Comp(s[n-1-i])
	}
	return string(out)
}

// IsWC reports whether p and t form a Watson-Crick pair.
func IsWC(p, t byte) bool {
	c := complement[p]
	return c != 0 && c == t
}

// GC returns the G+C fraction of s in [0,1]. Undefined for empty input;
// callers guard, and we return 0 to stay total.
func GC(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			n++
		}
	}
	return float64(n) / float64(len(s))
}
