// core/thermo/calc.go
// Two-state nearest-neighbor melting temperature for primer/template duplexes.
//
// Steps:
//  1) Sum initiation + per-stack ΔH/ΔS + terminal AT penalties + symmetry.
//  2) Salt correction to ΔS for monovalent ions:
//     ΔS([Na+]) = ΔS(1M) + 0.368*(N/2)*ln[Na+], N = 2n-2 phosphates.
//  3) Tm (K) = ΔH*1000 / (ΔS_Na + R ln(CT/x)), x=4 non-self, x=1 self-compl.
//
// This package has no app/output deps; engine and scorer import it cleanly.
package thermo

import (
	"fmt"
	"math"

	"github.com/seqfoundry/primedesign/core/dna"
)

// Rcal is the gas constant in cal/(K·mol).
const Rcal = 1.9872

// Calculator computes duplex thermodynamics from injected parameters.
type Calculator struct {
	Table NNTable
	Cond  Conditions
}

// New returns a Calculator over the given parameter table and conditions.
func New(table NNTable, cond Conditions) Calculator {
	return Calculator{Table: table, Cond: cond}
}

// Default returns a Calculator with the SantaLucia 2004 set and standard
// PCR conditions.
func Default() Calculator {
	return New(SantaLucia2004(), DefaultConditions())
}

// Result reports ΔH/ΔS (1M and salt-corrected) and Tm.
type Result struct {
	DHkcal float64 // total ΔH (kcal/mol)
	DScal  float64 // total ΔS at 1 M (cal/K·mol)
	DSNa   float64 // ΔS corrected by [Na+] (cal/K·mol)
	TmC    float64 // melting temperature (°C)
}

// Tm computes the duplex melting temperature (°C) of seq against its perfect
// complement. Errors wrap dna.ErrInvalidSequence for cleaned length < 2 or
// non-ATGC bases.
func (c Calculator) Tm(seq string) (float64, error) {
	r, err := c.TmDetail(seq)
	if err != nil {
		return 0, err
	}
	return r.TmC, nil
}

// TmDetail is Tm with the underlying ΔH/ΔS terms exposed.
func (c Calculator) TmDetail(seq string) (Result, error) {
	var out Result
	s, err := dna.Validate(seq)
	if err != nil {
		return out, err
	}
	if len(s) < 2 {
		return out, fmt.Errorf("%w: need at least 2 bases for nearest-neighbor Tm", dna.ErrInvalidSequence)
	}

	dH := c.Table.InitDH
	dS := c.Table.InitDS
	for i := 0; i < len(s)-1; i++ {
		st, ok := c.Table.Stacks[s[i:i+2]]
		if !ok {
			return out, fmt.Errorf("%w: missing NN params for %q", dna.ErrInvalidSequence, s[i:i+2])
		}
		dH += st.DH
		dS += st.DS
	}
	if s[0] == 'A' || s[0] == 'T' {
		dH += c.Table.TermATDH
		dS += c.Table.TermATDS
	}
	if last := s[len(s)-1]; last == 'A' || last == 'T' {
		dH += c.Table.TermATDH
		dS += c.Table.TermATDS
	}

	self := isSelfComplementary(s)
	if self {
		dH += c.Table.SymDH
		dS += c.Table.SymDS
	}

	naEff := c.Cond.EffectiveMonovalent()
	if naEff <= 0 {
		naEff = 1e-6
	}
	n := float64(len(s))
	dSNa := dS + 0.368*(n-1)*math.Log(naEff)

	ct := math.Max(c.Cond.PrimerTotalM, 1e-12)
	x := 4.0
	if self {
		x = 1.0
	}
	tmK := (dH * 1000.0) / (dSNa + Rcal*math.Log(ct/x))

	out.DHkcal = dH
	out.DScal = dS
	out.DSNa = dSNa
	out.TmC = tmK - 273.15
	return out, nil
}

// GC returns the G+C fraction of seq in [0,1].
func (c Calculator) GC(seq string) float64 { return dna.GC(dna.Normalize(seq)) }

// DeltaGAt converts ΔH (kcal/mol) and ΔS (cal/K·mol) to Gibbs free energy
// (kcal/mol) at the given temperature.
func DeltaGAt(dHkcal, dScal, tempC float64) float64 {
	tK := tempC + 273.15
	return dHkcal - tK*dScal/1000.0
}

func isSelfComplementary(s string) bool {
	return len(s)%2 == 0 && dna.RevComp(s) == s
}
