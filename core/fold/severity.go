// core/fold/severity.go
// Structure-severity classification. A predicted structure matters most when
// it buries the primer's 3' terminus: the polymerase cannot extend from a
// paired 3' end, so `critical` requires both 3'-window involvement and a
// stability at or below the critical cutoff (inclusive).
package fold

// Severity tiers, ordered from benign to blocking.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityLow
	SeverityModerate
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLow:
		return "low"
	case SeverityModerate:
		return "moderate"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "none"
	}
}

// SeverityThresholds are ΔG cutoffs (kcal/mol) compared inclusively (ΔG ≤
// cutoff). Values follow common oligo-QC conventions (IDT OligoAnalyzer
// guidance: hairpins past ~-3, dimers past ~-9 kcal/mol are problematic).
type SeverityThresholds struct {
	CriticalDG float64 `yaml:"critical_dg"`
	WarningDG  float64 `yaml:"warning_dg"`
	ModerateDG float64 `yaml:"moderate_dg"`
	LowDG      float64 `yaml:"low_dg"`
	InfoDG     float64 `yaml:"info_dg"`
	// TerminalWindow is the number of 3'-end bases whose pairing escalates
	// severity.
	TerminalWindow int `yaml:"terminal_window"`
}

// DefaultSeverityThresholds returns the documented cutoff table.
func DefaultSeverityThresholds() SeverityThresholds {
	return SeverityThresholds{
		CriticalDG:     -9,
		WarningDG:      -6,
		ModerateDG:     -4,
		LowDG:          -2,
		InfoDG:         -0.5,
		TerminalWindow: 5,
	}
}

// Classify grades a fold for a primer of seqLen bases. For two-strand folds
// pass the first strand's length; junction-partner positions then fall
// outside the scored 3' window.
func (t SeverityThresholds) Classify(r Result, seqLen int) Severity {
	if seqLen <= 0 {
		return SeverityNone
	}
	dg := r.DeltaG
	threePrime := false
	lo := seqLen - t.TerminalWindow
	if lo < 0 {
		lo = 0
	}
	for _, p := range r.Pairs {
		for _, idx := range p {
			if idx >= lo && idx < seqLen {
				threePrime = true
			}
		}
	}

	switch {
	case threePrime && dg <= t.CriticalDG:
		return SeverityCritical
	case dg <= t.CriticalDG:
		// Very stable, but the 3' end stays free to extend.
		return SeverityWarning
	case dg <= t.WarningDG:
		if threePrime {
			return SeverityWarning
		}
		return SeverityModerate
	case dg <= t.ModerateDG:
		if threePrime {
			return SeverityModerate
		}
		return SeverityLow
	case dg <= t.LowDG:
		if threePrime {
			return SeverityLow
		}
		return SeverityInfo
	case dg <= t.InfoDG:
		return SeverityInfo
	default:
		return SeverityNone
	}
}
