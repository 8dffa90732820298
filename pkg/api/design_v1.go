// pkg/api/design_v1.go
package api

// PrimerV1 is the stable JSON schema for one designed or analyzed primer.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PrimerV1 struct {
	Seq         string  `json:"seq"`
	Dir         string  `json:"dir"` // "forward" | "reverse"
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Tm          float64 `json:"tm"`
	GC          float64 `json:"gc"`
	HairpinDG   float64 `json:"hairpin_dg"`
	SelfDimerDG float64 `json:"self_dimer_dg"`
}

// FeatureV1 is one scored feature within a report.
type FeatureV1 struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Score    float64 `json:"score"`
	Severity string  `json:"severity,omitempty"`
	Known    bool    `json:"known"`
	Critical bool    `json:"critical,omitempty"`
}

// DesignResultV1 is the stable schema for one design outcome.
type DesignResultV1 struct {
	Forward          PrimerV1         `json:"forward"`
	Reverse          PrimerV1         `json:"reverse"`
	CompositeScore   float64          `json:"composite_score"`
	EffectiveScore   float64          `json:"effective_score"`
	QualityTier      string           `json:"quality_tier"`
	CriticalWarnings int              `json:"critical_warnings"`
	Features         []FeatureV1      `json:"features,omitempty"`
	Alternatives     []DesignResultV1 `json:"alternatives,omitempty"`
}

// BatchItemV1 is one element of a batch design response. The batch always
// has one entry per submitted spec, failed or not.
type BatchItemV1 struct {
	Index   int             `json:"index"`
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Result  *DesignResultV1 `json:"result,omitempty"`
}

// FoldV1 is the stable schema for a secondary-structure prediction.
type FoldV1 struct {
	DeltaG     float64  `json:"delta_g"`
	Pairs      [][2]int `json:"pairs,omitempty"`
	DotBracket string   `json:"dot_bracket,omitempty"`
	Severity   string   `json:"severity,omitempty"`
}

// BindingV1 is the stable schema for a primer-binding search result.
type BindingV1 struct {
	Start       int     `json:"start"`
	End         int     `json:"end"`
	MatchLength int     `json:"match_length"`
	Score       float64 `json:"score"`
	Method      string  `json:"method"`
}

// AnnealingV1 is the tail/annealing-region split of a tailed assembly or
// golden-gate primer; Tm and GC are measured on the region.
type AnnealingV1 struct {
	Tail   string  `json:"tail"`
	Region string  `json:"region"`
	Tm     float64 `json:"tm"`
	GC     float64 `json:"gc"`
}

// PrimerAnalysisV1 is the stable schema for a single-primer report.
type PrimerAnalysisV1 struct {
	Seq       string       `json:"seq"`
	Dir       string       `json:"dir"`
	Length    int          `json:"length"`
	Tm        *float64     `json:"tm,omitempty"` // nil when degraded
	GC        float64      `json:"gc"`
	Hairpin   *FoldV1      `json:"hairpin,omitempty"`
	SelfDimer *FoldV1      `json:"self_dimer,omitempty"`
	Binding   *BindingV1   `json:"binding,omitempty"`
	Annealing *AnnealingV1 `json:"annealing,omitempty"`
}

// PairAnalysisV1 is the stable schema for a primer-pair report.
type PairAnalysisV1 struct {
	Forward          PrimerAnalysisV1 `json:"forward"`
	Reverse          PrimerAnalysisV1 `json:"reverse"`
	DeltaTm          *float64         `json:"delta_tm,omitempty"`
	HeteroDimer      *FoldV1          `json:"hetero_dimer,omitempty"`
	CompositeScore   float64          `json:"composite_score"`
	EffectiveScore   float64          `json:"effective_score"`
	QualityTier      string           `json:"quality_tier"`
	CriticalWarnings int              `json:"critical_warnings"`
	Features         []FeatureV1      `json:"features,omitempty"`
}
