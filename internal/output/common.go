// internal/output/common.go
package output

// DesignTSVHeader is the canonical header row for text/TSV design output.
// Keep this as the single source of truth; all writers should use it.
const DesignTSVHeader = "rank\tfwd_seq\tfwd_tm\trev_seq\trev_tm\tcomposite\teffective\ttier\tcritical_warnings"

// AnalysisTSVHeader is the canonical header row for single-primer analysis.
const AnalysisTSVHeader = "seq\tdir\tlength\ttm\tgc\thairpin_dg\tself_dimer_dg\tbinding"
