// internal/output/json.go
package output

import (
	"io"

	"github.com/seqfoundry/primedesign/core/design"
	"github.com/seqfoundry/primedesign/core/fold"
	"github.com/seqfoundry/primedesign/internal/jsonutil"
)

// WriteDesignJSON writes one design result (pretty-indented v1 schema).
func WriteDesignJSON(w io.Writer, r design.Result) error {
	return jsonutil.EncodePretty(w, ToAPIDesignResult(r))
}

// WriteBatchJSON writes a JSON array with one entry per submitted spec.
func WriteBatchJSON(w io.Writer, items []design.BatchItem) error {
	return jsonutil.EncodePretty(w, ToAPIBatch(items))
}

// WritePrimerAnalysisJSON writes a single-primer report.
func WritePrimerAnalysisJSON(w io.Writer, a design.PrimerAnalysis) error {
	return jsonutil.EncodePretty(w, ToAPIPrimerAnalysis(a))
}

// WritePairAnalysisJSON writes a primer-pair report.
func WritePairAnalysisJSON(w io.Writer, a design.PairAnalysis) error {
	return jsonutil.EncodePretty(w, ToAPIPairAnalysis(a))
}

// WriteFoldJSON writes a fold prediction.
func WriteFoldJSON(w io.Writer, r fold.Result, sev fold.Severity) error {
	return jsonutil.EncodePretty(w, ToAPIFold(r, sev))
}
