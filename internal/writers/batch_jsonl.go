// internal/writers/batch_jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"github.com/seqfoundry/primedesign/internal/jsonlutil"
	"github.com/seqfoundry/primedesign/pkg/api"
)

// WriteBatchJSONL streams batch items as JSON Lines, one object per
// submitted spec. Broken-pipe errors are suppressed so piping into `head`
// exits cleanly.
func WriteBatchJSONL(out io.Writer, items []api.BatchItemV1) error {
	in, done := jsonlutil.Start(out, len(items),
		func(enc *json.Encoder, it api.BatchItemV1) error {
			if err := enc.Encode(it); err != nil && !IsBrokenPipe(err) {
				return err
			}
			return nil
		},
		IsBrokenPipe,
	)
	for _, it := range items {
		in <- it
	}
	close(in)
	return <-done
}
