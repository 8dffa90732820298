// core/design/batch.go
package design

import (
	"context"
	"fmt"
)

// BatchItem is one spec's outcome within a batch.
type BatchItem struct {
	Index  int
	Spec   Spec
	Result Result
	Err    error
}

// OK reports whether the item designed successfully.
func (b BatchItem) OK() bool { return b.Err == nil }

// DesignBatch runs the same search independently for each spec against one
// shared template. Items are processed sequentially; a failure (or panic) in
// one item is captured on that item and never aborts its siblings, so the
// returned slice always has len(specs) entries.
func (e *Engine) DesignBatch(ctx context.Context, template string, specs []Spec, opts Options) []BatchItem {
	out := make([]BatchItem, len(specs))
	for i, sp := range specs {
		out[i] = BatchItem{Index: i, Spec: sp}
		func() {
			defer func() {
				if r := recover(); r != nil {
					out[i].Err = fmt.Errorf("design panic: %v", r)
				}
			}()
			out[i].Result, out[i].Err = e.Design(ctx, template, sp, opts)
		}()
	}
	return out
}
