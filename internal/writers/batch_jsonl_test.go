// internal/writers/batch_jsonl_test.go
package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/seqfoundry/primedesign/pkg/api"
)

func TestWriteBatchJSONL(t *testing.T) {
	items := []api.BatchItemV1{
		{Index: 0, Success: true, Result: &api.DesignResultV1{QualityTier: "good"}},
		{Index: 1, Success: false, Error: "no feasible design"},
	}
	var buf bytes.Buffer
	if err := WriteBatchJSONL(&buf, items); err != nil {
		t.Fatalf("WriteBatchJSONL: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		var it api.BatchItemV1
		if err := json.Unmarshal([]byte(line), &it); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if it.Index != i {
			t.Fatalf("line %d has index %d", i, it.Index)
		}
	}
}

func TestWriteBatchJSONLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBatchJSONL(&buf, nil); err != nil {
		t.Fatalf("WriteBatchJSONL: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(syscall.EPIPE) {
		t.Fatal("EPIPE not recognized")
	}
	if !IsBrokenPipe(fmt.Errorf("write: %w", io.ErrClosedPipe)) {
		t.Fatal("wrapped ErrClosedPipe not recognized")
	}
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("disk full")) {
		t.Fatal("false positive")
	}
}
