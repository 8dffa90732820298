// internal/fasta/reader_test.go
package fasta

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `>plasmid-1 pUC19 derivative
ACGTacgt
GGCC
>plasmid-2
TTAA
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func writeGzip(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(p)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(body)); err != nil {
		t.Fatalf("write gzip: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return p
}

func TestReadAll(t *testing.T) {
	recs, err := ReadAll(writeFile(t, "in.fa", sample))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].ID != "plasmid-1" || recs[0].Description != "pUC19 derivative" {
		t.Fatalf("header parse: %+v", recs[0])
	}
	// Multi-line bodies concatenate and normalize to uppercase.
	if recs[0].Seq != "ACGTACGTGGCC" {
		t.Fatalf("seq = %q", recs[0].Seq)
	}
	if recs[1].ID != "plasmid-2" || recs[1].Description != "" || recs[1].Seq != "TTAA" {
		t.Fatalf("second record: %+v", recs[1])
	}
}

func TestReadAllGzip(t *testing.T) {
	recs, err := ReadAll(writeGzip(t, "in.fa.gz", sample))
	if err != nil {
		t.Fatalf("ReadAll gzip: %v", err)
	}
	if len(recs) != 2 || recs[0].Seq != "ACGTACGTGGCC" {
		t.Fatalf("gzip parse: %+v", recs)
	}
}

func TestReadOne(t *testing.T) {
	rec, err := ReadOne(writeFile(t, "one.fa", ">only\nACGT\n"))
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	if rec.ID != "only" || rec.Seq != "ACGT" {
		t.Fatalf("record: %+v", rec)
	}

	if _, err := ReadOne(writeFile(t, "two.fa", sample)); err == nil {
		t.Fatal("ReadOne accepted a two-record file")
	}
}

func TestReadAllErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "no FASTA records"},
		{"headerless", "ACGT\n", "before any FASTA header"},
		{"bad base", ">x\nACQT\n", "record \"x\""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadAll(writeFile(t, "bad.fa", tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestReadAllMissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "absent.fa")); err == nil {
		t.Fatal("missing file accepted")
	}
}
