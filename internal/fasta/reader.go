// internal/fasta/reader.go
// Minimal FASTA ingestion for the CLI: plain, gzip, or stdin ("-"). Records
// are normalized to uppercase; the core accepts only this cleaned form.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seqfoundry/primedesign/core/dna"
)

// Record is one parsed FASTA entry.
type Record struct {
	ID          string
	Description string
	Seq         string
}

// ReadAll parses every record from path.
func ReadAll(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parse(rc)
}

// ReadOne parses path and requires exactly one record.
func ReadOne(path string) (Record, error) {
	recs, err := ReadAll(path)
	if err != nil {
		return Record{}, err
	}
	if len(recs) != 1 {
		return Record{}, fmt.Errorf("%s: expected exactly one FASTA record, found %d", path, len(recs))
	}
	return recs[0], nil
}

func parse(r io.Reader) ([]Record, error) {
	var (
		out []Record
		cur *Record
		sb  strings.Builder
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		seq, err := dna.Validate(sb.String())
		if err != nil {
			return fmt.Errorf("record %q: %w", cur.ID, err)
		}
		cur.Seq = seq
		out = append(out, *cur)
		sb.Reset()
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			fields := strings.Fields(line[1:])
			rec := Record{}
			if len(fields) > 0 {
				rec.ID = fields[0]
				rec.Description = strings.TrimSpace(line[1+len(fields[0]):])
			}
			cur = &rec
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("sequence data before any FASTA header")
		}
		sb.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no FASTA records found")
	}
	return out, nil
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
