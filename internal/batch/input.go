// internal/batch/input.go
package batch

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one duplex to compute.
type Row struct {
	ID            string
	Sequence      string
	Complementary string // empty: inferred
	Line          int
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path for reading; "-" is stdin and gzip input (by magic number
// or .gz suffix) is decompressed.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// Load reads every row of the file at path.
func Load(path string) ([]Row, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Read(rc, path)
}

// Read parses TSV rows (id sequence [complementary]) or, when the first
// non-blank line starts with '>', FASTA records (one sequence each, id from
// the header's first word). Blank lines and '#' comments are skipped in TSV.
func Read(r io.Reader, name string) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 16<<20)

	var (
		rows  []Row
		fasta bool
		ln    int
		cur   *Row
		seq   strings.Builder
	)
	flush := func() {
		if cur != nil {
			cur.Sequence = strings.ToUpper(seq.String())
			rows = append(rows, *cur)
			cur = nil
			seq.Reset()
		}
	}
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(rows) == 0 && cur == nil && !fasta && line[0] == '>' {
			fasta = true
		}
		if fasta {
			if line[0] == '>' {
				flush()
				id := strings.Fields(line[1:])
				if len(id) == 0 {
					return nil, fmt.Errorf("%s:%d empty FASTA header", name, ln)
				}
				cur = &Row{ID: id[0], Line: ln}
				continue
			}
			if cur == nil {
				return nil, fmt.Errorf("%s:%d sequence before the first header", name, ln)
			}
			seq.WriteString(line)
			continue
		}
		if line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 || len(f) > 3 {
			return nil, fmt.Errorf("%s:%d bad field count (want: id sequence [complementary])", name, ln)
		}
		row := Row{ID: f[0], Sequence: strings.ToUpper(f[1]), Line: ln}
		if len(f) == 3 {
			row.Complementary = strings.ToUpper(f[2])
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return rows, nil
}
