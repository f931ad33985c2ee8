package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bomTolerantReader skips a UTF-8 byte-order mark if the stream carries one.
func bomTolerantReader(r io.Reader) *bufio.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// readCSV reads all rows of a delimited text file without enforcing a
// uniform column count; repair decides what is usable.
func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(bomTolerantReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// writeCSV writes rows as UTF-8 CSV with a byte-order mark and CRLF line
// endings (matching the site export), atomically replacing any previous
// file at path.
func writeCSV(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp output file")
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(utf8BOM); err != nil {
		return errors.Wrap(err, "writing byte-order mark")
	}

	w := csv.NewWriter(tmp)
	w.UseCRLF = true
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrap(err, "writing csv rows")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flushing csv rows")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp output file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "replacing output file")
	}
	return nil
}
