// Package csvfile persists the transaction record as a flat CSV file
// with a fixed header and every field quoted, the format the record
// has carried since the first version of this tool.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/ybnd/monizze-csv/internal/domain"
)

// Store reads and rewrites a single CSV record file wholesale. One
// writer per run; no locking.
type Store struct {
	path string
}

// NewStore creates a Store for the record at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the record location.
func (s *Store) Path() string {
	return s.path
}

// ReadRows returns every data row in stored order. A missing file is
// domain.ErrRecordNotFound; any other read problem is
// domain.ErrRecordUnreadable. Rows are returned raw: validation
// belongs to the caller, which may not need to parse past its cutoff.
func (s *Store) ReadRows(ctx context.Context) ([]domain.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRecordUnreadable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(domain.Header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecordUnreadable, err)
	}

	rows := make([]domain.Row, 0, len(records))
	for i, record := range records {
		if i == 0 && record[0] == domain.Header[0] {
			continue
		}
		rows = append(rows, domain.Row{
			Date:    record[0],
			Voucher: record[1],
			Amount:  record[2],
			Detail:  record[3],
		})
	}

	return rows, nil
}

// WriteAll replaces the record with the given transactions. The new
// content is assembled in full, written next to the record and moved
// into place, so a failed run leaves the previous record intact.
func (s *Store) WriteAll(ctx context.Context, history []domain.Transaction) error {
	var buf bytes.Buffer
	writeRow(&buf, domain.Header...)
	for _, tx := range history {
		writeRow(&buf, tx.Date, tx.Voucher, tx.Amount.StringFixed(2), tx.Detail)
	}

	tmp := s.path + "." + ulid.Make().String() + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing record: %w", err)
	}

	return nil
}

// writeRow emits one line with every field quoted and internal quotes
// doubled.
func writeRow(buf *bytes.Buffer, fields ...string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
