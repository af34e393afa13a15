// Package csvimport reads operator-supplied CSV files into keyed rows
// for bulk submission. Files are expected to be UTF-8 with a header
// row; a leading BOM is tolerated.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Reader parses a CSV stream with a header row
type Reader struct {
	reader  *csv.Reader
	headers []string
	index   map[string]int
}

// Option configures a Reader
type Option func(*csv.Reader)

// WithDelimiter sets the field delimiter (default comma)
func WithDelimiter(d rune) Option {
	return func(r *csv.Reader) {
		r.Comma = d
	}
}

// NewReader creates a Reader and consumes the header row. Header names
// are trimmed and lowercased, so "Product Code" and "product_code" in
// the file both match the column name "product code" / "product_code"
// respectively.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
		head = head[3:]
	}
	if !utf8.Valid(head) {
		return nil, ErrInvalidEncoding
	}

	cr := csv.NewReader(buf)
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	for _, opt := range opts {
		opt(cr)
	}

	record, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	reader := &Reader{
		reader:  cr,
		headers: make([]string, len(record)),
		index:   make(map[string]int, len(record)),
	}
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		reader.headers[i] = name
		reader.index[name] = i
	}
	return reader, nil
}

// Headers returns the normalized header names
func (r *Reader) Headers() []string {
	return r.headers
}

// RequireColumns returns the required column names missing from the header
func (r *Reader) RequireColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := r.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row is one parsed data row with its line number in the file
type Row struct {
	Line   int
	fields map[string]string
}

// Get returns the trimmed value of a column, or "" if absent
func (row *Row) Get(column string) string {
	return row.fields[column]
}

// IsEmpty reports whether every field in the row is blank
func (row *Row) IsEmpty() bool {
	for _, v := range row.fields {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadAll reads the remaining data rows, skipping blank ones. Row line
// numbers are positions in the file, counting the header and any blank
// lines.
func (r *Reader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			// csv.ParseError already names the offending line
			return rows, fmt.Errorf("malformed csv: %w", err)
		}

		line, _ := r.reader.FieldPos(0)
		row := Row{
			Line:   line,
			fields: make(map[string]string, len(r.headers)),
		}
		for i, name := range r.headers {
			if i < len(record) {
				row.fields[name] = strings.TrimSpace(record[i])
			} else {
				row.fields[name] = ""
			}
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
}
