// Package source reads the intermediate CSV/TSV sheets that feed the catalog
// build into typed rows, one struct type per entity.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/human-pangenomics/hprccatalog"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Schema is implemented by every row type. RequiredColumns lists the header
// names that must be present for the sheet to be usable at all.
type Schema interface {
	RequiredColumns() []string
}

// MissingColumnError is returned when a sheet lacks a required column.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("Missing column %s in %s", strconv.Quote(e.Column), e.Path)
}

// Options control how sheets are located and split.
type Options struct {
	// Delimiter, when zero, is inferred from the file extension and failing
	// that from the content.
	Delimiter rune

	// Storage is used for gs:// paths. It may be nil when all sources are
	// local.
	Storage *storage.Client
}

// Table is the typed content of one source sheet.
type Table[R Schema] struct {
	Path string
	Rows []R

	// Lines holds, for each row, the line its record starts on, counting
	// from 1. For workbooks it is the sheet row.
	Lines []int
}

// Line returns the line that row i starts on.
func (t Table[R]) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	// The header is line 1.
	return i + 2
}

// ReadAll reads each path in order. The first failure aborts.
func ReadAll[R Schema](ctx context.Context, paths []string, opts Options) ([]Table[R], error) {
	tables := make([]Table[R], 0, len(paths))
	for _, path := range paths {
		table, err := ReadTable[R](ctx, path, opts)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, nil
}

// Read opens path (local or gs://, optionally compressed) and parses it.
func Read[R Schema](ctx context.Context, path string, opts Options) ([]R, error) {
	table, err := ReadTable[R](ctx, path, opts)
	if err != nil {
		return nil, err
	}

	return table.Rows, nil
}

// ReadTable is Read, keeping the line each row came from.
func ReadTable[R Schema](ctx context.Context, path string, opts Options) (Table[R], error) {
	rc, err := hprccatalog.OpenSource(ctx, path, opts.Storage)
	if err != nil {
		return Table[R]{}, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return Table[R]{}, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return ParseTable[R](path, content, opts.Delimiter)
}

// Parse decodes a sheet whose first line is the header. Unescaped quotes
// inside fields are tolerated. An empty sheet yields no rows. Workbooks (see
// IsWorkbook) are read from their first sheet and delimiter is ignored.
func Parse[R Schema](path string, content []byte, delimiter rune) ([]R, error) {
	table, err := ParseTable[R](path, content, delimiter)
	if err != nil {
		return nil, err
	}

	return table.Rows, nil
}

// ParseTable is Parse, keeping the line each row came from.
func ParseTable[R Schema](path string, content []byte, delimiter rune) (Table[R], error) {
	var (
		records [][]string
		lines   []int
		err     error
	)
	if IsWorkbook(path) {
		records, lines, err = workbookRecords(path, content)
	} else {
		records, lines, err = textRecords(path, content, delimiter)
	}
	if err != nil {
		return Table[R]{}, err
	}
	if len(records) == 0 {
		return Table[R]{Path: path, Rows: []R{}, Lines: []int{}}, nil
	}

	rows, err := unmarshal[R](path, records[0], &recordsReader{records: records})
	if err != nil {
		return Table[R]{}, err
	}

	return Table[R]{Path: path, Rows: rows, Lines: lines[1:]}, nil
}

// textRecords splits a CSV or TSV sheet into records, noting the line each
// record starts on. Blank lines are skipped and a quoted cell may span
// several lines, so the two can drift apart.
func textRecords(path string, content []byte, delimiter rune) ([][]string, []int, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil, nil
	}

	if delimiter == 0 {
		if d, ok := hprccatalog.DelimiterForPath(path); ok {
			delimiter = d
		} else {
			delimiter = hprccatalog.DetermineDelimiter(bytes.NewReader(content))
		}
	}

	r := newReader(content, delimiter)
	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(records) == 0 {
				return nil, nil, fmt.Errorf("%s: reading header: %w", path, err)
			}
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}

		line, _ := r.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	return records, lines, nil
}

func unmarshal[R Schema](path string, header []string, in gocsv.CSVReader) ([]R, error) {
	var schema R
	if err := CheckColumns(path, header, schema.RequiredColumns()); err != nil {
		return nil, err
	}

	rows := []R{}
	if err := gocsv.UnmarshalCSV(in, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// CheckColumns verifies that every required column appears in header.
func CheckColumns(path string, header, required []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = struct{}{}
	}

	for _, name := range required {
		if _, exists := present[name]; !exists {
			return &MissingColumnError{Path: path, Column: name}
		}
	}

	return nil
}

func newReader(content []byte, delimiter rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = delimiter
	r.LazyQuotes = true
	return r
}
