package source

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/extrame/xls"
	"github.com/human-pangenomics/hprccatalog"
)

// IsWorkbook reports whether p names a legacy Excel workbook, possibly
// compressed. Tracking sheets are sometimes exported this way.
func IsWorkbook(p string) bool {
	name := strings.ToLower(path.Base(p))
	if suffix, ok := hprccatalog.CompressionSuffix(name); ok {
		name = strings.TrimSuffix(name, suffix)
	}
	return path.Ext(name) == ".xls"
}

// workbookRecords returns the cells of the first sheet, one record per row,
// and the sheet row each record came from. Short rows are padded to the
// header's width. Rows that are absent from the sheet or hold only blank cells
// are skipped, as blank lines are in CSV.
func workbookRecords(p string, content []byte) ([][]string, []int, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", p, err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, nil, nil
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil, fmt.Errorf("%s: first sheet is unreadable", p)
	}

	var (
		records [][]string
		lines   []int
	)
	width := 0
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheetRow(sheet, rowID)
		if row == nil {
			continue
		}

		// LastCol is one past the final cell, and zero for rows that were
		// only implied by their cells.
		n := max(row.LastCol(), width)
		record := make([]string, 0, n)
		blank := true
		for colID := 0; colID < n; colID++ {
			cell := row.Col(colID)
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
			record = append(record, cell)
		}
		if blank {
			continue
		}

		if records == nil {
			width = len(record)
		}
		records = append(records, record)
		lines = append(lines, rowID+1)
	}

	return records, lines, nil
}

// sheetRow returns row i of sheet, or nil when the sheet has no such row.
// WorkSheet.Row dereferences the missing row and panics.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(i)
}

// recordsReader feeds already-split records to gocsv.
type recordsReader struct {
	records [][]string
	next    int
}

func (r *recordsReader) Read() ([]string, error) {
	if r.next >= len(r.records) {
		return nil, io.EOF
	}
	record := r.records[r.next]
	r.next++
	return record, nil
}

func (r *recordsReader) ReadAll() ([][]string, error) {
	rest := r.records[r.next:]
	r.next = len(r.records)
	return rest, nil
}
