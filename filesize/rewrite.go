package filesize

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/human-pangenomics/hprccatalog"
	"github.com/human-pangenomics/hprccatalog/source"
)

// RewriteOptions select the columns RewriteCSV reads and writes.
type RewriteOptions struct {
	// URIColumn holds the location of each file.
	URIColumn string

	// SizeColumn receives the size. It is appended if the sheet lacks it.
	// Empty means "file_size".
	SizeColumn string

	// Overwrite re-resolves rows that already have a size. Otherwise only
	// empty cells are filled.
	Overwrite bool

	// Label names the files in progress lines.
	Label string
}

// RewriteCSV copies the sheet from r to w with the size column filled in.
// The delimiter follows the extension of path, falling back to sniffing the
// content, and is kept on output.
func (res *Resolver) RewriteCSV(ctx context.Context, path string, r io.Reader, w io.Writer, opts RewriteOptions) error {
	if opts.SizeColumn == "" {
		opts.SizeColumn = "file_size"
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return pfx.Err(err)
	}

	delimiter, ok := hprccatalog.DelimiterForPath(path)
	if !ok {
		delimiter = hprccatalog.DetermineDelimiter(bytes.NewReader(content))
	}
	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return pfx.Err(err)
	}
	if len(records) == 0 {
		return &source.MissingColumnError{Path: path, Column: opts.URIColumn}
	}

	header := records[0]
	if err := source.CheckColumns(path, header, []string{opts.URIColumn}); err != nil {
		return err
	}
	uriIndex := columnIndex(header, opts.URIColumn)
	sizeIndex := columnIndex(header, opts.SizeColumn)
	if sizeIndex < 0 {
		sizeIndex = len(header)
		records[0] = append(header, opts.SizeColumn)
	}

	// Rows needing a lookup, by record index.
	var pending []int
	var uris []string
	width := max(uriIndex, sizeIndex) + 1
	for row := 1; row < len(records); row++ {
		for len(records[row]) < width {
			records[row] = append(records[row], "")
		}
		if !opts.Overwrite && strings.TrimSpace(records[row][sizeIndex]) != "" {
			continue
		}
		pending = append(pending, row)
		uris = append(uris, strings.TrimSpace(records[row][uriIndex]))
	}

	sizes, err := res.Sizes(ctx, uris, opts.Label)
	if err != nil {
		return err
	}
	for i, row := range pending {
		records[row][sizeIndex] = sizes[i]
	}

	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	if err := cw.WriteAll(records); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
