// Package catalog turns source sheets into the explorer's JSON catalogs. Each
// entity type is mapped, sorted, checked for identity collisions and
// serialized independently; Builder runs all of them and only writes once
// every one has succeeded.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/human-pangenomics/hprccatalog/config"
	"github.com/human-pangenomics/hprccatalog/entity"
	"github.com/human-pangenomics/hprccatalog/scalar"
	"github.com/human-pangenomics/hprccatalog/source"
)

// RowError locates a cell that failed a strict policy.
type RowError struct {
	Path string

	// Row is the line of the source sheet the offending record starts on,
	// counting from 1. For workbooks it is the sheet row.
	Row int

	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s, row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("%s, row %d, column %s: %v", e.Path, e.Row, strconv.Quote(e.Column), e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Definition ties a source row type to the entity it produces.
type Definition[R source.Schema, E any] struct {
	// Name is used in duplicate-ID errors ("Duplicate assembly IDs found").
	Name string

	// Plural is used in the lenient-mode warning.
	Plural string

	// Label prefixes the count line logged after a build.
	Label string

	Map     func(*scalar.Parser, R) (E, error)
	ID      func(E) string
	SortKey func(E) string
}

var (
	RawSequencingData = Definition[source.RawSequencingData, entity.RawSequencingData]{
		Name:    "raw sequencing data",
		Plural:  "raw sequencing data",
		Label:   "Sequencing data",
		Map:     MapRawSequencingData,
		ID:      entity.RawSequencingDataID,
		SortKey: entity.RawSequencingDataID,
	}

	Assemblies = Definition[source.Assembly, entity.Assembly]{
		Name:    "assembly",
		Plural:  "assemblies",
		Label:   "Assemblies",
		Map:     MapAssembly,
		ID:      entity.AssemblyID,
		SortKey: entity.AssemblyID,
	}

	Annotations = Definition[source.Annotation, entity.Annotation]{
		Name:    "annotation",
		Plural:  "annotations",
		Label:   "Annotations",
		Map:     MapAnnotation,
		ID:      entity.AnnotationID,
		SortKey: entity.AnnotationID,
	}

	Alignments = Definition[source.Alignment, entity.Alignment]{
		Name:    "alignment",
		Plural:  "alignments",
		Label:   "Alignments",
		Map:     MapAlignment,
		ID:      entity.AlignmentID,
		SortKey: func(a entity.Alignment) string { return a.Loc },
	}
)

// Settings are the per-build inputs of a Definition.
type Settings struct {
	Sources    []string
	Uniqueness config.Uniqueness
	Source     source.Options

	// Logger receives cell and duplicate warnings. Nil discards them.
	Logger *log.Logger
}

// Build reads every source, maps each row, sorts, and applies the uniqueness
// mode. The result is never nil.
func (d Definition[R, E]) Build(ctx context.Context, s Settings) ([]E, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	tables, err := source.ReadAll[R](ctx, s.Sources, s.Source)
	if err != nil {
		return nil, err
	}

	p := scalar.NewParser(logger)
	entities := make([]E, 0)
	for _, table := range tables {
		for i, row := range table.Rows {
			rowNumber := table.Line(i)
			p.SetContext(fmt.Sprintf("%s, row %d", table.Path, rowNumber))

			e, err := d.Map(p, row)
			if err != nil {
				rowErr := &RowError{Path: table.Path, Row: rowNumber, Err: err}
				var fe *FieldError
				if errors.As(err, &fe) {
					rowErr.Column, rowErr.Err = fe.Column, fe.Err
				}
				return nil, rowErr
			}
			entities = append(entities, e)
		}
	}

	SortByKey(entities, d.SortKey)

	entities, removed, err := uniqueIDs(s.Uniqueness, d.Name, entities, d.ID)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		logger.Printf("WARN: Removed %s with duplicate IDs: %s", d.Plural, strings.Join(removed, ", "))
	}

	return entities, nil
}

// Marshal renders a catalog the way the explorer loads it: a two-space
// indented array with no trailing newline. Field order follows the struct.
func Marshal[E any](entities []E) ([]byte, error) {
	if entities == nil {
		entities = []E{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entities); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
