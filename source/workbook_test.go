package source

import (
	"os"
	"testing"

	"github.com/extrame/xls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testdata/tracking.xls has an annotation sheet whose third row is absent,
// whose fifth row has a ROW record but no cells, and whose fourth row stops
// one cell short of the header.
func TestParseWorkbook(t *testing.T) {
	content, err := os.ReadFile("testdata/tracking.xls")
	require.NoError(t, err)

	rows, err := Parse[Annotation]("testdata/tracking.xls", content, 0)
	require.NoError(t, err)

	assert.Equal(t, []Annotation{
		{AnnotationType: "CenSat", FileSize: "100", Haplotype: "1", Location: "s3://b/HG002.censat.bed", Release: "2", SampleID: "HG002"},
		{AnnotationType: "RepeatMasker", FileSize: "7", Haplotype: "2", Location: "s3://b/HG005.rm.bed", Release: "1", SampleID: ""},
		{AnnotationType: "GeneAnnotation", FileSize: "9", Haplotype: "1", Location: "s3://b/HG002.genes.gff3", Release: "2", SampleID: "HG002"},
	}, rows)
}

func TestWorkbookRecordsWidth(t *testing.T) {
	content, err := os.ReadFile("testdata/tracking.xls")
	require.NoError(t, err)

	records, lines, err := workbookRecords("tracking.xls", content)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []int{1, 2, 4, 6}, lines)

	for i, record := range records {
		assert.Len(t, record, 6, "record %d", i)
	}
	assert.Equal(t, "sample_id", records[0][5])
}

func TestParseTableWorkbookLines(t *testing.T) {
	content, err := os.ReadFile("testdata/tracking.xls")
	require.NoError(t, err)

	table, err := ParseTable[Annotation]("tracking.xls", content, 0)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []int{2, 4, 6}, table.Lines)
	assert.Equal(t, 6, table.Line(2))
}

func TestSheetRowMissing(t *testing.T) {
	sheet := &xls.WorkSheet{MaxRow: 2}

	assert.NotPanics(t, func() {
		assert.Nil(t, sheetRow(sheet, 1))
	})
}

func TestParseWorkbookNotOLE(t *testing.T) {
	_, err := Parse[Annotation]("tracking.xls", []byte("annotation_type,file_size\n"), 0)
	assert.Error(t, err)
}
