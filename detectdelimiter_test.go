package hprccatalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelimiterForPath(t *testing.T) {
	tests := []struct {
		path  string
		want  rune
		found bool
	}{
		{"catalog/build/intermediate/assemblies.csv", ',', true},
		{"annotations.tsv", '\t', true},
		{"gs://bucket/annotations.TSV.gz", '\t', true},
		{"sheet.csv.xz", ',', true},
		{"HPRC_PanGenome.index", '\t', true},
		{"alignments", 0, false},
		{"alignments.txt", 0, false},
	}

	for _, tt := range tests {
		got, found := DelimiterForPath(tt.path)
		assert.Equal(t, tt.found, found, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestCompressionSuffix(t *testing.T) {
	suffix, ok := CompressionSuffix("a.csv.GZ")
	assert.True(t, ok)
	assert.Equal(t, ".gz", suffix)

	_, ok = CompressionSuffix("a.csv")
	assert.False(t, ok)
}

func TestDetermineDelimiterDefault(t *testing.T) {
	assert.Equal(t, ',', DetermineDelimiter(strings.NewReader("")))
}
