package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"catalog/build/intermediate/sequencing-data.csv"}, c.RawSequencingData.Sources)
	assert.Equal(t, "catalog/output/alignments.json", c.Alignments.Output)
	assert.Equal(t, Lenient, c.RawSequencingData.Uniqueness)
	assert.Equal(t, Strict, c.Assemblies.Uniqueness)
	assert.Equal(t, Strict, c.Annotations.Uniqueness)
	assert.Equal(t, Strict, c.Alignments.Uniqueness)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "root": "/srv/site",
  "delimiter": "tab",
  "assemblies": {"sources": ["a.tsv", "gs://bucket/b.tsv.gz"], "output": "out/assemblies.json", "uniqueness": "Lenient"}
}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/site", c.Root)
	assert.Equal(t, Lenient, c.Assemblies.Uniqueness)
	assert.Equal(t, []string{"a.tsv", "gs://bucket/b.tsv.gz"}, c.Assemblies.Sources)
	// Untouched sections keep their defaults.
	assert.Equal(t, "catalog/output/annotations.json", c.Annotations.Output)

	d, err := c.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, '\t', d)

	assert.Equal(t, "/srv/site/a.tsv", c.Resolve(c.Assemblies.Sources[0]))
	assert.Equal(t, "gs://bucket/b.tsv.gz", c.Resolve(c.Assemblies.Sources[1]))
	assert.Equal(t, "/abs/x.csv", c.Resolve("/abs/x.csv"))
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
alignments:
  skip: true
sequencingData:
  uniqueness: strict
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Alignments.Skip)
	assert.Equal(t, Strict, c.RawSequencingData.Uniqueness)
	assert.Equal(t, "catalog/output/alignments.json", c.Alignments.Output)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `{"assemblies": {"sauces": []}}`},
		{"bad mode", `{"annotations": {"uniqueness": "sometimes"}}`},
		{"shared output", `{"annotations": {"output": "catalog/output/assemblies.json"}}`},
		{"no sources", `{"alignments": {"sources": []}}`},
		{"bad delimiter", `{"delimiter": "||"}`},
		{"syntax", `{"root": `},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestLoadSyntaxErrorOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"root": ]}`), 0644))

	_, err := Load(path)
	require.Error(t, err)

	var syntax *json.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Contains(t, err.Error(), fmt.Sprintf("build.json: syntax error at byte offset %d: ", syntax.Offset))
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{"auto", 0, false},
		{"comma", ',', false},
		{"TAB", '\t', false},
		{";", ';', false},
		{`"`, 0, true},
		{"ab", 0, true},
	}

	for _, tt := range tests {
		got, err := Config{Delimiter: tt.in}.DelimiterRune()
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOnlyAndSetUniqueness(t *testing.T) {
	c := Default()
	c.Only(Assemblies, Annotations)
	c.SetUniqueness(Lenient)

	assert.True(t, c.RawSequencingData.Skip)
	assert.False(t, c.Assemblies.Skip)
	assert.False(t, c.Annotations.Skip)
	assert.True(t, c.Alignments.Skip)
	for _, e := range Entities {
		assert.Equal(t, Lenient, c.Catalog(e).Uniqueness)
	}

	_, err := ParseEntity("pangenomes")
	assert.Error(t, err)
	e, err := ParseEntity("alignments")
	require.NoError(t, err)
	assert.Equal(t, Alignments, e)
}
