package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/human-pangenomics/hprccatalog/config"
	"github.com/human-pangenomics/hprccatalog/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	assembliesCSV = `assembly,assembly_md5,biosample_id,family_id,fasta_sha256,file_size,haplotype,population_abbreviation,population_descriptor,release,sample_id
s3://b/HG002.pat.v2.fa.gz,aa,SAMN1,3140,,100,1,ASK,Ashkenazi,2,HG002
s3://b/HG00099.mat.fa.gz,bb,SAMN2,,,N/A,2,GBR,British,1,HG00099
s3://b/HG002.pat.v2-rerun.fa.gz,cc,SAMN1,3140,,101,1,ASK,Ashkenazi,2,HG002
`
	annotationsCSV = `annotation_type,file_size,haplotype,location,release,sample_id
Repeat Masker,12,2,s3://b/HG002.mat.rm.bed,2,HG002
CenSat,N/A,1,s3://b/HG002.pat.censat.bed,2,HG002
`
	alignmentsCSV = `alignment,file,file_size,loc,pipeline,reference_coordinates,use_case,version
PGGB,b.og,2,s3://b/z/b.og,PGGB,,"graph, ""viz""",
MC,a.vcf.gz,1,s3://b/a/a.vcf.gz,MC,GRCh38,"variant calling, genotyping",v1.1
`
	sequencingCSV = `sample_ID,filename,MM_tag,coverage,platform,total_Gbp
HG002,m1.bam,True,30,PACBIO_SMRT,90.5
HG002,m1.bam,True,31,PACBIO_SMRT,91
HG00099,r1.fastq.gz,,N/A,OXFORD_NANOPORE,eh
`
)

func writeSources(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, config.DefaultSourceDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func allSources() map[string]string {
	return map[string]string{
		"sequencing-data.csv": sequencingCSV,
		"assemblies.csv":      assembliesCSV,
		"annotations.csv":     annotationsCSV,
		"alignments.csv":      alignmentsCSV,
	}
}

func outputPath(dir string, e config.Entity) string {
	return filepath.Join(dir, config.DefaultOutputDir, string(e)+".json")
}

func TestAssemblyDuplicateStrict(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"assemblies.csv": assembliesCSV})

	_, err := Assemblies.Build(context.Background(), Settings{
		Sources:    []string{filepath.Join(dir, config.DefaultSourceDir, "assemblies.csv")},
		Uniqueness: config.Strict,
	})

	var de *DuplicateIDError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, []string{"HG002_paternal_2"}, de.IDs)
	assert.EqualError(t, err, "Duplicate assembly IDs found: HG002_paternal_2")
}

func TestAssemblyDuplicateLenient(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"assemblies.csv": assembliesCSV})

	var logs bytes.Buffer
	got, err := Assemblies.Build(context.Background(), Settings{
		Sources:    []string{filepath.Join(dir, config.DefaultSourceDir, "assemblies.csv")},
		Uniqueness: config.Lenient,
		Logger:     log.New(&logs, "", 0),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "HG00099", got[0].SampleID)
	assert.Equal(t, "maternal", got[0].Haplotype)
	assert.True(t, got[0].FileSize.IsNA())

	// The first of the two HG002 paternal rows survives.
	assert.Equal(t, "aa", got[1].FastaMD5)
	assert.Equal(t, "HG002.pat.v2.fa.gz", got[1].Filename)

	assert.Contains(t, logs.String(), "WARN: Removed assemblies with duplicate IDs: HG002_paternal_2")
}

func TestBuildRowError(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"annotations.csv": "annotation_type,file_size,haplotype,location,release,sample_id\nCenSat,1,1,s3://x,2,HG002\nTRF,big,1,s3://y,2,HG002\n",
	})
	path := filepath.Join(dir, config.DefaultSourceDir, "annotations.csv")

	_, err := Annotations.Build(context.Background(), Settings{Sources: []string{path}, Uniqueness: config.Strict})
	var re *RowError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, path, re.Path)
	assert.Equal(t, 3, re.Row)
	assert.Equal(t, "file_size", re.Column)
	assert.Contains(t, err.Error(), `Invalid number value: "big"`)
}

func TestBuildRowErrorLine(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"annotations.csv": "annotation_type,file_size,haplotype,location,release,sample_id\n" +
			"\"Cen\nSat\",1,1,s3://x,2,HG002\n" +
			"\n" +
			"TRF,big,1,s3://y,2,HG002\n",
	})
	path := filepath.Join(dir, config.DefaultSourceDir, "annotations.csv")

	_, err := Annotations.Build(context.Background(), Settings{Sources: []string{path}, Uniqueness: config.Strict})
	var re *RowError
	require.True(t, errors.As(err, &re))
	// The quoted cell spans lines 2 and 3 and line 4 is blank.
	assert.Equal(t, 5, re.Row)
	assert.Contains(t, err.Error(), path+", row 5, column \"file_size\"")
}

func TestBuilderRun(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, allSources())

	cfg := config.Default()
	cfg.Root = dir

	var logs bytes.Buffer
	b := &Builder{Config: cfg, Logger: log.New(&logs, "", 0)}

	_, err := b.Run(context.Background())
	var de *DuplicateIDError
	require.True(t, errors.As(err, &de), "assemblies are strict by default")
	for _, e := range config.Entities {
		assert.NoFileExists(t, outputPath(dir, e))
	}

	b.Config.Assemblies.Uniqueness = config.Lenient
	logs.Reset()
	results, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, strings.HasPrefix(logs.String(), "Building catalog...\n"))
	assert.Contains(t, logs.String(), "WARN: Removed raw sequencing data with duplicate IDs: true_m1.bam")
	assert.Contains(t, logs.String(), `WARN: `+filepath.Join(dir, config.DefaultSourceDir, "sequencing-data.csv")+`, row 4: Invalid number value: "eh"`)
	assert.Contains(t, logs.String(), "Sequencing data: 2\nAssemblies: 2\nAnnotations: 2\nAlignments: 2\nDone\n")

	var alignments []map[string]any
	data, err := os.ReadFile(outputPath(dir, config.Alignments))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &alignments))
	assert.Equal(t, "s3://b/a/a.vcf.gz", alignments[0]["loc"])
	assert.Equal(t, "vcf", alignments[0]["filetype"])
	assert.Nil(t, alignments[1]["referenceCoordinates"])
	assert.Equal(t, []any{"graph", `"viz"`}, alignments[1]["useCase"])

	var sequencing []map[string]any
	data, err = os.ReadFile(outputPath(dir, config.RawSequencingData))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &sequencing))
	// "Unspecified_r1.fastq.gz" collates after "true_m1.bam".
	assert.Equal(t, "m1.bam", sequencing[0]["filename"])
	assert.Equal(t, 30.0, sequencing[0]["coverage"])
	assert.Equal(t, "N/A", sequencing[1]["coverage"])
	assert.Equal(t, "Unspecified", sequencing[1]["mmTag"])
	assert.Equal(t, "Unspecified", sequencing[1]["totalGbp"])
	assert.Equal(t, "Unspecified", sequencing[1]["study"])

	var annotations []map[string]any
	data, err = os.ReadFile(outputPath(dir, config.Annotations))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &annotations))
	assert.Equal(t, "maternal", annotations[0]["haplotype"])
	assert.Equal(t, 12.0, annotations[0]["fileSize"])
	assert.Equal(t, "paternal", annotations[1]["haplotype"])
	assert.Equal(t, "N/A", annotations[1]["fileSize"])
}

func TestBuilderIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, allSources())

	cfg := config.Default()
	cfg.Root = dir
	cfg.SetUniqueness(config.Lenient)
	b := &Builder{Config: cfg}

	_, err := b.Run(context.Background())
	require.NoError(t, err)
	first := map[config.Entity][]byte{}
	for _, e := range config.Entities {
		data, err := os.ReadFile(outputPath(dir, e))
		require.NoError(t, err)
		first[e] = data
	}

	_, err = b.Run(context.Background())
	require.NoError(t, err)
	for _, e := range config.Entities {
		data, err := os.ReadFile(outputPath(dir, e))
		require.NoError(t, err)
		assert.Equal(t, first[e], data, e)
		assert.False(t, bytes.HasSuffix(data, []byte("\n")))
	}
}

func TestBuilderDryRunAndSkip(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{"alignments.csv": alignmentsCSV})

	cfg := config.Default()
	cfg.Root = dir
	cfg.Only(config.Alignments)

	results, err := (&Builder{Config: cfg, DryRun: true}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, config.Alignments, results[0].Entity)
	assert.Equal(t, 2, results[0].Count)
	assert.NoFileExists(t, outputPath(dir, config.Alignments))
}

func TestBuilderMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, allSources())
	writeSources(t, dir, map[string]string{"alignments.csv": "alignment,file\nMC,a.vcf\n"})

	cfg := config.Default()
	cfg.Root = dir
	cfg.SetUniqueness(config.Lenient)

	_, err := (&Builder{Config: cfg}).Run(context.Background())
	var mce *source.MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "file_size", mce.Column)
	assert.NoFileExists(t, outputPath(dir, config.Assemblies))
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal[keyed](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Marshal([]map[string]string{{"a": "<b>"}})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"a\": \"<b>\"\n  }\n]", string(data))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
