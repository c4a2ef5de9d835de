package hprccatalog

import (
	"io"
	"path"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// compressionSuffixes are stripped before looking at a source file's
// extension, so that "assemblies.tsv.gz" is still read as tab-delimited.
var compressionSuffixes = []string{".gz", ".bz2", ".xz", ".zip", ".z"}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// CompressionSuffix reports the compression extension p ends with, if any.
func CompressionSuffix(p string) (string, bool) {
	name := strings.ToLower(p)
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			return suffix, true
		}
	}
	return "", false
}

// DelimiterForPath infers the delimiter from the extension of a source path.
// The second return value is false when the extension says nothing useful, in
// which case the caller should sniff the content with DetermineDelimiter.
func DelimiterForPath(p string) (rune, bool) {
	name := strings.ToLower(path.Base(p))
	for _, suffix := range compressionSuffixes {
		name = strings.TrimSuffix(name, suffix)
	}

	switch path.Ext(name) {
	case ".tsv", ".tab", ".index":
		return '\t', true
	case ".csv":
		return ',', true
	}

	return 0, false
}
