package entity

import (
	"strings"

	"gopkg.in/guregu/null.v3"
)

// The explorer keys rows with the same compositions, so these must stay in
// step with the site configuration's getId functions. They never fail: missing
// parts render as their sentinel (or "null").

func RawSequencingDataID(r RawSequencingData) string {
	return joinID(r.MMTag.String(), r.Filename.String())
}

func AssemblyID(a Assembly) string {
	return joinID(a.SampleID, a.Haplotype, a.Release)
}

func AnnotationID(a Annotation) string {
	return joinID(a.SampleID, a.Haplotype, a.AnnotationType, a.Release)
}

func AlignmentID(a Alignment) string {
	return joinID(nullableString(a.ReferenceCoordinates), a.Loc)
}

func joinID(parts ...string) string {
	return strings.Join(parts, "_")
}

func nullableString(s null.String) string {
	if !s.Valid {
		return "null"
	}
	return s.String
}
