package catalog

import (
	"fmt"
	"strings"

	"github.com/human-pangenomics/hprccatalog/entity"
	"github.com/human-pangenomics/hprccatalog/scalar"
	"github.com/human-pangenomics/hprccatalog/source"
	"gopkg.in/guregu/null.v3"
)

// Cell policies. Every mapped field uses exactly one of these:
//
//	absent      N/A passes through, empty is Unspecified, malformed warns and is
//	            Unspecified (raw sequencing data, every field)
//	null        empty is null, malformed is fatal (assembly strings and QC)
//	na          number or N/A, empty or malformed is fatal (file sizes)
//	required    number, empty or malformed is fatal (alignment file size)
//	percentage  "12.5%" is 0.125, empty is null, malformed is fatal
//	text        number when numeric, else the text, empty is null (qv)
//	plain       the trimmed cell (identity fields, checksums)
//	list        comma-joined, empty is an empty list (use cases)

// FieldError names the column whose cell could not be mapped.
type FieldError struct {
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %s: %v", e.Column, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func field(column string, err error) error {
	return &FieldError{Column: column, Err: err}
}

func plain(s string) string {
	return strings.TrimSpace(s)
}

// MapRawSequencingData never fails. The sheet is merged from many upstream
// trackers, so bad cells are reported through p and become Unspecified.
func MapRawSequencingData(p *scalar.Parser, row source.RawSequencingData) (entity.RawSequencingData, error) {
	str := func(s string) scalar.Value[string] { return scalar.StringOrAbsent(s, nil) }
	num := p.NumberOrAbsent

	return entity.RawSequencingData{
		Accession:                str(row.Accession),
		Basecaller:               str(row.Basecaller),
		BasecallerModel:          str(row.BasecallerModel),
		BasecallerVersion:        str(row.BasecallerVersion),
		BioprojectAccession:      str(row.BioprojectAccession),
		BiosampleAccession:       str(row.BiosampleID),
		CCSAlgorithm:             str(row.CCSAlgorithm),
		Coverage:                 num(row.Coverage),
		DataType:                 str(row.DataType),
		DeepConsensusVersion:     str(row.DeepConsensusVersion),
		DesignDescription:        str(row.DesignDescription),
		FamilyID:                 str(row.FamilyID),
		FileSize:                 num(row.FileSize),
		Filename:                 str(row.Filename),
		Filetype:                 str(row.Filetype),
		FiveHundredkbPlus:        num(row.FiveHundredkbPlus),
		FourHundredkbPlus:        num(row.FourHundredkbPlus),
		GeneratorContact:         str(row.GeneratorContact),
		GeneratorFacility:        str(row.GeneratorFacility),
		InstrumentModel:          str(row.InstrumentModel),
		LibraryID:                str(row.LibraryID),
		LibraryLayout:            str(row.LibraryLayout),
		LibrarySelection:         str(row.LibrarySelection),
		LibrarySource:            str(row.LibrarySource),
		LibraryStrategy:          str(row.LibraryStrategy),
		Max:                      num(row.Max),
		Mean:                     num(row.Mean),
		Min:                      num(row.Min),
		MMTag:                    p.BooleanOrAbsent(row.MMTag),
		N25:                      num(row.N25),
		N50:                      num(row.N50),
		N75:                      num(row.N75),
		Notes:                    str(row.Notes),
		NTSMScore:                num(row.NTSMScore),
		OneHundredkbPlus:         num(row.Coverage100kbPlus),
		OneMbPlus:                num(row.OneMbPlus),
		Path:                     str(row.Path),
		Platform:                 str(row.Platform),
		PolymeraseVersion:        str(row.PolymeraseVersion),
		PopulationAbbreviation:   str(row.PopulationAbbreviation),
		PopulationDescriptor:     str(row.PopulationDescriptor),
		Quartile25:               num(row.Quartile25),
		Quartile50:               num(row.Quartile50),
		Quartile75:               num(row.Quartile75),
		SampleID:                 str(row.SampleID),
		SeqKit:                   str(row.SeqKit),
		SeqPlateChemistryVersion: str(row.SeqPlateChemistryVersion),
		ShearMethod:              str(row.ShearMethod),
		SizeSelection:            str(row.SizeSelection),
		Study:                    str(row.Study),
		ThreeHundredkbPlus:       num(row.ThreeHundredkbPlus),
		Title:                    str(row.Title),
		TotalBp:                  num(row.TotalBp),
		TotalGbp:                 num(row.TotalGbp),
		TotalReads:               num(row.TotalReads),
		TwoHundredkbPlus:         num(row.TwoHundredkbPlus),
		Whales:                   num(row.Whales),
	}, nil
}

func MapAssembly(_ *scalar.Parser, row source.Assembly) (entity.Assembly, error) {
	out := entity.Assembly{
		AWSFasta:               scalar.StringOrNull(row.Assembly),
		BiosampleAccession:     scalar.StringOrNull(row.BiosampleID),
		FamilyID:               scalar.StringOrNull(row.FamilyID),
		FastaMD5:               plain(row.AssemblyMD5),
		FastaSHA256:            scalar.StringOrNull(row.FastaSHA256),
		Filename:               scalar.FileNameFromPath(plain(row.Assembly)),
		GCPFasta:               scalar.StringOrNull(row.GCPFasta),
		Haplotype:              entity.Haplotype(plain(row.Haplotype)),
		PopulationAbbreviation: scalar.StringOrNull(row.PopulationAbbreviation),
		PopulationDescriptor:   scalar.StringOrNull(row.PopulationDescriptor),
		QV:                     scalar.NumberOrStringOrNull(row.QV),
		Release:                plain(row.Release),
		SampleID:               plain(row.SampleID),
	}

	var err error
	if out.FileSize, err = scalar.NumberOrNA(row.FileSize); err != nil {
		return out, field("file_size", err)
	}

	cells := []struct {
		column string
		value  string
		parse  func(string) (null.Float, error)
		dst    *null.Float
	}{
		{"frag", row.Frag, scalar.NumberOrNull, &out.Frag},
		{"full_dup", row.FullDup, scalar.NumberOrNull, &out.FullDup},
		{"full_sgl", row.FullSgl, scalar.NumberOrNull, &out.FullSgl},
		{"hamming_err_rate", row.HammingErrRate, scalar.PercentageOrNull, &out.HammingErrRate},
		{"L50", row.L50, scalar.NumberOrNull, &out.L50},
		{"N50", row.N50, scalar.NumberOrNull, &out.N50},
		{"num_contigs", row.NumContigs, scalar.NumberOrNull, &out.NumContigs},
		{"switch_err_rate", row.SwitchErrRate, scalar.PercentageOrNull, &out.SwitchErrRate},
		{"total_len", row.TotalLen, scalar.NumberOrNull, &out.TotalLen},
	}
	for _, c := range cells {
		if *c.dst, err = c.parse(c.value); err != nil {
			return out, field(c.column, err)
		}
	}

	return out, nil
}

func MapAnnotation(_ *scalar.Parser, row source.Annotation) (entity.Annotation, error) {
	out := entity.Annotation{
		AnnotationType: plain(row.AnnotationType),
		FileLocation:   plain(row.Location),
		Filename:       scalar.FileNameFromPath(plain(row.Location)),
		Haplotype:      entity.Haplotype(plain(row.Haplotype)),
		Release:        plain(row.Release),
		SampleID:       plain(row.SampleID),
	}

	var err error
	if out.FileSize, err = scalar.NumberOrNA(row.FileSize); err != nil {
		return out, field("file_size", err)
	}

	return out, nil
}

func MapAlignment(_ *scalar.Parser, row source.Alignment) (entity.Alignment, error) {
	file := plain(row.File)
	out := entity.Alignment{
		Alignment:            plain(row.Alignment),
		Filename:             file,
		Filetype:             scalar.TypeFromFilename(file),
		Loc:                  plain(row.Loc),
		Pipeline:             plain(row.Pipeline),
		ReferenceCoordinates: scalar.StringOrNull(row.ReferenceCoordinates),
		UseCase:              scalar.StringArray(row.UseCase),
		Version:              scalar.StringOrNull(row.Version),
	}

	var err error
	if out.FileSize, err = scalar.Number(row.FileSize); err != nil {
		return out, field("file_size", err)
	}

	return out, nil
}
