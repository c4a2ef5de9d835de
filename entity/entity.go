// Package entity defines the records written to the explorer's catalog files.
// JSON field names are the contract with the UI's column and category
// configuration and must not change casually.
package entity

import (
	"github.com/human-pangenomics/hprccatalog/scalar"
	"gopkg.in/guregu/null.v3"
)

// Haplotype names keyed by the numeric code used in source sheets.
var HaplotypeByID = map[string]string{
	"1": "paternal",
	"2": "maternal",
}

// Haplotype translates a source haplotype code, passing unrecognized codes
// through unchanged.
func Haplotype(code string) string {
	if name, exists := HaplotypeByID[code]; exists {
		return name
	}
	return code
}

// RawSequencingData describes one sequencing output file. Every field is
// tri-state.
type RawSequencingData struct {
	Accession                scalar.Value[string]  `json:"accession"`
	Basecaller               scalar.Value[string]  `json:"basecaller"`
	BasecallerModel          scalar.Value[string]  `json:"basecallerModel"`
	BasecallerVersion        scalar.Value[string]  `json:"basecallerVersion"`
	BioprojectAccession      scalar.Value[string]  `json:"bioprojectAccession"`
	BiosampleAccession       scalar.Value[string]  `json:"biosampleAccession"`
	CCSAlgorithm             scalar.Value[string]  `json:"ccsAlgorithm"`
	Coverage                 scalar.Value[float64] `json:"coverage"`
	DataType                 scalar.Value[string]  `json:"dataType"`
	DeepConsensusVersion     scalar.Value[string]  `json:"deepConsensusVersion"`
	DesignDescription        scalar.Value[string]  `json:"designDescription"`
	FamilyID                 scalar.Value[string]  `json:"familyId"`
	FileSize                 scalar.Value[float64] `json:"fileSize"`
	Filename                 scalar.Value[string]  `json:"filename"`
	Filetype                 scalar.Value[string]  `json:"filetype"`
	FiveHundredkbPlus        scalar.Value[float64] `json:"fiveHundredkbPlus"`
	FourHundredkbPlus        scalar.Value[float64] `json:"fourHundredkbPlus"`
	GeneratorContact         scalar.Value[string]  `json:"generatorContact"`
	GeneratorFacility        scalar.Value[string]  `json:"generatorFacility"`
	InstrumentModel          scalar.Value[string]  `json:"instrumentModel"`
	LibraryID                scalar.Value[string]  `json:"libraryId"`
	LibraryLayout            scalar.Value[string]  `json:"libraryLayout"`
	LibrarySelection         scalar.Value[string]  `json:"librarySelection"`
	LibrarySource            scalar.Value[string]  `json:"librarySource"`
	LibraryStrategy          scalar.Value[string]  `json:"libraryStrategy"`
	Max                      scalar.Value[float64] `json:"max"`
	Mean                     scalar.Value[float64] `json:"mean"`
	Min                      scalar.Value[float64] `json:"min"`
	MMTag                    scalar.Value[bool]    `json:"mmTag"`
	N25                      scalar.Value[float64] `json:"n25"`
	N50                      scalar.Value[float64] `json:"n50"`
	N75                      scalar.Value[float64] `json:"n75"`
	Notes                    scalar.Value[string]  `json:"notes"`
	NTSMScore                scalar.Value[float64] `json:"ntsmScore"`
	OneHundredkbPlus         scalar.Value[float64] `json:"oneHundredkbPlus"`
	OneMbPlus                scalar.Value[float64] `json:"oneMbPlus"`
	Path                     scalar.Value[string]  `json:"path"`
	Platform                 scalar.Value[string]  `json:"platform"`
	PolymeraseVersion        scalar.Value[string]  `json:"polymeraseVersion"`
	PopulationAbbreviation   scalar.Value[string]  `json:"populationAbbreviation"`
	PopulationDescriptor     scalar.Value[string]  `json:"populationDescriptor"`
	Quartile25               scalar.Value[float64] `json:"quartile25"`
	Quartile50               scalar.Value[float64] `json:"quartile50"`
	Quartile75               scalar.Value[float64] `json:"quartile75"`
	SampleID                 scalar.Value[string]  `json:"sampleId"`
	SeqKit                   scalar.Value[string]  `json:"seqKit"`
	SeqPlateChemistryVersion scalar.Value[string]  `json:"seqPlateChemistryVersion"`
	ShearMethod              scalar.Value[string]  `json:"shearMethod"`
	SizeSelection            scalar.Value[string]  `json:"sizeSelection"`
	Study                    scalar.Value[string]  `json:"study"`
	ThreeHundredkbPlus       scalar.Value[float64] `json:"threeHundredkbPlus"`
	Title                    scalar.Value[string]  `json:"title"`
	TotalBp                  scalar.Value[float64] `json:"totalBp"`
	TotalGbp                 scalar.Value[float64] `json:"totalGbp"`
	TotalReads               scalar.Value[float64] `json:"totalReads"`
	TwoHundredkbPlus         scalar.Value[float64] `json:"twoHundredkbPlus"`
	Whales                   scalar.Value[float64] `json:"whales"`
}

// Assembly is one haplotype-resolved genome assembly of a sample.
type Assembly struct {
	AWSFasta               null.String           `json:"awsFasta"`
	BiosampleAccession     null.String           `json:"biosampleAccession"`
	FamilyID               null.String           `json:"familyId"`
	FastaMD5               string                `json:"fastaMd5"`
	FastaSHA256            null.String           `json:"fastaSha256"`
	FileSize               scalar.Value[float64] `json:"fileSize"`
	Filename               string                `json:"filename"`
	Frag                   null.Float            `json:"frag"`
	FullDup                null.Float            `json:"fullDup"`
	FullSgl                null.Float            `json:"fullSgl"`
	GCPFasta               null.String           `json:"gcpFasta"`
	HammingErrRate         null.Float            `json:"hammingErrRate"`
	Haplotype              string                `json:"haplotype"`
	L50                    null.Float            `json:"l50"`
	N50                    null.Float            `json:"n50"`
	NumContigs             null.Float            `json:"numContigs"`
	PopulationAbbreviation null.String           `json:"populationAbbreviation"`
	PopulationDescriptor   null.String           `json:"populationDescriptor"`
	QV                     scalar.NumberOrText   `json:"qv"`
	Release                string                `json:"release"`
	SampleID               string                `json:"sampleId"`
	SwitchErrRate          null.Float            `json:"switchErrRate"`
	TotalLen               null.Float            `json:"totalLen"`
}

// Annotation is one annotation file produced against an assembly.
type Annotation struct {
	AnnotationType string                `json:"annotationType"`
	FileLocation   string                `json:"fileLocation"`
	FileSize       scalar.Value[float64] `json:"fileSize"`
	Filename       string                `json:"filename"`
	Haplotype      string                `json:"haplotype"`
	Release        string                `json:"release"`
	SampleID       string                `json:"sampleId"`
}

// Alignment is one alignment or pangenome graph file. ReferenceCoordinates is
// null for coordinate-free files.
type Alignment struct {
	Alignment            string      `json:"alignment"`
	FileSize             float64     `json:"fileSize"`
	Filename             string      `json:"filename"`
	Filetype             string      `json:"filetype"`
	Loc                  string      `json:"loc"`
	Pipeline             string      `json:"pipeline"`
	ReferenceCoordinates null.String `json:"referenceCoordinates"`
	UseCase              []string    `json:"useCase"`
	Version              null.String `json:"version"`
}
