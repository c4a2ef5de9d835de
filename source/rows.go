package source

// Row types mirror the intermediate sheets produced by the preprocessing
// scripts. Columns not listed by RequiredColumns may be absent from a sheet, in
// which case the field reads as empty.

// RawSequencingData is one row of sequencing-data.csv. The sheet is a union of
// per-platform tracking sheets so no column is required.
type RawSequencingData struct {
	Accession                string `csv:"accession"`
	Basecaller               string `csv:"basecaller"`
	BasecallerModel          string `csv:"basecaller_model"`
	BasecallerVersion        string `csv:"basecaller_version"`
	BioprojectAccession      string `csv:"bioproject_accession"`
	BiosampleID              string `csv:"biosample_id"`
	CCSAlgorithm             string `csv:"ccs_algorithm"`
	Coverage                 string `csv:"coverage"`
	Coverage100kbPlus        string `csv:"coverage_100kb_plus"`
	DataType                 string `csv:"data_type"`
	DeepConsensusVersion     string `csv:"DeepConsensus_version"`
	DesignDescription        string `csv:"design_description"`
	FamilyID                 string `csv:"family_id"`
	FileSize                 string `csv:"file_size"`
	Filename                 string `csv:"filename"`
	Filetype                 string `csv:"filetype"`
	FiveHundredkbPlus        string `csv:"500kb+"`
	FourHundredkbPlus        string `csv:"400kb+"`
	GeneratorContact         string `csv:"generator_contact"`
	GeneratorFacility        string `csv:"generator_facility"`
	InstrumentModel          string `csv:"instrument_model"`
	LibraryID                string `csv:"library_ID"`
	LibraryLayout            string `csv:"library_layout"`
	LibrarySelection         string `csv:"library_selection"`
	LibrarySource            string `csv:"library_source"`
	LibraryStrategy          string `csv:"library_strategy"`
	Max                      string `csv:"max"`
	Mean                     string `csv:"mean"`
	Min                      string `csv:"min"`
	MMTag                    string `csv:"MM_tag"`
	N25                      string `csv:"N25"`
	N50                      string `csv:"N50"`
	N75                      string `csv:"N75"`
	Notes                    string `csv:"notes"`
	NTSMScore                string `csv:"ntsm_score"`
	OneMbPlus                string `csv:"1Mb+"`
	Path                     string `csv:"path"`
	Platform                 string `csv:"platform"`
	PolymeraseVersion        string `csv:"polymerase_version"`
	PopulationAbbreviation   string `csv:"population_abbreviation"`
	PopulationDescriptor     string `csv:"population_descriptor"`
	Quartile25               string `csv:"quartile_25"`
	Quartile50               string `csv:"quartile_50"`
	Quartile75               string `csv:"quartile_75"`
	SampleID                 string `csv:"sample_ID"`
	SeqKit                   string `csv:"seq_kit"`
	SeqPlateChemistryVersion string `csv:"seq_plate_chemistry_version"`
	ShearMethod              string `csv:"shear_method"`
	SizeSelection            string `csv:"size_selection"`
	Study                    string `csv:"study"`
	ThreeHundredkbPlus       string `csv:"300kb+"`
	Title                    string `csv:"title"`
	TotalBp                  string `csv:"total_bp"`
	TotalGbp                 string `csv:"total_Gbp"`
	TotalReads               string `csv:"total_reads"`
	TwoHundredkbPlus         string `csv:"200kb+"`
	Whales                   string `csv:"whales"`
}

func (RawSequencingData) RequiredColumns() []string { return nil }

// Assembly is one row of assemblies.csv. The QC columns only exist in some
// releases.
type Assembly struct {
	Assembly               string `csv:"assembly"`
	AssemblyMD5            string `csv:"assembly_md5"`
	BiosampleID            string `csv:"biosample_id"`
	FamilyID               string `csv:"family_id"`
	FastaSHA256            string `csv:"fasta_sha256"`
	FileSize               string `csv:"file_size"`
	Haplotype              string `csv:"haplotype"`
	PopulationAbbreviation string `csv:"population_abbreviation"`
	PopulationDescriptor   string `csv:"population_descriptor"`
	Release                string `csv:"release"`
	SampleID               string `csv:"sample_id"`

	Frag           string `csv:"frag"`
	FullDup        string `csv:"full_dup"`
	FullSgl        string `csv:"full_sgl"`
	GCPFasta       string `csv:"gcp_fasta"`
	HammingErrRate string `csv:"hamming_err_rate"`
	L50            string `csv:"L50"`
	N50            string `csv:"N50"`
	NumContigs     string `csv:"num_contigs"`
	QV             string `csv:"qv"`
	SwitchErrRate  string `csv:"switch_err_rate"`
	TotalLen       string `csv:"total_len"`
}

func (Assembly) RequiredColumns() []string {
	return []string{
		"assembly",
		"assembly_md5",
		"biosample_id",
		"family_id",
		"fasta_sha256",
		"file_size",
		"haplotype",
		"population_abbreviation",
		"population_descriptor",
		"release",
		"sample_id",
	}
}

// Annotation is one row of annotations.csv.
type Annotation struct {
	AnnotationType string `csv:"annotation_type"`
	FileSize       string `csv:"file_size"`
	Haplotype      string `csv:"haplotype"`
	Location       string `csv:"location"`
	Release        string `csv:"release"`
	SampleID       string `csv:"sample_id"`
}

func (Annotation) RequiredColumns() []string {
	return []string{
		"annotation_type",
		"file_size",
		"haplotype",
		"location",
		"release",
		"sample_id",
	}
}

// Alignment is one row of alignments.csv.
type Alignment struct {
	Alignment            string `csv:"alignment"`
	File                 string `csv:"file"`
	FileSize             string `csv:"file_size"`
	Loc                  string `csv:"loc"`
	Pipeline             string `csv:"pipeline"`
	ReferenceCoordinates string `csv:"reference_coordinates"`
	UseCase              string `csv:"use_case"`
	Version              string `csv:"version"`
}

func (Alignment) RequiredColumns() []string {
	return []string{
		"alignment",
		"file",
		"file_size",
		"loc",
		"pipeline",
		"reference_coordinates",
		"use_case",
		"version",
	}
}
