package entity

// Composite views returned by the detail endpoints. They are assembled in
// memory from flat queries and never migrated.

type DatasetWithMetadata struct {
	Dataset
	Metadata []DatasetMetadata `json:"metadata"`
}

type PatientWithSampleCount struct {
	Patient
	SampleCount int64 `json:"sample_count"`
}

type PatientWithMetadata struct {
	Patient
	Metadata []PatientMetadata `json:"metadata"`
}

type SampleWithMetadata struct {
	Sample
	Metadata []SampleMetadata `json:"metadata"`
}

type SampleWithPatient struct {
	SampleWithMetadata
	Patient Patient `json:"patient"`
}

type PatientWithSamples struct {
	PatientWithMetadata
	Samples []SampleWithMetadata `json:"samples"`
}

// RawFileWithMetadata carries the resolved sample link. SampleID, ExtSampleID
// and SampleMetadata are null when the file is not linked to a sample.
type RawFileWithMetadata struct {
	ID             uint              `json:"id"`
	DatasetID      uint              `json:"dataset_id"`
	Path           string            `json:"path"`
	SampleID       *uint             `json:"sample_id"`
	ExtSampleID    *string           `json:"ext_sample_id"`
	Metadata       []RawFileMetadata `json:"metadata"`
	SampleMetadata []SampleMetadata  `json:"sample_metadata"`
}

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{
		&Project{},
		&Dataset{},
		&DatasetMetadata{},
		&Patient{},
		&PatientMetadata{},
		&Sample{},
		&SampleMetadata{},
		&RawFile{},
		&RawFileMetadata{},
	}
}
