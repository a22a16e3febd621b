package utils

import (
	"errors"

	"github.com/kerem-kaynak/redmane/internal/entity"
	"gorm.io/gorm"
)

func ListProjects(db *gorm.DB) ([]entity.Project, error) {
	projects := []entity.Project{}
	if err := db.Order("id").Find(&projects).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return projects, nil
}

// ListDatasets filters by project and dataset id when given. A filter naming
// a missing project or dataset is reported as not found.
func ListDatasets(db *gorm.DB, projectID, datasetID *uint) ([]entity.Dataset, error) {
	query := db.Model(&entity.Dataset{}).Order("id")
	if projectID != nil {
		if _, err := GetProject(db, *projectID); err != nil {
			return nil, err
		}
		query = query.Where("project_id = ?", *projectID)
	}
	if datasetID != nil {
		if _, err := DatasetInProject(db, *datasetID, nil); err != nil {
			return nil, err
		}
		query = query.Where("id = ?", *datasetID)
	}

	datasets := []entity.Dataset{}
	if err := query.Find(&datasets).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return datasets, nil
}

func GetDatasetWithMetadata(db *gorm.DB, datasetID uint, projectID *uint) (*entity.DatasetWithMetadata, error) {
	dataset, err := DatasetInProject(db, datasetID, projectID)
	if err != nil {
		return nil, err
	}

	metadata := []entity.DatasetMetadata{}
	if err := db.Where("dataset_id = ?", dataset.ID).Order("id").Find(&metadata).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	return &entity.DatasetWithMetadata{Dataset: *dataset, Metadata: metadata}, nil
}

// ListPatients returns patients with their sample count. Counts come from a
// single grouped query over samples rather than one query per patient.
func ListPatients(db *gorm.DB, projectID *uint) ([]entity.PatientWithSampleCount, error) {
	query := db.Model(&entity.Patient{}).Order("id")
	countQuery := db.Model(&entity.Sample{}).
		Select("patient_id, COUNT(*) AS sample_count").
		Group("patient_id")
	if projectID != nil {
		if _, err := GetProject(db, *projectID); err != nil {
			return nil, err
		}
		query = query.Where("project_id = ?", *projectID)
		countQuery = countQuery.Where("patient_id IN (?)",
			db.Model(&entity.Patient{}).Select("id").Where("project_id = ?", *projectID))
	}

	var patients []entity.Patient
	if err := query.Find(&patients).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	var countsRaw []struct {
		PatientID   uint
		SampleCount int64
	}
	if err := countQuery.Scan(&countsRaw).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	counts := make(map[uint]int64, len(countsRaw))
	for _, row := range countsRaw {
		counts[row.PatientID] = row.SampleCount
	}

	response := make([]entity.PatientWithSampleCount, 0, len(patients))
	for _, patient := range patients {
		response = append(response, entity.PatientWithSampleCount{
			Patient:     patient,
			SampleCount: counts[patient.ID],
		})
	}
	return response, nil
}

func GetPatientWithMetadata(db *gorm.DB, patientID uint, projectID *uint) (*entity.PatientWithMetadata, error) {
	patient, err := PatientInProject(db, patientID, projectID)
	if err != nil {
		return nil, err
	}

	metadata, err := patientMetadata(db, patient.ID)
	if err != nil {
		return nil, err
	}

	return &entity.PatientWithMetadata{Patient: *patient, Metadata: metadata}, nil
}

func GetPatientWithSamples(db *gorm.DB, patientID uint, projectID *uint) (*entity.PatientWithSamples, error) {
	withMetadata, err := GetPatientWithMetadata(db, patientID, projectID)
	if err != nil {
		return nil, err
	}

	samples, err := samplesWithMetadata(db.Where("patient_id = ?", patientID))
	if err != nil {
		return nil, err
	}

	return &entity.PatientWithSamples{PatientWithMetadata: *withMetadata, Samples: samples}, nil
}

// ListSamples lists the samples of one patient, or every sample when
// patientID is nil.
func ListSamples(db *gorm.DB, patientID *uint) ([]entity.SampleWithMetadata, error) {
	query := db.Model(&entity.Sample{})
	if patientID != nil {
		if _, err := PatientInProject(db, *patientID, nil); err != nil {
			return nil, err
		}
		query = query.Where("patient_id = ?", *patientID)
	}
	return samplesWithMetadata(query)
}

func GetSample(db *gorm.DB, sampleID uint, projectID *uint) (*entity.SampleWithPatient, error) {
	sample, patient, err := SampleInProject(db, sampleID, projectID)
	if err != nil {
		return nil, err
	}

	metadata, err := sampleMetadata(db, sample.ID)
	if err != nil {
		return nil, err
	}

	return &entity.SampleWithPatient{
		SampleWithMetadata: entity.SampleWithMetadata{Sample: *sample, Metadata: metadata},
		Patient:            *patient,
	}, nil
}

// ListRawFilesWithMetadata resolves each file's sample link. Files without a
// sample come back with null sample fields.
func ListRawFilesWithMetadata(db *gorm.DB, datasetID uint) ([]entity.RawFileWithMetadata, error) {
	if _, err := DatasetInProject(db, datasetID, nil); err != nil {
		return nil, err
	}

	var files []entity.RawFile
	if err := db.Where("dataset_id = ?", datasetID).Order("id").Find(&files).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	response := make([]entity.RawFileWithMetadata, 0, len(files))
	for _, file := range files {
		metadata := []entity.RawFileMetadata{}
		if err := db.Where("raw_file_id = ?", file.ID).Order("id").Find(&metadata).Error; err != nil {
			return nil, ErrStorage.Wrap(err)
		}

		item := entity.RawFileWithMetadata{
			ID:        file.ID,
			DatasetID: file.DatasetID,
			Path:      file.Path,
			Metadata:  metadata,
		}

		if file.SampleID != nil {
			var sample entity.Sample
			err := db.First(&sample, *file.SampleID).Error
			switch {
			case err == nil:
				sampleMeta, err := sampleMetadata(db, sample.ID)
				if err != nil {
					return nil, err
				}
				id, extID := sample.ID, sample.ExtSampleID
				item.SampleID = &id
				item.ExtSampleID = &extID
				item.SampleMetadata = sampleMeta
			case errors.Is(err, gorm.ErrRecordNotFound):
				// dangling link, reported as unlinked
			default:
				return nil, ErrStorage.Wrap(err)
			}
		}

		response = append(response, item)
	}
	return response, nil
}

// samplesWithMetadata runs the sample query, then one metadata query per sample.
func samplesWithMetadata(query *gorm.DB) ([]entity.SampleWithMetadata, error) {
	var samples []entity.Sample
	if err := query.Order("id").Find(&samples).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	db := query.Session(&gorm.Session{NewDB: true})
	response := make([]entity.SampleWithMetadata, 0, len(samples))
	for _, sample := range samples {
		metadata, err := sampleMetadata(db, sample.ID)
		if err != nil {
			return nil, err
		}
		response = append(response, entity.SampleWithMetadata{Sample: sample, Metadata: metadata})
	}
	return response, nil
}

func patientMetadata(db *gorm.DB, patientID uint) ([]entity.PatientMetadata, error) {
	metadata := []entity.PatientMetadata{}
	if err := db.Where("patient_id = ?", patientID).Order("id").Find(&metadata).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return metadata, nil
}

func sampleMetadata(db *gorm.DB, sampleID uint) ([]entity.SampleMetadata, error) {
	metadata := []entity.SampleMetadata{}
	if err := db.Where("sample_id = ?", sampleID).Order("id").Find(&metadata).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return metadata, nil
}
