package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kerem-kaynak/redmane/internal/entity"
	"gorm.io/gorm"
)

const (
	RawFileSizeKey    = "raw_file_size"
	LastSizeUpdateKey = "last_size_update"
)

type RawFileMetadataInput struct {
	MetadataKey   string `json:"metadata_key" binding:"required"`
	MetadataValue string `json:"metadata_value"`
}

// RawFileInput is one file of an ingest batch. SampleID may be given
// directly; otherwise a numeric "sample_id" metadata entry is used.
type RawFileInput struct {
	DatasetID uint                   `json:"dataset_id" binding:"required"`
	Path      string                 `json:"path" binding:"required"`
	SampleID  *uint                  `json:"sample_id"`
	Metadata  []RawFileMetadataInput `json:"metadata" binding:"dive"`
}

type SizeUpdate struct {
	DatasetID      uint   `json:"dataset_id" binding:"required"`
	RawFileSize    string `json:"raw_file_size" binding:"required"`
	LastSizeUpdate string `json:"last_size_update" binding:"required"`
}

func CreateProject(db *gorm.DB, project *entity.Project) error {
	if err := db.Create(project).Error; err != nil {
		return ErrStorage.Wrap(err)
	}
	return nil
}

func CreateDataset(db *gorm.DB, dataset *entity.Dataset) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetProject(tx, dataset.ProjectID); err != nil {
			return err
		}
		return storageErr(tx.Create(dataset).Error, "dataset")
	})
}

func CreatePatient(db *gorm.DB, patient *entity.Patient) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetProject(tx, patient.ProjectID); err != nil {
			return err
		}
		return storageErr(tx.Create(patient).Error, "patient")
	})
}

func CreateSample(db *gorm.DB, sample *entity.Sample) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := PatientInProject(tx, sample.PatientID, nil); err != nil {
			return err
		}
		return storageErr(tx.Create(sample).Error, "sample")
	})
}

func AddDatasetMetadata(db *gorm.DB, row *entity.DatasetMetadata) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := DatasetInProject(tx, row.DatasetID, nil); err != nil {
			return err
		}
		return storageErr(tx.Create(row).Error, "dataset metadata")
	})
}

func AddPatientMetadata(db *gorm.DB, row *entity.PatientMetadata) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := PatientInProject(tx, row.PatientID, nil); err != nil {
			return err
		}
		return storageErr(tx.Create(row).Error, "patient metadata")
	})
}

func AddSampleMetadata(db *gorm.DB, row *entity.SampleMetadata) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, _, err := SampleInProject(tx, row.SampleID, nil); err != nil {
			return err
		}
		return storageErr(tx.Create(row).Error, "sample metadata")
	})
}

// AddRawFiles stores a batch of files with their metadata in one transaction.
// A missing dataset or an explicit missing sample aborts the whole batch.
func AddRawFiles(db *gorm.DB, inputs []RawFileInput) ([]entity.RawFile, error) {
	files := make([]entity.RawFile, 0, len(inputs))

	err := db.Transaction(func(tx *gorm.DB) error {
		seenDatasets := make(map[uint]bool)
		for _, input := range inputs {
			if !seenDatasets[input.DatasetID] {
				if _, err := DatasetInProject(tx, input.DatasetID, nil); err != nil {
					return err
				}
				seenDatasets[input.DatasetID] = true
			}

			sampleID, err := resolveSampleLink(tx, input)
			if err != nil {
				return err
			}

			file := entity.RawFile{
				DatasetID: input.DatasetID,
				SampleID:  sampleID,
				Path:      input.Path,
			}
			for _, m := range input.Metadata {
				file.Metadata = append(file.Metadata, entity.RawFileMetadata{
					MetadataKey:   m.MetadataKey,
					MetadataValue: m.MetadataValue,
				})
			}

			if err := tx.Create(&file).Error; err != nil {
				return ErrStorage.Wrap(err)
			}
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// resolveSampleLink returns the sample a new file points at. An explicit
// SampleID must exist. The "sample_id" metadata convention is best effort:
// malformed or unknown ids leave the file unlinked.
func resolveSampleLink(tx *gorm.DB, input RawFileInput) (*uint, error) {
	if input.SampleID != nil {
		if _, _, err := SampleInProject(tx, *input.SampleID, nil); err != nil {
			return nil, err
		}
		id := *input.SampleID
		return &id, nil
	}

	for _, m := range input.Metadata {
		if m.MetadataKey != entity.SampleIDKey {
			continue
		}
		parsed, err := strconv.ParseUint(strings.TrimSpace(m.MetadataValue), 10, 64)
		if err != nil || parsed == 0 {
			return nil, nil
		}
		var sample entity.Sample
		err = tx.First(&sample, uint(parsed)).Error
		switch {
		case err == nil:
			return &sample.ID, nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, nil
		default:
			return nil, ErrStorage.Wrap(err)
		}
	}
	return nil, nil
}

// UpsertDatasetMetadata keeps exactly one row for (datasetID, key): the oldest
// row is overwritten and any duplicates are removed, or a new row is inserted.
// Callers are expected to run it inside a transaction.
func UpsertDatasetMetadata(tx *gorm.DB, datasetID uint, key, value string) (*entity.DatasetMetadata, error) {
	var rows []entity.DatasetMetadata
	if err := tx.Where(&entity.DatasetMetadata{DatasetID: datasetID, Key: key}).Order("id").Find(&rows).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	if len(rows) == 0 {
		row := entity.DatasetMetadata{DatasetID: datasetID, Key: key, Value: value}
		if err := tx.Create(&row).Error; err != nil {
			return nil, ErrStorage.Wrap(err)
		}
		return &row, nil
	}

	row := rows[0]
	if err := tx.Model(&row).Update("value", value).Error; err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	row.Value = value

	if len(rows) > 1 {
		extra := make([]uint, 0, len(rows)-1)
		for _, dup := range rows[1:] {
			extra = append(extra, dup.ID)
		}
		if err := tx.Delete(&entity.DatasetMetadata{}, extra).Error; err != nil {
			return nil, ErrStorage.Wrap(err)
		}
	}
	return &row, nil
}

// UpdateDatasetSize upserts the raw file size bookkeeping keys in one commit.
func UpdateDatasetSize(db *gorm.DB, update SizeUpdate) ([]entity.DatasetMetadata, error) {
	var updated []entity.DatasetMetadata

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := DatasetInProject(tx, update.DatasetID, nil); err != nil {
			return err
		}

		size, err := UpsertDatasetMetadata(tx, update.DatasetID, RawFileSizeKey, update.RawFileSize)
		if err != nil {
			return err
		}
		last, err := UpsertDatasetMetadata(tx, update.DatasetID, LastSizeUpdateKey, update.LastSizeUpdate)
		if err != nil {
			return err
		}

		updated = []entity.DatasetMetadata{*size, *last}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project. Datasets, patients, samples, raw files and
// all metadata go with it through ON DELETE CASCADE.
func DeleteProject(db *gorm.DB, projectID uint) error {
	result := db.Delete(&entity.Project{}, projectID)
	if result.Error != nil {
		return ErrStorage.Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound.New("project %d", projectID)
	}
	return nil
}
