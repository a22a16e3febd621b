package utils

import (
	"github.com/kerem-kaynak/redmane/internal/entity"
	"gorm.io/gorm"
)

func GetProject(db *gorm.DB, projectID uint) (*entity.Project, error) {
	var project entity.Project
	if err := db.First(&project, projectID).Error; err != nil {
		return nil, storageErr(err, "project %d", projectID)
	}
	return &project, nil
}

// DatasetInProject loads a dataset, optionally requiring it to belong to projectID.
func DatasetInProject(db *gorm.DB, datasetID uint, projectID *uint) (*entity.Dataset, error) {
	var dataset entity.Dataset
	if err := db.First(&dataset, datasetID).Error; err != nil {
		return nil, storageErr(err, "dataset %d", datasetID)
	}
	if projectID != nil && dataset.ProjectID != *projectID {
		return nil, ErrNotFound.New("dataset %d in project %d", datasetID, *projectID)
	}
	return &dataset, nil
}

func PatientInProject(db *gorm.DB, patientID uint, projectID *uint) (*entity.Patient, error) {
	var patient entity.Patient
	if err := db.First(&patient, patientID).Error; err != nil {
		return nil, storageErr(err, "patient %d", patientID)
	}
	if projectID != nil && patient.ProjectID != *projectID {
		return nil, ErrNotFound.New("patient %d in project %d", patientID, *projectID)
	}
	return &patient, nil
}

// SampleInProject loads a sample and its owning patient. The project filter
// goes through the patient, samples carry no project of their own.
func SampleInProject(db *gorm.DB, sampleID uint, projectID *uint) (*entity.Sample, *entity.Patient, error) {
	var sample entity.Sample
	if err := db.First(&sample, sampleID).Error; err != nil {
		return nil, nil, storageErr(err, "sample %d", sampleID)
	}
	patient, err := PatientInProject(db, sample.PatientID, projectID)
	if err != nil {
		if ErrNotFound.Has(err) {
			return nil, nil, ErrNotFound.New("sample %d", sampleID)
		}
		return nil, nil, err
	}
	return &sample, patient, nil
}
