package utils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/config"
	"github.com/kerem-kaynak/redmane/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &appcontext.Config{
		DatabaseURL:       "sqlite://" + filepath.Join(t.TempDir(), "catalog.db"),
		DBMaxIdleConns:    1,
		DBMaxOpenConns:    1,
		DBConnMaxLifetime: time.Hour,
	}
	db, err := config.InitDB(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	project entity.Project
	dataset entity.Dataset
	patient entity.Patient
	sample  entity.Sample
}

// seedProject creates one project with a dataset, a patient and a sample,
// each carrying one metadata row.
func seedProject(t *testing.T, db *gorm.DB, name string) fixture {
	t.Helper()

	var f fixture
	f.project = entity.Project{Name: name, Status: "active"}
	require.NoError(t, CreateProject(db, &f.project))

	f.dataset = entity.Dataset{ProjectID: f.project.ID, Name: name + "-wgs"}
	require.NoError(t, CreateDataset(db, &f.dataset))
	require.NoError(t, AddDatasetMetadata(db, &entity.DatasetMetadata{DatasetID: f.dataset.ID, Key: "assay", Value: "WGS"}))

	f.patient = entity.Patient{ProjectID: f.project.ID, ExtPatientID: name + "-P1", ExtPatientURL: "https://example.org/p/1"}
	require.NoError(t, CreatePatient(db, &f.patient))
	require.NoError(t, AddPatientMetadata(db, &entity.PatientMetadata{PatientID: f.patient.ID, Key: "sex", Value: "F"}))

	f.sample = entity.Sample{PatientID: f.patient.ID, ExtSampleID: name + "-S1", ExtSampleURL: "https://example.org/s/1"}
	require.NoError(t, CreateSample(db, &f.sample))
	require.NoError(t, AddSampleMetadata(db, &entity.SampleMetadata{SampleID: f.sample.ID, Key: "tissue", Value: "blood"}))

	return f
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}

func uintPtr(v uint) *uint {
	return &v
}
