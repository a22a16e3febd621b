package utils

import (
	"strconv"
	"testing"

	"github.com/kerem-kaynak/redmane/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDatasetSizeNeverDuplicatesKeys(t *testing.T) {
	db := newTestDB(t)
	f := seedProject(t, db, "alpha")

	_, err := UpdateDatasetSize(db, SizeUpdate{DatasetID: f.dataset.ID, RawFileSize: "10 GB", LastSizeUpdate: "2024-01-01"})
	require.NoError(t, err)
	updated, err := UpdateDatasetSize(db, SizeUpdate{DatasetID: f.dataset.ID, RawFileSize: "12 GB", LastSizeUpdate: "2024-02-01"})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, "12 GB", updated[0].Value)
	assert.Equal(t, "2024-02-01", updated[1].Value)

	assert.EqualValues(t, 1, countRows(t, db, &entity.DatasetMetadata{}, "dataset_id = ? AND key = ?", f.dataset.ID, RawFileSizeKey))
	assert.EqualValues(t, 1, countRows(t, db, &entity.DatasetMetadata{}, "dataset_id = ? AND key = ?", f.dataset.ID, LastSizeUpdateKey))

	got, err := GetDatasetWithMetadata(db, f.dataset.ID, nil)
	require.NoError(t, err)
	values := map[string]string{}
	for _, row := range got.Metadata {
		values[row.Key] = row.Value
	}
	assert.Equal(t, map[string]string{"assay": "WGS", RawFileSizeKey: "12 GB", LastSizeUpdateKey: "2024-02-01"}, values)
}

func TestUpsertDatasetMetadataCollapsesDuplicates(t *testing.T) {
	db := newTestDB(t)
	f := seedProject(t, db, "alpha")

	first := entity.DatasetMetadata{DatasetID: f.dataset.ID, Key: RawFileSizeKey, Value: "1"}
	require.NoError(t, AddDatasetMetadata(db, &first))
	require.NoError(t, AddDatasetMetadata(db, &entity.DatasetMetadata{DatasetID: f.dataset.ID, Key: RawFileSizeKey, Value: "2"}))

	row, err := UpsertDatasetMetadata(db, f.dataset.ID, RawFileSizeKey, "3")
	require.NoError(t, err)
	assert.Equal(t, first.ID, row.ID)
	assert.Equal(t, "3", row.Value)
	assert.EqualValues(t, 1, countRows(t, db, &entity.DatasetMetadata{}, "dataset_id = ? AND key = ?", f.dataset.ID, RawFileSizeKey))
}

func TestUpdateDatasetSizeMissingDataset(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateDatasetSize(db, SizeUpdate{DatasetID: 42, RawFileSize: "1", LastSizeUpdate: "now"})
	assert.True(t, ErrNotFound.Has(err))
	assert.EqualValues(t, 0, countRows(t, db, &entity.DatasetMetadata{}, ""))
}

func TestDeleteProjectCascades(t *testing.T) {
	db := newTestDB(t)
	doomed := seedProject(t, db, "alpha")
	kept := seedProject(t, db, "beta")

	_, err := AddRawFiles(db, []RawFileInput{{
		DatasetID: doomed.dataset.ID,
		Path:      "/data/a.bam",
		Metadata:  []RawFileMetadataInput{{MetadataKey: entity.SampleIDKey, MetadataValue: strconv.Itoa(int(doomed.sample.ID))}},
	}})
	require.NoError(t, err)
	_, err = AddRawFiles(db, []RawFileInput{{DatasetID: kept.dataset.ID, Path: "/data/b.bam"}})
	require.NoError(t, err)

	require.NoError(t, DeleteProject(db, doomed.project.ID))

	assert.EqualValues(t, 1, countRows(t, db, &entity.Project{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.Dataset{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.DatasetMetadata{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.Patient{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.PatientMetadata{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.Sample{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.SampleMetadata{}, ""))
	assert.EqualValues(t, 1, countRows(t, db, &entity.RawFile{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &entity.RawFileMetadata{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &entity.Dataset{}, "project_id = ?", doomed.project.ID))

	err = DeleteProject(db, doomed.project.ID)
	assert.True(t, ErrNotFound.Has(err))
}

func TestAddRawFilesLinksSamples(t *testing.T) {
	db := newTestDB(t)
	f := seedProject(t, db, "alpha")

	files, err := AddRawFiles(db, []RawFileInput{
		{
			DatasetID: f.dataset.ID,
			Path:      "/a.bam",
			Metadata: []RawFileMetadataInput{
				{MetadataKey: entity.SampleIDKey, MetadataValue: strconv.Itoa(int(f.sample.ID))},
				{MetadataKey: "md5", MetadataValue: "abc"},
			},
		},
		{
			DatasetID: f.dataset.ID,
			Path:      "/missing.bam",
			Metadata:  []RawFileMetadataInput{{MetadataKey: entity.SampleIDKey, MetadataValue: "7777"}},
		},
		{
			DatasetID: f.dataset.ID,
			Path:      "/malformed.bam",
			Metadata:  []RawFileMetadataInput{{MetadataKey: entity.SampleIDKey, MetadataValue: "S-01"}},
		},
		{
			DatasetID: f.dataset.ID,
			Path:      "/explicit.bam",
			SampleID:  &f.sample.ID,
		},
	})
	require.NoError(t, err)
	require.Len(t, files, 4)

	got, err := ListRawFilesWithMetadata(db, f.dataset.ID)
	require.NoError(t, err)
	require.Len(t, got, 4)

	linked := got[0]
	assert.Equal(t, "/a.bam", linked.Path)
	require.NotNil(t, linked.SampleID)
	assert.Equal(t, f.sample.ID, *linked.SampleID)
	require.NotNil(t, linked.ExtSampleID)
	assert.Equal(t, "alpha-S1", *linked.ExtSampleID)
	require.Len(t, linked.SampleMetadata, 1)
	assert.Equal(t, "tissue", linked.SampleMetadata[0].Key)
	require.Len(t, linked.Metadata, 2)
	assert.Equal(t, entity.SampleIDKey, linked.Metadata[0].MetadataKey)

	for _, unlinked := range got[1:3] {
		assert.Nil(t, unlinked.SampleID, unlinked.Path)
		assert.Nil(t, unlinked.ExtSampleID, unlinked.Path)
		assert.Nil(t, unlinked.SampleMetadata, unlinked.Path)
		assert.Len(t, unlinked.Metadata, 1, unlinked.Path)
	}

	require.NotNil(t, got[3].SampleID)
	assert.Equal(t, f.sample.ID, *got[3].SampleID)
	assert.Empty(t, got[3].Metadata)
}

func TestAddRawFilesRollsBackOnMissingParent(t *testing.T) {
	db := newTestDB(t)
	f := seedProject(t, db, "alpha")

	_, err := AddRawFiles(db, []RawFileInput{
		{DatasetID: f.dataset.ID, Path: "/ok.bam", Metadata: []RawFileMetadataInput{{MetadataKey: "md5", MetadataValue: "x"}}},
		{DatasetID: 999, Path: "/orphan.bam"},
	})
	assert.True(t, ErrNotFound.Has(err))

	_, err = AddRawFiles(db, []RawFileInput{{DatasetID: f.dataset.ID, Path: "/bad-sample.bam", SampleID: uintPtr(999)}})
	assert.True(t, ErrNotFound.Has(err))

	assert.EqualValues(t, 0, countRows(t, db, &entity.RawFile{}, ""))
	assert.EqualValues(t, 0, countRows(t, db, &entity.RawFileMetadata{}, ""))
}

func TestDeletingSampleUnlinksRawFiles(t *testing.T) {
	db := newTestDB(t)
	f := seedProject(t, db, "alpha")

	_, err := AddRawFiles(db, []RawFileInput{{DatasetID: f.dataset.ID, Path: "/a.bam", SampleID: &f.sample.ID}})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&entity.Sample{}, f.sample.ID).Error)

	got, err := ListRawFilesWithMetadata(db, f.dataset.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].SampleID)
	assert.Nil(t, got[0].ExtSampleID)
	assert.EqualValues(t, 0, countRows(t, db, &entity.SampleMetadata{}, ""))
}

func TestCreateRequiresParent(t *testing.T) {
	db := newTestDB(t)

	assert.True(t, ErrNotFound.Has(CreateDataset(db, &entity.Dataset{ProjectID: 5, Name: "x"})))
	assert.True(t, ErrNotFound.Has(CreatePatient(db, &entity.Patient{ProjectID: 5})))
	assert.True(t, ErrNotFound.Has(CreateSample(db, &entity.Sample{PatientID: 5})))
	assert.True(t, ErrNotFound.Has(AddDatasetMetadata(db, &entity.DatasetMetadata{DatasetID: 5, Key: "k", Value: "v"})))
	assert.True(t, ErrNotFound.Has(AddPatientMetadata(db, &entity.PatientMetadata{PatientID: 5, Key: "k"})))
	assert.True(t, ErrNotFound.Has(AddSampleMetadata(db, &entity.SampleMetadata{SampleID: 5, Key: "k"})))
}

func TestAddRawFilesStorageFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	f := seedProject(t, db, "alpha")

	require.NoError(t, db.Exec("DROP TABLE raw_files_metadata").Error)

	_, err := AddRawFiles(db, []RawFileInput{{
		DatasetID: f.dataset.ID,
		Path:      "/a.bam",
		Metadata:  []RawFileMetadataInput{{MetadataKey: "md5", MetadataValue: "abc"}},
	}})
	require.Error(t, err)
	assert.True(t, ErrStorage.Has(err))
	assert.False(t, ErrNotFound.Has(err))
	assert.EqualValues(t, 0, countRows(t, db, &entity.RawFile{}, ""))
}
