package entity

// SampleIDKey is the metadata key older clients use to point a raw file at a
// sample. It is kept as metadata and mirrored into RawFile.SampleID.
const SampleIDKey = "sample_id"

type RawFile struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID uint              `gorm:"not null;index" json:"dataset_id"`
	SampleID  *uint             `gorm:"index" json:"sample_id"`
	Path      string            `gorm:"type:text" json:"path"`
	Metadata  []RawFileMetadata `gorm:"foreignKey:RawFileID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RawFile) TableName() string {
	return "raw_files"
}

type RawFileMetadata struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RawFileID     uint   `gorm:"not null;index" json:"raw_file_id"`
	MetadataKey   string `gorm:"type:varchar(255);not null" json:"metadata_key"`
	MetadataValue string `gorm:"type:text;not null" json:"metadata_value"`
}

func (RawFileMetadata) TableName() string {
	return "raw_files_metadata"
}
