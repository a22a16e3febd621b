package entity

type Dataset struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID uint              `gorm:"not null;index" json:"project_id"`
	Name      string            `gorm:"type:varchar(255)" json:"name"`
	Metadata  []DatasetMetadata `gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE" json:"-"`
	RawFiles  []RawFile         `gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Dataset) TableName() string {
	return "datasets"
}

// DatasetMetadata keys are free-form and not unique per dataset. Only the
// size bookkeeping keys are kept to a single row, by upsert.
type DatasetMetadata struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID uint   `gorm:"not null;index:idx_datasets_metadata_dataset_key" json:"dataset_id"`
	Key       string `gorm:"type:varchar(255);not null;index:idx_datasets_metadata_dataset_key" json:"key"`
	Value     string `gorm:"type:text;not null" json:"value"`
}

func (DatasetMetadata) TableName() string {
	return "datasets_metadata"
}
