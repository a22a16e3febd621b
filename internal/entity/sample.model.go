package entity

type Sample struct {
	ID           uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    uint             `gorm:"not null;index" json:"patient_id"`
	ExtSampleID  string           `gorm:"column:ext_sample_id;type:varchar(255)" json:"ext_sample_id"`
	ExtSampleURL string           `gorm:"column:ext_sample_url;type:text" json:"ext_sample_url"`
	Metadata     []SampleMetadata `gorm:"foreignKey:SampleID;constraint:OnDelete:CASCADE" json:"-"`
	RawFiles     []RawFile        `gorm:"foreignKey:SampleID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Sample) TableName() string {
	return "samples"
}

type SampleMetadata struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SampleID uint   `gorm:"not null;index" json:"sample_id"`
	Key      string `gorm:"type:varchar(255)" json:"key"`
	Value    string `gorm:"type:text" json:"value"`
}

func (SampleMetadata) TableName() string {
	return "samples_metadata"
}
