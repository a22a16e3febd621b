package entity

type Patient struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID       uint              `gorm:"not null;index" json:"project_id"`
	ExtPatientID    string            `gorm:"column:ext_patient_id;type:varchar(255)" json:"ext_patient_id"`
	ExtPatientURL   string            `gorm:"column:ext_patient_url;type:text" json:"ext_patient_url"`
	PublicPatientID *string           `gorm:"column:public_patient_id;type:varchar(255)" json:"public_patient_id"`
	Metadata        []PatientMetadata `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Samples         []Sample          `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

type PatientMetadata struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint   `gorm:"not null;index" json:"patient_id"`
	Key       string `gorm:"type:varchar(255)" json:"key"`
	Value     string `gorm:"type:text" json:"value"`
}

func (PatientMetadata) TableName() string {
	return "patients_metadata"
}
