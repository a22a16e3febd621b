package entity

type Project struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Status   string    `gorm:"type:varchar(100)" json:"status"`
	Datasets []Dataset `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Patients []Patient `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}
