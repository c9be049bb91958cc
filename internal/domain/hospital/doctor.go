package hospital

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"not null;column:name" json:"name"`
	Email          string         `gorm:"column:email" json:"email"`
	Phone          string         `gorm:"column:phone" json:"phone"`
	Specialization string         `gorm:"column:specialization" json:"specialization"`
	HospitalID     *uuid.UUID     `gorm:"type:uuid;index;column:hospital_id" json:"hospital_id"`
	Hospital       *Hospital      `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	LicenseNumber  string         `gorm:"uniqueIndex;not null;column:license_number" json:"license_number"`
	Status         Status         `gorm:"not null;default:active;column:status" json:"status"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Doctor) TableName() string { return "doctors" }

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
