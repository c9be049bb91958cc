package hospital

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

type Hospital struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"not null;column:name" json:"name"`
	Address       string         `gorm:"column:address" json:"address"`
	Phone         string         `gorm:"column:phone" json:"phone"`
	Email         string         `gorm:"column:email" json:"email"`
	LicenseNumber string         `gorm:"uniqueIndex;not null;column:license_number" json:"license_number"`
	Status        Status         `gorm:"not null;default:active;column:status" json:"status"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Hospital) TableName() string { return "hospitals" }

func (h *Hospital) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
