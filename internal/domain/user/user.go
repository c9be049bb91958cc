package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleDonor Role = "donor"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleDonor || r == RoleAdmin }

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

// Email uniqueness only covers live rows; see db.ensureUserEmailIndex.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	BloodType string    `gorm:"column:blood_type;index" json:"blood_type"`
	Address   string    `gorm:"column:address" json:"address"`
	Age       *int      `gorm:"column:age" json:"age,omitempty"`
	Gender    string    `gorm:"column:gender" json:"gender"`

	OrganDonor     bool           `gorm:"not null;default:false;column:organ_donor" json:"organ_donor"`
	OrgansToDonate datatypes.JSON `gorm:"column:organs_to_donate" json:"organs_to_donate,omitempty"`

	// Admin staff only.
	Department string     `gorm:"column:department" json:"department,omitempty"`
	EmployeeID string     `gorm:"column:employee_id" json:"employee_id,omitempty"`
	HospitalID *uuid.UUID `gorm:"type:uuid;column:hospital_id" json:"hospital_id,omitempty"`

	Role   Role   `gorm:"not null;default:donor;index;column:role" json:"role"`
	Status Status `gorm:"not null;default:active;column:status" json:"status"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
