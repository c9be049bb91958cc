package hospital

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

// DoctorView is a doctor row with its hospital's name resolved.
type DoctorView struct {
	types.Doctor
	HospitalName *string `json:"hospital_name"`
}

type DoctorRepo interface {
	Create(dbc dbctx.Context, doctors []*types.Doctor) ([]*types.Doctor, error)
	ListWithHospital(dbc dbctx.Context) ([]*DoctorView, error)
	SoftDeleteByIDs(dbc dbctx.Context, doctorIDs []uuid.UUID) (int64, error)
}

type doctorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDoctorRepo(db *gorm.DB, baseLog *logger.Logger) DoctorRepo {
	repoLog := baseLog.With("repo", "DoctorRepo")
	return &doctorRepo{db: db, log: repoLog}
}

func (dr *doctorRepo) Create(dbc dbctx.Context, doctors []*types.Doctor) ([]*types.Doctor, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(doctors) == 0 {
		return []*types.Doctor{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Omit("Hospital").Create(&doctors).Error; err != nil {
		return nil, dberr.Classify(err, "create doctor")
	}
	return doctors, nil
}

func (dr *doctorRepo) ListWithHospital(dbc dbctx.Context) ([]*DoctorView, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	results := []*DoctorView{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Doctor{}).
		Select("doctors.*, hospitals.name AS hospital_name").
		Joins("LEFT JOIN hospitals ON hospitals.id = doctors.hospital_id").
		Order("doctors.name ASC").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list doctors")
	}
	return results, nil
}

func (dr *doctorRepo) SoftDeleteByIDs(dbc dbctx.Context, doctorIDs []uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(doctorIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", doctorIDs).
		Delete(&types.Doctor{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete doctors")
	}
	return res.RowsAffected, nil
}
