package hospital

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

type HospitalRepo interface {
	Create(dbc dbctx.Context, hospitals []*types.Hospital) ([]*types.Hospital, error)
	GetByIDs(dbc dbctx.Context, hospitalIDs []uuid.UUID) ([]*types.Hospital, error)
	List(dbc dbctx.Context) ([]*types.Hospital, error)
	Update(dbc dbctx.Context, hospitalID uuid.UUID, fields map[string]any) error
	SoftDeleteByIDs(dbc dbctx.Context, hospitalIDs []uuid.UUID) (int64, error)
	FacilitySnapshot(dbc dbctx.Context) ([]reporting.FacilityRecord, error)
}

type hospitalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHospitalRepo(db *gorm.DB, baseLog *logger.Logger) HospitalRepo {
	repoLog := baseLog.With("repo", "HospitalRepo")
	return &hospitalRepo{db: db, log: repoLog}
}

func (hr *hospitalRepo) Create(dbc dbctx.Context, hospitals []*types.Hospital) ([]*types.Hospital, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}

	if len(hospitals) == 0 {
		return []*types.Hospital{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&hospitals).Error; err != nil {
		return nil, dberr.Classify(err, "create hospital")
	}
	return hospitals, nil
}

func (hr *hospitalRepo) GetByIDs(dbc dbctx.Context, hospitalIDs []uuid.UUID) ([]*types.Hospital, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []*types.Hospital
	if len(hospitalIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", hospitalIDs).
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "get hospitals")
	}
	return results, nil
}

func (hr *hospitalRepo) List(dbc dbctx.Context) ([]*types.Hospital, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}

	results := []*types.Hospital{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list hospitals")
	}
	return results, nil
}

func (hr *hospitalRepo) Update(dbc dbctx.Context, hospitalID uuid.UUID, fields map[string]any) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}

	if len(fields) == 0 {
		return nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Hospital{}).
		Where("id = ?", hospitalID).
		Updates(fields)
	if res.Error != nil {
		return dberr.Classify(res.Error, "update hospital")
	}
	if res.RowsAffected == 0 {
		return dberr.Classify(gorm.ErrRecordNotFound, "update hospital")
	}
	return nil
}

func (hr *hospitalRepo) SoftDeleteByIDs(dbc dbctx.Context, hospitalIDs []uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}

	if len(hospitalIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", hospitalIDs).
		Delete(&types.Hospital{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete hospitals")
	}
	return res.RowsAffected, nil
}

func (hr *hospitalRepo) FacilitySnapshot(dbc dbctx.Context) ([]reporting.FacilityRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = hr.db
	}

	results := []reporting.FacilityRecord{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Hospital{}).
		Select("status").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "facility snapshot")
	}
	return results, nil
}
