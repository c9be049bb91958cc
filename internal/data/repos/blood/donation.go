package blood

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

// DonationView is a blood donation with donor and hospital names resolved.
type DonationView struct {
	types.BloodDonation
	DonorName    *string `json:"donor_name"`
	HospitalName *string `json:"hospital_name"`
}

type DonationFilter struct {
	DonorID *uuid.UUID
}

type DonationRepo interface {
	Create(dbc dbctx.Context, donations []*types.BloodDonation) ([]*types.BloodDonation, error)
	GetByIDs(dbc dbctx.Context, donationIDs []uuid.UUID) ([]*types.BloodDonation, error)
	ListWithNames(dbc dbctx.Context, filter DonationFilter) ([]*DonationView, error)
	UpdateStatus(dbc dbctx.Context, donationID uuid.UUID, status blood.DonationStatus) error
	SoftDeleteByIDs(dbc dbctx.Context, donationIDs []uuid.UUID) (int64, error)
	DonationSnapshot(dbc dbctx.Context) ([]reporting.DonationEvent, error)
}

type donationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonationRepo(db *gorm.DB, baseLog *logger.Logger) DonationRepo {
	repoLog := baseLog.With("repo", "BloodDonationRepo")
	return &donationRepo{db: db, log: repoLog}
}

func (dr *donationRepo) Create(dbc dbctx.Context, donations []*types.BloodDonation) ([]*types.BloodDonation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(donations) == 0 {
		return []*types.BloodDonation{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&donations).Error; err != nil {
		return nil, dberr.Classify(err, "create blood donation")
	}
	return donations, nil
}

func (dr *donationRepo) GetByIDs(dbc dbctx.Context, donationIDs []uuid.UUID) ([]*types.BloodDonation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.BloodDonation
	if len(donationIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", donationIDs).
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "get blood donations")
	}
	return results, nil
}

// ListWithNames returns donations newest first. DonorID narrows to one donor.
func (dr *donationRepo) ListWithNames(dbc dbctx.Context, filter DonationFilter) ([]*DonationView, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	q := transaction.WithContext(dbc.Ctx).
		Model(&types.BloodDonation{}).
		Select("blood_donations.*, users.name AS donor_name, hospitals.name AS hospital_name").
		Joins("LEFT JOIN users ON users.id = blood_donations.donor_id").
		Joins("LEFT JOIN hospitals ON hospitals.id = blood_donations.hospital_id")
	if filter.DonorID != nil {
		q = q.Where("blood_donations.donor_id = ?", *filter.DonorID)
	}

	results := []*DonationView{}
	if err := q.Order("blood_donations.created_at DESC").Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list blood donations")
	}
	return results, nil
}

func (dr *donationRepo) UpdateStatus(dbc dbctx.Context, donationID uuid.UUID, status blood.DonationStatus) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.BloodDonation{}).
		Where("id = ?", donationID).
		Update("status", status)
	if res.Error != nil {
		return dberr.Classify(res.Error, "update blood donation")
	}
	if res.RowsAffected == 0 {
		return dberr.Classify(gorm.ErrRecordNotFound, "update blood donation")
	}
	return nil
}

func (dr *donationRepo) SoftDeleteByIDs(dbc dbctx.Context, donationIDs []uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(donationIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", donationIDs).
		Delete(&types.BloodDonation{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete blood donations")
	}
	return res.RowsAffected, nil
}

func (dr *donationRepo) DonationSnapshot(dbc dbctx.Context) ([]reporting.DonationEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	results := []reporting.DonationEvent{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.BloodDonation{}).
		Select("status").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "donation snapshot")
	}
	return results, nil
}
