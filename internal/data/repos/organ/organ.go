package organ

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/organ"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

type DonationView struct {
	types.OrganDonation
	DonorName    *string `json:"donor_name"`
	HospitalName *string `json:"hospital_name"`
}

type RequestView struct {
	types.OrganRequest
	RequesterName *string `json:"requester_name"`
	HospitalName  *string `json:"hospital_name"`
}

type DonationRepo interface {
	Create(dbc dbctx.Context, donations []*types.OrganDonation) ([]*types.OrganDonation, error)
	List(dbc dbctx.Context) ([]*types.OrganDonation, error)
	ListWithNames(dbc dbctx.Context) ([]*DonationView, error)
	UpdateStatus(dbc dbctx.Context, donationID uuid.UUID, status organ.DonationStatus, donationDate *time.Time) error
	SoftDeleteByIDs(dbc dbctx.Context, donationIDs []uuid.UUID) (int64, error)
}

type RequestRepo interface {
	Create(dbc dbctx.Context, requests []*types.OrganRequest) ([]*types.OrganRequest, error)
	ListWithNames(dbc dbctx.Context) ([]*RequestView, error)
	UpdateStatus(dbc dbctx.Context, requestID uuid.UUID, status organ.RequestStatus, fulfilledDate *time.Time) error
	SoftDeleteByIDs(dbc dbctx.Context, requestIDs []uuid.UUID) (int64, error)
}

type donationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonationRepo(db *gorm.DB, baseLog *logger.Logger) DonationRepo {
	repoLog := baseLog.With("repo", "OrganDonationRepo")
	return &donationRepo{db: db, log: repoLog}
}

func (dr *donationRepo) Create(dbc dbctx.Context, donations []*types.OrganDonation) ([]*types.OrganDonation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(donations) == 0 {
		return []*types.OrganDonation{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&donations).Error; err != nil {
		return nil, dberr.Classify(err, "create organ donation")
	}
	return donations, nil
}

// List returns raw organ donation rows newest first.
func (dr *donationRepo) List(dbc dbctx.Context) ([]*types.OrganDonation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	results := []*types.OrganDonation{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list organ donations")
	}
	return results, nil
}

func (dr *donationRepo) ListWithNames(dbc dbctx.Context) ([]*DonationView, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	results := []*DonationView{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.OrganDonation{}).
		Select("organ_donations.*, users.name AS donor_name, hospitals.name AS hospital_name").
		Joins("LEFT JOIN users ON users.id = organ_donations.donor_id").
		Joins("LEFT JOIN hospitals ON hospitals.id = organ_donations.hospital_id").
		Order("organ_donations.created_at DESC").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list organ donations")
	}
	return results, nil
}

func (dr *donationRepo) UpdateStatus(dbc dbctx.Context, donationID uuid.UUID, status organ.DonationStatus, donationDate *time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.OrganDonation{}).
		Where("id = ?", donationID).
		Updates(map[string]any{
			"status":        status,
			"donation_date": donationDate,
		})
	if res.Error != nil {
		return dberr.Classify(res.Error, "update organ donation")
	}
	if res.RowsAffected == 0 {
		return dberr.Classify(gorm.ErrRecordNotFound, "update organ donation")
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
		Delete(&types.OrganDonation{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete organ donations")
	}
	return res.RowsAffected, nil
}

type requestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRequestRepo(db *gorm.DB, baseLog *logger.Logger) RequestRepo {
	repoLog := baseLog.With("repo", "OrganRequestRepo")
	return &requestRepo{db: db, log: repoLog}
}

func (rr *requestRepo) Create(dbc dbctx.Context, requests []*types.OrganRequest) ([]*types.OrganRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(requests) == 0 {
		return []*types.OrganRequest{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&requests).Error; err != nil {
		return nil, dberr.Classify(err, "create organ request")
	}
	return requests, nil
}

func (rr *requestRepo) ListWithNames(dbc dbctx.Context) ([]*RequestView, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	results := []*RequestView{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.OrganRequest{}).
		Select("organ_requests.*, users.name AS requester_name, hospitals.name AS hospital_name").
		Joins("LEFT JOIN users ON users.id = organ_requests.requester_id").
		Joins("LEFT JOIN hospitals ON hospitals.id = organ_requests.hospital_id").
		Order("organ_requests.created_at DESC").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list organ requests")
	}
	return results, nil
}

func (rr *requestRepo) UpdateStatus(dbc dbctx.Context, requestID uuid.UUID, status organ.RequestStatus, fulfilledDate *time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.OrganRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]any{
			"status":         status,
			"fulfilled_date": fulfilledDate,
		})
	if res.Error != nil {
		return dberr.Classify(res.Error, "update organ request")
	}
	if res.RowsAffected == 0 {
		return dberr.Classify(gorm.ErrRecordNotFound, "update organ request")
	}
	return nil
}

func (rr *requestRepo) SoftDeleteByIDs(dbc dbctx.Context, requestIDs []uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(requestIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", requestIDs).
		Delete(&types.OrganRequest{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete organ requests")
	}
	return res.RowsAffected, nil
}
