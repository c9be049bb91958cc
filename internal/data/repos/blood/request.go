package blood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

// RequestView is a blood request with requester and hospital names resolved.
type RequestView struct {
	types.BloodRequest
	RequesterName *string `json:"requester_name"`
	HospitalName  *string `json:"hospital_name"`
}

type RequestRepo interface {
	Create(dbc dbctx.Context, requests []*types.BloodRequest) ([]*types.BloodRequest, error)
	ListWithNames(dbc dbctx.Context) ([]*RequestView, error)
	UpdateStatus(dbc dbctx.Context, requestID uuid.UUID, status blood.RequestStatus, fulfilledDate *time.Time) error
	SoftDeleteByIDs(dbc dbctx.Context, requestIDs []uuid.UUID) (int64, error)
	RequestSnapshot(dbc dbctx.Context) ([]reporting.RequestEvent, error)
}

type requestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRequestRepo(db *gorm.DB, baseLog *logger.Logger) RequestRepo {
	repoLog := baseLog.With("repo", "BloodRequestRepo")
	return &requestRepo{db: db, log: repoLog}
}

func (rr *requestRepo) Create(dbc dbctx.Context, requests []*types.BloodRequest) ([]*types.BloodRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(requests) == 0 {
		return []*types.BloodRequest{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&requests).Error; err != nil {
		return nil, dberr.Classify(err, "create blood request")
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
		Model(&types.BloodRequest{}).
		Select("blood_requests.*, users.name AS requester_name, hospitals.name AS hospital_name").
		Joins("LEFT JOIN users ON users.id = blood_requests.requester_id").
		Joins("LEFT JOIN hospitals ON hospitals.id = blood_requests.hospital_id").
		Order("blood_requests.created_at DESC").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list blood requests")
	}
	return results, nil
}

// UpdateStatus writes status and fulfilled_date together; a nil date clears it.
func (rr *requestRepo) UpdateStatus(dbc dbctx.Context, requestID uuid.UUID, status blood.RequestStatus, fulfilledDate *time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.BloodRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]any{
			"status":         status,
			"fulfilled_date": fulfilledDate,
		})
	if res.Error != nil {
		return dberr.Classify(res.Error, "update blood request")
	}
	if res.RowsAffected == 0 {
		return dberr.Classify(gorm.ErrRecordNotFound, "update blood request")
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
		Delete(&types.BloodRequest{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete blood requests")
	}
	return res.RowsAffected, nil
}

func (rr *requestRepo) RequestSnapshot(dbc dbctx.Context) ([]reporting.RequestEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	results := []reporting.RequestEvent{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.BloodRequest{}).
		Select("status").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "request snapshot")
	}
	return results, nil
}
