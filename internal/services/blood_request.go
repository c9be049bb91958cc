package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type BloodRequestInput struct {
	BloodType  string
	Quantity   int
	Urgency    string
	Reason     string
	HospitalID uuid.UUID
}

type BloodRequestService interface {
	List(ctx context.Context) ([]*repos.BloodRequestView, error)
	Create(ctx context.Context, in BloodRequestInput) (*types.BloodRequest, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, status, fulfilledDate string) error
	Delete(ctx context.Context, requestID uuid.UUID) error
}

type bloodRequestService struct {
	db           *gorm.DB
	log          *logger.Logger
	requestRepo  repos.BloodRequestRepo
	hospitalRepo repos.HospitalRepo
	notify       ChangeNotifier
	now          func() time.Time
}

func NewBloodRequestService(db *gorm.DB, log *logger.Logger, requestRepo repos.BloodRequestRepo, hospitalRepo repos.HospitalRepo, notify ChangeNotifier) BloodRequestService {
	serviceLog := log.With("service", "BloodRequestService")
	return &bloodRequestService{
		db:           db,
		log:          serviceLog,
		requestRepo:  requestRepo,
		hospitalRepo: hospitalRepo,
		notify:       notifierOrNop(notify),
		now:          time.Now,
	}
}

func (rs *bloodRequestService) List(ctx context.Context) ([]*repos.BloodRequestView, error) {
	return rs.requestRepo.ListWithNames(dbctx.New(ctx))
}

func (rs *bloodRequestService) Create(ctx context.Context, in BloodRequestInput) (*types.BloodRequest, error) {
	requesterID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	bloodType := strings.TrimSpace(in.BloodType)
	if !blood.ValidType(bloodType) {
		return nil, fmt.Errorf("unknown blood type %q: %w", in.BloodType, apperrors.ErrInvalidArgument)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", apperrors.ErrInvalidArgument)
	}
	urgency := blood.Urgency(strings.TrimSpace(in.Urgency))
	if !urgency.Valid() {
		return nil, fmt.Errorf("urgency must be low, medium, high or critical: %w", apperrors.ErrInvalidArgument)
	}
	req := &types.BloodRequest{
		ID:            uuid.New(),
		RequesterID:   requesterID,
		HospitalID:    in.HospitalID,
		BloodType:     bloodType,
		Quantity:      in.Quantity,
		Urgency:       urgency,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        blood.RequestPending,
		RequestedDate: calendarDay(rs.now()),
	}
	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := requireHospital(dbc, rs.hospitalRepo, in.HospitalID); err != nil {
			return err
		}
		_, err := rs.requestRepo.Create(dbc, []*types.BloodRequest{req})
		return err
	})
	if err != nil {
		return nil, err
	}
	rs.notify.Changed(ctx, realtime.SSEEventBloodRequestCreated, req.ID)
	return req, nil
}

// UpdateStatus stamps fulfilled requests with today when no date is given.
func (rs *bloodRequestService) UpdateStatus(ctx context.Context, requestID uuid.UUID, status, fulfilledDate string) error {
	s := blood.RequestStatus(strings.TrimSpace(status))
	if !s.Valid() {
		return fmt.Errorf("status must be pending, fulfilled or rejected: %w", apperrors.ErrInvalidArgument)
	}
	date, err := parseOptionalDate(fulfilledDate)
	if err != nil {
		return err
	}
	if s == blood.RequestFulfilled && date == nil {
		today := calendarDay(rs.now())
		date = &today
	}
	if err := rs.requestRepo.UpdateStatus(dbctx.New(ctx), requestID, s, date); err != nil {
		return err
	}
	rs.notify.Changed(ctx, realtime.SSEEventBloodRequestUpdated, requestID)
	return nil
}

func (rs *bloodRequestService) Delete(ctx context.Context, requestID uuid.UUID) error {
	n, err := rs.requestRepo.SoftDeleteByIDs(dbctx.New(ctx), []uuid.UUID{requestID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("blood request: %w", apperrors.ErrNotFound)
	}
	rs.notify.Changed(ctx, realtime.SSEEventBloodRequestDeleted, requestID)
	return nil
}
