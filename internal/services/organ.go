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
	"github.com/yungbote/lifeline-backend/internal/domain/organ"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type OrganDonationInput struct {
	OrganType       string
	HospitalID      uuid.UUID
	Notes           string
	HealthCondition string
}

type OrganRequestInput struct {
	OrganType  string
	Urgency    string
	Reason     string
	HospitalID uuid.UUID
}

type OrganService interface {
	ListDonations(ctx context.Context) ([]*repos.OrganDonationView, error)
	Inventory(ctx context.Context) ([]*types.OrganDonation, error)
	CreateDonation(ctx context.Context, in OrganDonationInput) (*types.OrganDonation, error)
	UpdateDonationStatus(ctx context.Context, donationID uuid.UUID, status, donationDate string) error
	DeleteDonation(ctx context.Context, donationID uuid.UUID) error

	ListRequests(ctx context.Context) ([]*repos.OrganRequestView, error)
	CreateRequest(ctx context.Context, in OrganRequestInput) (*types.OrganRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID uuid.UUID, status, fulfilledDate string) error
	DeleteRequest(ctx context.Context, requestID uuid.UUID) error
}

type organService struct {
	db           *gorm.DB
	log          *logger.Logger
	donationRepo repos.OrganDonationRepo
	requestRepo  repos.OrganRequestRepo
	hospitalRepo repos.HospitalRepo
	notify       ChangeNotifier
	now          func() time.Time
}

func NewOrganService(
	db *gorm.DB,
	log *logger.Logger,
	donationRepo repos.OrganDonationRepo,
	requestRepo repos.OrganRequestRepo,
	hospitalRepo repos.HospitalRepo,
	notify ChangeNotifier,
) OrganService {
	serviceLog := log.With("service", "OrganService")
	return &organService{
		db:           db,
		log:          serviceLog,
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
		hospitalRepo: hospitalRepo,
		notify:       notifierOrNop(notify),
		now:          time.Now,
	}
}

func (ogs *organService) ListDonations(ctx context.Context) ([]*repos.OrganDonationView, error) {
	return ogs.donationRepo.ListWithNames(dbctx.New(ctx))
}

// Inventory lists every organ pledge, newest first, whatever its status.
func (ogs *organService) Inventory(ctx context.Context) ([]*types.OrganDonation, error) {
	return ogs.donationRepo.List(dbctx.New(ctx))
}

func (ogs *organService) CreateDonation(ctx context.Context, in OrganDonationInput) (*types.OrganDonation, error) {
	donorID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	organType := strings.TrimSpace(in.OrganType)
	if organType == "" {
		return nil, fmt.Errorf("organ type is required: %w", apperrors.ErrInvalidArgument)
	}
	d := &types.OrganDonation{
		ID:              uuid.New(),
		DonorID:         donorID,
		HospitalID:      in.HospitalID,
		OrganType:       organType,
		Status:          organ.DonationPending,
		Notes:           strings.TrimSpace(in.Notes),
		HealthCondition: strings.TrimSpace(in.HealthCondition),
	}
	err = ogs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := requireHospital(dbc, ogs.hospitalRepo, in.HospitalID); err != nil {
			return err
		}
		_, err := ogs.donationRepo.Create(dbc, []*types.OrganDonation{d})
		return err
	})
	if err != nil {
		return nil, err
	}
	ogs.notify.Changed(ctx, realtime.SSEEventOrganDonationCreated, d.ID)
	return d, nil
}

// UpdateDonationStatus stamps completed donations with today when no date is given.
func (ogs *organService) UpdateDonationStatus(ctx context.Context, donationID uuid.UUID, status, donationDate string) error {
	s := organ.DonationStatus(strings.TrimSpace(status))
	if !s.Valid() {
		return fmt.Errorf("status must be pending, eligible, completed or rejected: %w", apperrors.ErrInvalidArgument)
	}
	date, err := parseOptionalDate(donationDate)
	if err != nil {
		return err
	}
	if s == organ.DonationCompleted && date == nil {
		today := calendarDay(ogs.now())
		date = &today
	}
	if err := ogs.donationRepo.UpdateStatus(dbctx.New(ctx), donationID, s, date); err != nil {
		return err
	}
	ogs.notify.Changed(ctx, realtime.SSEEventOrganDonationUpdated, donationID)
	return nil
}

func (ogs *organService) DeleteDonation(ctx context.Context, donationID uuid.UUID) error {
	n, err := ogs.donationRepo.SoftDeleteByIDs(dbctx.New(ctx), []uuid.UUID{donationID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("organ donation: %w", apperrors.ErrNotFound)
	}
	ogs.notify.Changed(ctx, realtime.SSEEventOrganDonationDeleted, donationID)
	return nil
}

func (ogs *organService) ListRequests(ctx context.Context) ([]*repos.OrganRequestView, error) {
	return ogs.requestRepo.ListWithNames(dbctx.New(ctx))
}

func (ogs *organService) CreateRequest(ctx context.Context, in OrganRequestInput) (*types.OrganRequest, error) {
	requesterID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	organType := strings.TrimSpace(in.OrganType)
	urgency := strings.TrimSpace(in.Urgency)
	if organType == "" || urgency == "" {
		return nil, fmt.Errorf("organ type and urgency are required: %w", apperrors.ErrInvalidArgument)
	}
	r := &types.OrganRequest{
		ID:            uuid.New(),
		RequesterID:   requesterID,
		HospitalID:    in.HospitalID,
		OrganType:     organType,
		Urgency:       urgency,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        organ.RequestPending,
		RequestedDate: calendarDay(ogs.now()),
	}
	err = ogs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := requireHospital(dbc, ogs.hospitalRepo, in.HospitalID); err != nil {
			return err
		}
		_, err := ogs.requestRepo.Create(dbc, []*types.OrganRequest{r})
		return err
	})
	if err != nil {
		return nil, err
	}
	ogs.notify.Changed(ctx, realtime.SSEEventOrganRequestCreated, r.ID)
	return r, nil
}

func (ogs *organService) UpdateRequestStatus(ctx context.Context, requestID uuid.UUID, status, fulfilledDate string) error {
	s := organ.RequestStatus(strings.TrimSpace(status))
	if !s.Valid() {
		return fmt.Errorf("status must be pending, fulfilled or rejected: %w", apperrors.ErrInvalidArgument)
	}
	date, err := parseOptionalDate(fulfilledDate)
	if err != nil {
		return err
	}
	if s == organ.RequestFulfilled && date == nil {
		today := calendarDay(ogs.now())
		date = &today
	}
	if err := ogs.requestRepo.UpdateStatus(dbctx.New(ctx), requestID, s, date); err != nil {
		return err
	}
	ogs.notify.Changed(ctx, realtime.SSEEventOrganRequestUpdated, requestID)
	return nil
}

func (ogs *organService) DeleteRequest(ctx context.Context, requestID uuid.UUID) error {
	n, err := ogs.requestRepo.SoftDeleteByIDs(dbctx.New(ctx), []uuid.UUID{requestID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("organ request: %w", apperrors.ErrNotFound)
	}
	ogs.notify.Changed(ctx, realtime.SSEEventOrganRequestDeleted, requestID)
	return nil
}
