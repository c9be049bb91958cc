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
	"github.com/yungbote/lifeline-backend/internal/platform/ctxutil"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type BloodDonationInput struct {
	BloodType  string
	Quantity   int
	HospitalID uuid.UUID
	Notes      string
}

type BloodDonationService interface {
	List(ctx context.Context, donorID *uuid.UUID) ([]*repos.BloodDonationView, error)
	Create(ctx context.Context, in BloodDonationInput) (*types.BloodDonation, error)
	UpdateStatus(ctx context.Context, donationID uuid.UUID, status string) error
	Delete(ctx context.Context, donationID uuid.UUID) error
}

type bloodDonationService struct {
	db            *gorm.DB
	log           *logger.Logger
	donationRepo  repos.BloodDonationRepo
	inventoryRepo repos.InventoryRepo
	hospitalRepo  repos.HospitalRepo
	notify        ChangeNotifier
	now           func() time.Time
}

func NewBloodDonationService(
	db *gorm.DB,
	log *logger.Logger,
	donationRepo repos.BloodDonationRepo,
	inventoryRepo repos.InventoryRepo,
	hospitalRepo repos.HospitalRepo,
	notify ChangeNotifier,
) BloodDonationService {
	serviceLog := log.With("service", "BloodDonationService")
	return &bloodDonationService{
		db:            db,
		log:           serviceLog,
		donationRepo:  donationRepo,
		inventoryRepo: inventoryRepo,
		hospitalRepo:  hospitalRepo,
		notify:        notifierOrNop(notify),
		now:           time.Now,
	}
}

func (bs *bloodDonationService) List(ctx context.Context, donorID *uuid.UUID) ([]*repos.BloodDonationView, error) {
	return bs.donationRepo.ListWithNames(dbctx.New(ctx), repos.BloodDonationFilter{DonorID: donorID})
}

// Create records a donation by the caller and stocks an active lot of the
// same blood at the receiving hospital in one transaction.
func (bs *bloodDonationService) Create(ctx context.Context, in BloodDonationInput) (*types.BloodDonation, error) {
	donorID, err := callerID(ctx)
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

	today := calendarDay(bs.now())
	donation := &types.BloodDonation{
		ID:           uuid.New(),
		DonorID:      donorID,
		HospitalID:   in.HospitalID,
		BloodType:    bloodType,
		Quantity:     in.Quantity,
		DonationDate: today,
		ExpiryDate:   today.AddDate(0, 0, blood.ShelfLifeDays),
		Status:       blood.DonationActive,
		Notes:        strings.TrimSpace(in.Notes),
	}

	err = bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := requireHospital(dbc, bs.hospitalRepo, in.HospitalID); err != nil {
			return err
		}
		if _, err := bs.donationRepo.Create(dbc, []*types.BloodDonation{donation}); err != nil {
			return err
		}
		hospitalID := donation.HospitalID
		donationID := donation.ID
		lot := &types.InventoryLot{
			ID:         uuid.New(),
			BloodType:  donation.BloodType,
			Quantity:   donation.Quantity,
			ExpiryDate: donation.ExpiryDate,
			HospitalID: &hospitalID,
			DonationID: &donationID,
			Status:     blood.LotActive,
		}
		_, err := bs.inventoryRepo.Create(dbc, []*types.InventoryLot{lot})
		return err
	})
	if err != nil {
		return nil, err
	}
	bs.log.Info("Blood donation recorded", "donation_id", donation.ID, "blood_type", donation.BloodType, "quantity", donation.Quantity)
	bs.notify.Changed(ctx, realtime.SSEEventBloodDonationCreated, donation.ID)
	return donation, nil
}

// UpdateStatus also moves the lot stocked from this donation to the matching status.
func (bs *bloodDonationService) UpdateStatus(ctx context.Context, donationID uuid.UUID, status string) error {
	s := blood.DonationStatus(strings.TrimSpace(status))
	if !s.Valid() {
		return fmt.Errorf("status must be active, expired or used: %w", apperrors.ErrInvalidArgument)
	}
	err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := bs.donationRepo.UpdateStatus(dbc, donationID, s); err != nil {
			return err
		}
		_, err := bs.inventoryRepo.UpdateStatusByDonationIDs(dbc, []uuid.UUID{donationID}, blood.LotStatusFor(s))
		return err
	})
	if err != nil {
		return err
	}
	bs.notify.Changed(ctx, realtime.SSEEventBloodDonationUpdated, donationID)
	return nil
}

func (bs *bloodDonationService) Delete(ctx context.Context, donationID uuid.UUID) error {
	err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		n, err := bs.donationRepo.SoftDeleteByIDs(dbc, []uuid.UUID{donationID})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("blood donation: %w", apperrors.ErrNotFound)
		}
		_, err = bs.inventoryRepo.SoftDeleteByDonationIDs(dbc, []uuid.UUID{donationID})
		return err
	})
	if err != nil {
		return err
	}
	bs.notify.Changed(ctx, realtime.SSEEventBloodDonationDeleted, donationID)
	return nil
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no caller in context: %w", apperrors.ErrUnauthorized)
	}
	return rd.UserID, nil
}
