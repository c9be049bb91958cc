package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/hospital"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type HospitalInput struct {
	Name          string
	Address       string
	Phone         string
	Email         string
	LicenseNumber string
	Status        string
}

type HospitalService interface {
	List(ctx context.Context) ([]*types.Hospital, error)
	Create(ctx context.Context, in HospitalInput) (*types.Hospital, error)
	Update(ctx context.Context, hospitalID uuid.UUID, in HospitalInput) error
	Delete(ctx context.Context, hospitalID uuid.UUID) error
}

type hospitalService struct {
	db           *gorm.DB
	log          *logger.Logger
	hospitalRepo repos.HospitalRepo
	notify       ChangeNotifier
}

func NewHospitalService(db *gorm.DB, log *logger.Logger, hospitalRepo repos.HospitalRepo, notify ChangeNotifier) HospitalService {
	serviceLog := log.With("service", "HospitalService")
	return &hospitalService{db: db, log: serviceLog, hospitalRepo: hospitalRepo, notify: notifierOrNop(notify)}
}

func (hs *hospitalService) List(ctx context.Context) ([]*types.Hospital, error) {
	return hs.hospitalRepo.List(dbctx.New(ctx))
}

func (hs *hospitalService) Create(ctx context.Context, in HospitalInput) (*types.Hospital, error) {
	in = in.trimmed()
	if in.Name == "" || in.LicenseNumber == "" {
		return nil, fmt.Errorf("name and license number are required: %w", apperrors.ErrInvalidArgument)
	}
	status, err := hospitalStatus(in.Status)
	if err != nil {
		return nil, err
	}
	h := &types.Hospital{
		ID:            uuid.New(),
		Name:          in.Name,
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		LicenseNumber: in.LicenseNumber,
		Status:        status,
	}
	if _, err := hs.hospitalRepo.Create(dbctx.New(ctx), []*types.Hospital{h}); err != nil {
		return nil, err
	}
	hs.notify.Changed(ctx, realtime.SSEEventHospitalCreated, h.ID)
	return h, nil
}

// Update replaces every editable column, as the admin form always sends the full record.
func (hs *hospitalService) Update(ctx context.Context, hospitalID uuid.UUID, in HospitalInput) error {
	in = in.trimmed()
	if in.Name == "" || in.LicenseNumber == "" {
		return fmt.Errorf("name and license number are required: %w", apperrors.ErrInvalidArgument)
	}
	status, err := hospitalStatus(in.Status)
	if err != nil {
		return err
	}
	fields := map[string]any{
		"name":           in.Name,
		"address":        in.Address,
		"phone":          in.Phone,
		"email":          in.Email,
		"license_number": in.LicenseNumber,
		"status":         status,
	}
	if err := hs.hospitalRepo.Update(dbctx.New(ctx), hospitalID, fields); err != nil {
		return err
	}
	hs.notify.Changed(ctx, realtime.SSEEventHospitalUpdated, hospitalID)
	return nil
}

func (hs *hospitalService) Delete(ctx context.Context, hospitalID uuid.UUID) error {
	n, err := hs.hospitalRepo.SoftDeleteByIDs(dbctx.New(ctx), []uuid.UUID{hospitalID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("hospital: %w", apperrors.ErrNotFound)
	}
	hs.notify.Changed(ctx, realtime.SSEEventHospitalDeleted, hospitalID)
	return nil
}

func (in HospitalInput) trimmed() HospitalInput {
	return HospitalInput{
		Name:          strings.TrimSpace(in.Name),
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		Status:        strings.TrimSpace(in.Status),
	}
}

func hospitalStatus(raw string) (hospital.Status, error) {
	if raw == "" {
		return hospital.StatusActive, nil
	}
	s := hospital.Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status must be active or inactive: %w", apperrors.ErrInvalidArgument)
	}
	return s, nil
}
