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

type DoctorInput struct {
	Name           string
	Email          string
	Phone          string
	Specialization string
	HospitalID     *uuid.UUID
	LicenseNumber  string
}

type DoctorService interface {
	List(ctx context.Context) ([]*repos.DoctorView, error)
	Create(ctx context.Context, in DoctorInput) (*types.Doctor, error)
	Delete(ctx context.Context, doctorID uuid.UUID) error
}

type doctorService struct {
	db           *gorm.DB
	log          *logger.Logger
	doctorRepo   repos.DoctorRepo
	hospitalRepo repos.HospitalRepo
	notify       ChangeNotifier
}

func NewDoctorService(db *gorm.DB, log *logger.Logger, doctorRepo repos.DoctorRepo, hospitalRepo repos.HospitalRepo, notify ChangeNotifier) DoctorService {
	serviceLog := log.With("service", "DoctorService")
	return &doctorService{
		db:           db,
		log:          serviceLog,
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		notify:       notifierOrNop(notify),
	}
}

func (ds *doctorService) List(ctx context.Context) ([]*repos.DoctorView, error) {
	return ds.doctorRepo.ListWithHospital(dbctx.New(ctx))
}

func (ds *doctorService) Create(ctx context.Context, in DoctorInput) (*types.Doctor, error) {
	name := strings.TrimSpace(in.Name)
	license := strings.TrimSpace(in.LicenseNumber)
	if name == "" || license == "" {
		return nil, fmt.Errorf("name and license number are required: %w", apperrors.ErrInvalidArgument)
	}
	if in.HospitalID != nil {
		if err := requireHospital(dbctx.New(ctx), ds.hospitalRepo, *in.HospitalID); err != nil {
			return nil, err
		}
	}
	d := &types.Doctor{
		ID:             uuid.New(),
		Name:           name,
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Specialization: strings.TrimSpace(in.Specialization),
		HospitalID:     in.HospitalID,
		LicenseNumber:  license,
		Status:         hospital.StatusActive,
	}
	if _, err := ds.doctorRepo.Create(dbctx.New(ctx), []*types.Doctor{d}); err != nil {
		return nil, err
	}
	ds.notify.Changed(ctx, realtime.SSEEventDoctorCreated, d.ID)
	return d, nil
}

func (ds *doctorService) Delete(ctx context.Context, doctorID uuid.UUID) error {
	n, err := ds.doctorRepo.SoftDeleteByIDs(dbctx.New(ctx), []uuid.UUID{doctorID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("doctor: %w", apperrors.ErrNotFound)
	}
	ds.notify.Changed(ctx, realtime.SSEEventDoctorDeleted, doctorID)
	return nil
}

// requireHospital rejects references to hospitals that do not exist or were removed.
func requireHospital(dbc dbctx.Context, hospitalRepo repos.HospitalRepo, hospitalID uuid.UUID) error {
	if hospitalID == uuid.Nil {
		return fmt.Errorf("hospital id is required: %w", apperrors.ErrInvalidArgument)
	}
	found, err := hospitalRepo.GetByIDs(dbc, []uuid.UUID{hospitalID})
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("unknown hospital: %w", apperrors.ErrInvalidArgument)
	}
	return nil
}
