package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	domainuser "github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type UserService interface {
	List(ctx context.Context) ([]*types.User, error)
	UpdateRoleStatus(ctx context.Context, userID uuid.UUID, role, status string) error
	Delete(ctx context.Context, userID uuid.UUID) error
	SearchDonors(ctx context.Context, bloodType string) ([]*repos.DonorCard, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	notify        ChangeNotifier
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, userTokenRepo repos.UserTokenRepo, notify ChangeNotifier) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		notify:        notifierOrNop(notify),
	}
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(dbctx.New(ctx))
}

func (us *userService) UpdateRoleStatus(ctx context.Context, userID uuid.UUID, role, status string) error {
	r := domainuser.Role(strings.TrimSpace(role))
	s := domainuser.Status(strings.TrimSpace(status))
	if !r.Valid() {
		return fmt.Errorf("role must be donor or admin: %w", apperrors.ErrInvalidArgument)
	}
	if !s.Valid() {
		return fmt.Errorf("status must be active or inactive: %w", apperrors.ErrInvalidArgument)
	}
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
		if err != nil {
			return err
		}
		if len(users) == 0 {
			return fmt.Errorf("user: %w", apperrors.ErrNotFound)
		}
		if err := us.userRepo.UpdateRoleStatus(dbc, userID, r, s); err != nil {
			return err
		}
		// Issued tokens carry the old role; force a fresh login.
		if users[0].Role != r || users[0].Status != s {
			return us.userTokenRepo.FullDeleteByUserIDs(dbc, []uuid.UUID{userID})
		}
		return nil
	})
	if err != nil {
		return err
	}
	us.notify.Changed(ctx, realtime.SSEEventUserUpdated, userID)
	return nil
}

// Delete removes the user and every session they hold.
func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		n, err := us.userRepo.SoftDeleteByIDs(dbc, []uuid.UUID{userID})
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("user: %w", apperrors.ErrNotFound)
		}
		return us.userTokenRepo.FullDeleteByUserIDs(dbc, []uuid.UUID{userID})
	})
	if err != nil {
		return err
	}
	us.notify.Changed(ctx, realtime.SSEEventUserDeleted, userID)
	return nil
}

func (us *userService) SearchDonors(ctx context.Context, bloodType string) ([]*repos.DonorCard, error) {
	bloodType = strings.TrimSpace(bloodType)
	if bloodType != "" && !blood.ValidType(bloodType) {
		return nil, fmt.Errorf("unknown blood type %q: %w", bloodType, apperrors.ErrInvalidArgument)
	}
	return us.userRepo.SearchDonors(dbctx.New(ctx), bloodType)
}
