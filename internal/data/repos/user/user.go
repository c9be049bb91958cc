package user

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	domainuser "github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

// DonorCard is the public projection returned by donor search.
type DonorCard struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	BloodType      string         `json:"blood_type"`
	Address        string         `json:"address"`
	OrganDonor     bool           `json:"organ_donor"`
	OrgansToDonate datatypes.JSON `json:"organs_to_donate"`
}

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByEmails(dbc dbctx.Context, userEmails []string) ([]*types.User, error)
	EmailExists(dbc dbctx.Context, userEmail string) (bool, error)
	List(dbc dbctx.Context) ([]*types.User, error)
	SearchDonors(dbc dbctx.Context, bloodType string) ([]*DonorCard, error)
	UpdateRoleStatus(dbc dbctx.Context, userID uuid.UUID, role domainuser.Role, status domainuser.Status) error
	SoftDeleteByIDs(dbc dbctx.Context, userIDs []uuid.UUID) (int64, error)
	PeopleSnapshot(dbc dbctx.Context) ([]reporting.PersonRecord, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&users).Error; err != nil {
		return nil, dberr.Classify(err, "create user")
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "get users")
	}
	return results, nil
}

func (ur *userRepo) GetByEmails(dbc dbctx.Context, userEmails []string) ([]*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(userEmails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("email IN ?", userEmails).
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "get users by email")
	}
	return results, nil
}

func (ur *userRepo) EmailExists(dbc dbctx.Context, userEmail string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("email = ?", userEmail).
		Count(&count).Error; err != nil {
		return false, dberr.Classify(err, "email exists")
	}
	return count > 0, nil
}

func (ur *userRepo) List(dbc dbctx.Context) ([]*types.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	results := []*types.User{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Classify(err, "list users")
	}
	return results, nil
}

// SearchDonors lists active donors by name. An empty bloodType matches all.
func (ur *userRepo) SearchDonors(dbc dbctx.Context, bloodType string) ([]*DonorCard, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	q := transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Select("id, name, blood_type, address, organ_donor, organs_to_donate").
		Where("role = ? AND status = ?", domainuser.RoleDonor, domainuser.StatusActive)
	if bloodType != "" {
		q = q.Where("blood_type = ?", bloodType)
	}

	results := []*DonorCard{}
	if err := q.Order("name ASC").Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "search donors")
	}
	return results, nil
}

func (ur *userRepo) UpdateRoleStatus(dbc dbctx.Context, userID uuid.UUID, role domainuser.Role, status domainuser.Status) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"role":   role,
			"status": status,
		})
	if res.Error != nil {
		return dberr.Classify(res.Error, "update user")
	}
	if res.RowsAffected == 0 {
		return dberr.Classify(gorm.ErrRecordNotFound, "update user")
	}
	return nil
}

func (ur *userRepo) SoftDeleteByIDs(dbc dbctx.Context, userIDs []uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(userIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Delete(&types.User{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete users")
	}
	return res.RowsAffected, nil
}

// PeopleSnapshot reads role and status for every registered person.
func (ur *userRepo) PeopleSnapshot(dbc dbctx.Context) ([]reporting.PersonRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ur.db
	}

	results := []reporting.PersonRecord{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Select("role, status").
		Scan(&results).Error; err != nil {
		return nil, dberr.Classify(err, "people snapshot")
	}
	return results, nil
}
