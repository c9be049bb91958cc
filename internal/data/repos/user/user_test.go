package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/lifeline-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	domainuser "github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			ID:        uuid.New(),
			Name:      "Sunita Joshi",
			Email:     "userrepo@example.com",
			Password:  "pw",
			BloodType: "A+",
			Role:      domainuser.RoleDonor,
			Status:    domainuser.StatusActive,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}
}

func TestUserRepoDuplicateEmailIsConflict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	testutil.SeedUser(t, dbc.Ctx, tx, "dup@example.com", domainuser.RoleDonor)

	_, err := repo.Create(dbc, []*types.User{{Name: "Dup", Email: "dup@example.com", Password: "pw"}})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSearchDonorsFiltersRoleStatusAndBloodType(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	testutil.SeedUser(t, ctx, tx, "zed@example.com", domainuser.RoleDonor)
	testutil.SeedUser(t, ctx, tx, "amy@example.com", domainuser.RoleDonor)
	testutil.SeedUser(t, ctx, tx, "boss@example.com", domainuser.RoleAdmin)
	gone := testutil.SeedUser(t, ctx, tx, "gone@example.com", domainuser.RoleDonor)
	if err := repo.UpdateRoleStatus(dbc, gone.ID, domainuser.RoleDonor, domainuser.StatusInactive); err != nil {
		t.Fatalf("UpdateRoleStatus: %v", err)
	}

	donors, err := repo.SearchDonors(dbc, "")
	if err != nil {
		t.Fatalf("SearchDonors: %v", err)
	}
	if len(donors) != 2 || donors[0].Name != "amy" || donors[1].Name != "zed" {
		t.Fatalf("SearchDonors: unexpected result: %+v", donors)
	}

	donors, err = repo.SearchDonors(dbc, "AB-")
	if err != nil {
		t.Fatalf("SearchDonors(AB-): %v", err)
	}
	if len(donors) != 0 {
		t.Fatalf("SearchDonors(AB-): expected none, got %d", len(donors))
	}

	people, err := repo.PeopleSnapshot(dbc)
	if err != nil {
		t.Fatalf("PeopleSnapshot: %v", err)
	}
	if len(people) != 4 {
		t.Fatalf("PeopleSnapshot: expected 4 rows, got %d", len(people))
	}
}

func TestUpdateRoleStatusMissingUser(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))

	err := repo.UpdateRoleStatus(dbctx.New(context.Background()), uuid.New(), domainuser.RoleAdmin, domainuser.StatusActive)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSoftDeletedEmailCanBeReused(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	old := testutil.SeedUser(t, dbc.Ctx, tx, "again@example.com", domainuser.RoleDonor)
	if n, err := repo.SoftDeleteByIDs(dbc, []uuid.UUID{old.ID}); err != nil || n != 1 {
		t.Fatalf("SoftDeleteByIDs: n=%d err=%v", n, err)
	}

	exists, err := repo.EmailExists(dbc, "again@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists after delete: exists=%v err=%v", exists, err)
	}
	if _, err := repo.Create(dbc, []*types.User{{Name: "Again", Email: "again@example.com", Password: "pw"}}); err != nil {
		t.Fatalf("Create with freed email: %v", err)
	}
	_, err = repo.Create(dbc, []*types.User{{Name: "Third", Email: "again@example.com", Password: "pw"}})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("second live row: expected ErrConflict, got %v", err)
	}
}
