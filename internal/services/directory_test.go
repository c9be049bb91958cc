package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/data/repos/testutil"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

func TestHospitalCrud(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewHospitalService(env.db, env.log, env.hospitals, env.notify)

	h, err := svc.Create(ctx, HospitalInput{Name: " Apollo ", LicenseNumber: "APL-1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if h.Name != "Apollo" || h.Status != "active" {
		t.Fatalf("unexpected hospital: %+v", h)
	}
	if _, err := svc.Create(ctx, HospitalInput{Name: "Other", LicenseNumber: "APL-1"}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate license: expected ErrConflict, got %v", err)
	}
	if _, err := svc.Create(ctx, HospitalInput{Name: "X", LicenseNumber: "X-1", Status: "closed"}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad status: expected ErrInvalidArgument, got %v", err)
	}

	if err := svc.Update(ctx, h.ID, HospitalInput{Name: "Apollo Main", LicenseNumber: "APL-1", Status: "inactive"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if env.notify.last() != realtime.SSEEventHospitalUpdated {
		t.Fatalf("expected HospitalUpdated, got %q", env.notify.last())
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Apollo Main" || list[0].Status != "inactive" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if err := svc.Update(ctx, uuid.New(), HospitalInput{Name: "Ghost", LicenseNumber: "G-1"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing hospital: expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, h.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestDoctorCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	h := testutil.SeedHospital(t, ctx, env.db, "City General", "LIC-1")
	svc := NewDoctorService(env.db, env.log, env.doctors, env.hospitals, env.notify)

	d, err := svc.Create(ctx, DoctorInput{Name: "Dr. Rao", Specialization: "Hematology", HospitalID: &h.ID, LicenseNumber: "MED-1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	missing := uuid.New()
	if _, err := svc.Create(ctx, DoctorInput{Name: "Dr. X", HospitalID: &missing, LicenseNumber: "MED-2"}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("unknown hospital: expected ErrInvalidArgument, got %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].HospitalName == nil || *list[0].HospitalName != "City General" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if env.notify.last() != realtime.SSEEventDoctorDeleted {
		t.Fatalf("expected DoctorDeleted, got %q", env.notify.last())
	}
}

func TestUserAdministration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.db, env.log, env.users, env.tokens, env.notify)
	auth := newAuth(env)

	u, err := auth.RegisterDonor(ctx, RegisterDonorInput{Name: "Kiran", Email: "kiran@example.com", Password: "pw", BloodType: "A+"})
	if err != nil {
		t.Fatalf("RegisterDonor: %v", err)
	}
	res, err := auth.Login(ctx, "kiran@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.UpdateRoleStatus(ctx, u.ID, "superuser", "active"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad role: expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.UpdateRoleStatus(ctx, u.ID, "donor", "sleeping"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad status: expected ErrInvalidArgument, got %v", err)
	}

	donors, err := svc.SearchDonors(ctx, "A+")
	if err != nil {
		t.Fatalf("SearchDonors: %v", err)
	}
	if len(donors) != 1 || donors[0].ID != u.ID {
		t.Fatalf("unexpected donors: %+v", donors)
	}
	if _, err := svc.SearchDonors(ctx, "A+'; DROP TABLE users; --"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad blood type: expected ErrInvalidArgument, got %v", err)
	}

	if err := svc.UpdateRoleStatus(ctx, u.ID, "donor", "inactive"); err != nil {
		t.Fatalf("UpdateRoleStatus: %v", err)
	}
	if donors, _ = svc.SearchDonors(ctx, ""); len(donors) != 0 {
		t.Fatalf("inactive donors are not searchable: %+v", donors)
	}

	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := auth.SetContextFromToken(ctx, res.AccessToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("deleted user's session should be gone, got %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted user still listed: %+v", list)
	}
}

func TestRoleOrStatusChangeRevokesSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.db, env.log, env.users, env.tokens, env.notify)
	auth := newAuth(env)

	h := testutil.SeedHospital(t, ctx, env.db, "City General", "LIC-1")
	u, err := auth.RegisterAdmin(ctx, RegisterAdminInput{
		Name: "Asha", Email: "asha@example.com", Password: "pw",
		Department: "Blood Bank", EmployeeID: "EMP-7", HospitalID: h.ID,
	})
	if err != nil {
		t.Fatalf("RegisterAdmin: %v", err)
	}
	res, err := auth.Login(ctx, "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Same role and status: sessions stay.
	if err := svc.UpdateRoleStatus(ctx, u.ID, "admin", "active"); err != nil {
		t.Fatalf("UpdateRoleStatus(no change): %v", err)
	}
	if _, err := auth.SetContextFromToken(ctx, res.AccessToken); err != nil {
		t.Fatalf("unchanged user lost session: %v", err)
	}

	if err := svc.UpdateRoleStatus(ctx, u.ID, "donor", "active"); err != nil {
		t.Fatalf("UpdateRoleStatus(demote): %v", err)
	}
	if _, err := auth.SetContextFromToken(ctx, res.AccessToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("demoted admin's access token should be revoked, got %v", err)
	}
	if _, err := auth.Refresh(ctx, res.RefreshToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("demoted admin's refresh token should be revoked, got %v", err)
	}

	res, err = auth.Login(ctx, "asha@example.com", "pw")
	if err != nil {
		t.Fatalf("Login after demotion: %v", err)
	}
	if err := svc.UpdateRoleStatus(ctx, u.ID, "donor", "inactive"); err != nil {
		t.Fatalf("UpdateRoleStatus(deactivate): %v", err)
	}
	if _, err := auth.SetContextFromToken(ctx, res.AccessToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("inactive user's access token should be revoked, got %v", err)
	}
	if _, err := auth.Refresh(ctx, res.RefreshToken); err == nil {
		t.Fatalf("inactive user refreshed a session")
	}
	if _, err := auth.Login(ctx, "asha@example.com", "pw"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("inactive login: expected ErrForbidden, got %v", err)
	}

	if err := svc.UpdateRoleStatus(ctx, uuid.New(), "donor", "active"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing user: expected ErrNotFound, got %v", err)
	}
}

func TestDeletedUserEmailCanRegisterAgain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.db, env.log, env.users, env.tokens, env.notify)
	auth := newAuth(env)

	in := RegisterDonorInput{Name: "Meera", Email: "meera@example.com", Password: "pw"}
	u, err := auth.RegisterDonor(ctx, in)
	if err != nil {
		t.Fatalf("RegisterDonor: %v", err)
	}
	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	again, err := auth.RegisterDonor(ctx, in)
	if err != nil {
		t.Fatalf("re-register after delete: %v", err)
	}
	if again.ID == u.ID {
		t.Fatalf("expected a new account id")
	}
	if _, err := auth.Login(ctx, "meera@example.com", "pw"); err != nil {
		t.Fatalf("Login with re-registered email: %v", err)
	}
}
