package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/data/repos/testutil"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	domainuser "github.com/yungbote/lifeline-backend/internal/domain/user"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

func newBloodDonations(env *testEnv) *bloodDonationService {
	return NewBloodDonationService(env.db, env.log, env.donations, env.inventory, env.hospitals, env.notify).(*bloodDonationService)
}

func newReporting(env *testEnv) ReportingService {
	return NewReportingService(env.log, nil, env.users, env.hospitals, env.donations, env.requests, env.inventory)
}

func TestBloodDonationStocksInventory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	donor := testutil.SeedUser(t, ctx, env.db, "donor@example.com", domainuser.RoleDonor)
	h := testutil.SeedHospital(t, ctx, env.db, "City General", "LIC-1")

	svc := newBloodDonations(env)
	svc.now = fixedClock("2026-03-01")

	d, err := svc.Create(asCaller(donor.ID, "donor"), BloodDonationInput{BloodType: "O-", Quantity: 2, HospitalID: h.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.DonorID != donor.ID || d.Status != blood.DonationActive {
		t.Fatalf("unexpected donation: %+v", d)
	}
	if got := d.DonationDate.Format("2006-01-02"); got != "2026-03-01" {
		t.Fatalf("donation date=%s", got)
	}
	if got := d.ExpiryDate.Format("2006-01-02"); got != "2026-04-05" {
		t.Fatalf("expiry date=%s", got)
	}
	if env.notify.last() != realtime.SSEEventBloodDonationCreated {
		t.Fatalf("expected BloodDonationCreated, got %q", env.notify.last())
	}

	summary, err := newReporting(env).BloodInventory(ctx)
	if err != nil {
		t.Fatalf("BloodInventory: %v", err)
	}
	if len(summary) != 1 || summary[0].BloodType != "O-" || summary[0].TotalQuantity != 2 || summary[0].LotCount != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := summary[0].EarliestExpiry.Format("2006-01-02"); got != "2026-04-05" {
		t.Fatalf("earliest expiry=%s", got)
	}

	views, err := svc.List(ctx, &donor.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 || views[0].DonorName == nil || *views[0].DonorName != "donor" {
		t.Fatalf("unexpected list: %+v", views)
	}
}

func TestBloodDonationStatusIsMirroredToLot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	donor := testutil.SeedUser(t, ctx, env.db, "donor@example.com", domainuser.RoleDonor)
	h := testutil.SeedHospital(t, ctx, env.db, "City General", "LIC-1")
	testutil.SeedLot(t, ctx, env.db, "A+", 3, "2026-12-01", blood.LotActive)

	svc := newBloodDonations(env)
	d, err := svc.Create(asCaller(donor.ID, "donor"), BloodDonationInput{BloodType: "O-", Quantity: 1, HospitalID: h.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.UpdateStatus(ctx, d.ID, "used"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	summary, err := newReporting(env).BloodInventory(ctx)
	if err != nil {
		t.Fatalf("BloodInventory: %v", err)
	}
	if len(summary) != 1 || summary[0].BloodType != "A+" {
		t.Fatalf("used donation should leave inventory, got %+v", summary)
	}

	if err := svc.UpdateStatus(ctx, d.ID, "active"); err != nil {
		t.Fatalf("UpdateStatus(active): %v", err)
	}
	if summary, _ = newReporting(env).BloodInventory(ctx); len(summary) != 2 {
		t.Fatalf("reactivated donation should return to inventory, got %+v", summary)
	}

	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if summary, _ = newReporting(env).BloodInventory(ctx); len(summary) != 1 {
		t.Fatalf("deleted donation should leave inventory, got %+v", summary)
	}
	if err := svc.Delete(ctx, d.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestBloodDonationValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	donor := testutil.SeedUser(t, ctx, env.db, "donor@example.com", domainuser.RoleDonor)
	h := testutil.SeedHospital(t, ctx, env.db, "City General", "LIC-1")
	svc := newBloodDonations(env)

	if _, err := svc.Create(ctx, BloodDonationInput{BloodType: "O-", Quantity: 1, HospitalID: h.ID}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("anonymous create: expected ErrUnauthorized, got %v", err)
	}
	caller := asCaller(donor.ID, "donor")
	bad := []BloodDonationInput{
		{BloodType: "Z+", Quantity: 1, HospitalID: h.ID},
		{BloodType: "O-", Quantity: 0, HospitalID: h.ID},
		{BloodType: "O-", Quantity: 1, HospitalID: uuid.New()},
	}
	for i, in := range bad {
		if _, err := svc.Create(caller, in); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
	if err := svc.UpdateStatus(ctx, uuid.New(), "spoiled"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad status: expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, uuid.New(), "used"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing donation: expected ErrNotFound, got %v", err)
	}
}

func TestBloodRequestFulfilDefaultsToToday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	requester := testutil.SeedUser(t, ctx, env.db, "req@example.com", domainuser.RoleDonor)
	h := testutil.SeedHospital(t, ctx, env.db, "City General", "LIC-1")

	svc := NewBloodRequestService(env.db, env.log, env.requests, env.hospitals, env.notify).(*bloodRequestService)
	svc.now = fixedClock("2026-05-10")

	r, err := svc.Create(asCaller(requester.ID, "donor"), BloodRequestInput{BloodType: "AB+", Quantity: 3, Urgency: "high", HospitalID: h.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Status != blood.RequestPending || r.RequesterID != requester.ID {
		t.Fatalf("unexpected request: %+v", r)
	}
	if _, err := svc.Create(asCaller(requester.ID, "donor"), BloodRequestInput{BloodType: "AB+", Quantity: 3, Urgency: "whenever", HospitalID: h.ID}); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad urgency: expected ErrInvalidArgument, got %v", err)
	}

	if err := svc.UpdateStatus(ctx, r.ID, "fulfilled", ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 || views[0].FulfilledDate == nil {
		t.Fatalf("unexpected list: %+v", views)
	}
	if got := views[0].FulfilledDate.Format("2006-01-02"); got != "2026-05-10" {
		t.Fatalf("fulfilled date=%s", got)
	}

	if err := svc.UpdateStatus(ctx, r.ID, "fulfilled", "2026-05-01"); err != nil {
		t.Fatalf("UpdateStatus(explicit date): %v", err)
	}
	views, _ = svc.List(ctx)
	if got := views[0].FulfilledDate.Format("2006-01-02"); got != "2026-05-01" {
		t.Fatalf("explicit fulfilled date=%s", got)
	}
	if err := svc.UpdateStatus(ctx, r.ID, "fulfilled", "05/01/2026"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("bad date: expected ErrInvalidArgument, got %v", err)
	}

	if err := svc.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if env.notify.last() != realtime.SSEEventBloodRequestDeleted {
		t.Fatalf("expected BloodRequestDeleted, got %q", env.notify.last())
	}
}

func TestBloodRequestUnknownHospitalWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	requester := testutil.SeedUser(t, ctx, env.db, "req@example.com", domainuser.RoleDonor)
	svc := NewBloodRequestService(env.db, env.log, env.requests, env.hospitals, env.notify)

	_, err := svc.Create(asCaller(requester.ID, "donor"), BloodRequestInput{BloodType: "B-", Quantity: 1, Urgency: "low", HospitalID: uuid.New()})
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("rejected request was stored: %+v", views)
	}
	if env.notify.last() != "" {
		t.Fatalf("no change should be announced, got %q", env.notify.last())
	}
}
