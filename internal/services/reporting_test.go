package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	repotest "github.com/yungbote/lifeline-backend/internal/data/repos/testutil"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	domainuser "github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/observability"
	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

func TestDashboardStatsCountsEachCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := repotest.SeedUser(t, ctx, env.db, "a@example.com", domainuser.RoleDonor)
	repotest.SeedUser(t, ctx, env.db, "b@example.com", domainuser.RoleDonor)
	repotest.SeedUser(t, ctx, env.db, "boss@example.com", domainuser.RoleAdmin)
	h := repotest.SeedHospital(t, ctx, env.db, "City General", "LIC-1")
	repotest.SeedHospital(t, ctx, env.db, "Metro Care", "LIC-2")

	users := NewUserService(env.db, env.log, env.users, env.tokens, env.notify)
	if err := users.UpdateRoleStatus(ctx, a.ID, "donor", "inactive"); err != nil {
		t.Fatalf("UpdateRoleStatus: %v", err)
	}

	donations := newBloodDonations(env)
	for i := 0; i < 3; i++ {
		if _, err := donations.Create(asCaller(a.ID, "donor"), BloodDonationInput{BloodType: "B+", Quantity: 1, HospitalID: h.ID}); err != nil {
			t.Fatalf("Create donation: %v", err)
		}
	}
	requests := NewBloodRequestService(env.db, env.log, env.requests, env.hospitals, env.notify)
	r1, err := requests.Create(asCaller(a.ID, "donor"), BloodRequestInput{BloodType: "B+", Quantity: 1, Urgency: "low", HospitalID: h.ID})
	if err != nil {
		t.Fatalf("Create request: %v", err)
	}
	if _, err := requests.Create(asCaller(a.ID, "donor"), BloodRequestInput{BloodType: "O+", Quantity: 2, Urgency: "critical", HospitalID: h.ID}); err != nil {
		t.Fatalf("Create request: %v", err)
	}
	if err := requests.UpdateStatus(ctx, r1.ID, "rejected", ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	metrics := observability.NewMetrics()
	svc := NewReportingService(env.log, metrics, env.users, env.hospitals, env.donations, env.requests, env.inventory)
	got, err := svc.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	want := reporting.DashboardStats{TotalDonors: 2, TotalHospitals: 2, TotalDonations: 3, PendingRequests: 1}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
	n, err := testutil.GatherAndCount(metrics.Registry(), "lifeline_report_reads_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one report read series, got %d", n)
	}
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	env := newTestEnv(t)
	got, err := newReporting(env).DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if got != (reporting.DashboardStats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestBloodInventoryEmptyIsNotNil(t *testing.T) {
	env := newTestEnv(t)
	got, err := newReporting(env).BloodInventory(context.Background())
	if err != nil {
		t.Fatalf("BloodInventory: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBloodInventoryOrdersAndGroups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	repotest.SeedLot(t, ctx, env.db, "O+", 4, "2026-07-01", blood.LotActive)
	repotest.SeedLot(t, ctx, env.db, "A-", 1, "2026-06-15", blood.LotActive)
	repotest.SeedLot(t, ctx, env.db, "O+", 2, "2026-06-20", blood.LotActive)
	repotest.SeedLot(t, ctx, env.db, "AB+", 9, "2026-05-01", blood.LotExpired)

	got, err := newReporting(env).BloodInventory(ctx)
	if err != nil {
		t.Fatalf("BloodInventory: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %+v", got)
	}
	if got[0].BloodType != "A-" || got[1].BloodType != "O+" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].TotalQuantity != 6 || got[1].LotCount != 2 || got[1].EarliestExpiry.Format("2006-01-02") != "2026-06-20" {
		t.Fatalf("unexpected O+ group: %+v", got[1])
	}
}

func TestReportsFailWholeCallWhenStoreIsDown(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	_ = sqlDB.Close()

	svc := newReporting(env)
	if _, err := svc.DashboardStats(context.Background()); !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Fatalf("DashboardStats: expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := svc.BloodInventory(context.Background()); !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Fatalf("BloodInventory: expected ErrStorageUnavailable, got %v", err)
	}
}

func TestDashboardStatsFailsWhenOneCollectionIsUnreadable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	repotest.SeedUser(t, ctx, env.db, "donor@example.com", domainuser.RoleDonor)
	repotest.SeedHospital(t, ctx, env.db, "City General", "LIC-1")

	if err := env.db.Exec("DROP TABLE blood_requests").Error; err != nil {
		t.Fatalf("drop blood_requests: %v", err)
	}

	stats, err := newReporting(env).DashboardStats(ctx)
	if !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got stats=%+v err=%v", stats, err)
	}
}
