package db

import (
	"context"
	"testing"

	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/domain/hospital"
	"github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

func openMemory(t *testing.T) *Service {
	t.Helper()
	svc, err := Open(logger.Nop(), Options{Driver: DriverSQLite, SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	return svc
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	svc := openMemory(t)
	ctx := context.Background()

	if err := SeedDemoData(ctx, svc.DB(), logger.Nop()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedDemoData(ctx, svc.DB(), logger.Nop()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var hospitals, admins, lots int64
	svc.DB().Model(&hospital.Hospital{}).Count(&hospitals)
	svc.DB().Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&admins)
	svc.DB().Model(&blood.InventoryLot{}).Count(&lots)

	if hospitals != 8 {
		t.Fatalf("hospitals: got=%d want=8", hospitals)
	}
	if admins != 3 {
		t.Fatalf("admins: got=%d want=3", admins)
	}
	if lots != 24 {
		t.Fatalf("inventory lots: got=%d want=24", lots)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(logger.Nop(), Options{Driver: "mysql"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
