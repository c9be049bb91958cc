package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/lifeline-backend/internal/data/db"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/domain/hospital"
	"github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	dbSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a private, migrated in-memory SQLite store that lives until the
// test ends. The pool holds a single connection, so code under test must use
// the transaction it is handed rather than the root handle while one is open.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=private&_foreign_keys=on", name, dbSeq.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return gdb
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, role user.Role) *user.User {
	tb.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Name:      strings.Split(email, "@")[0],
		Email:     email,
		Password:  "pw",
		BloodType: "O+",
		Role:      role,
		Status:    user.StatusActive,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedHospital(tb testing.TB, ctx context.Context, tx *gorm.DB, name, license string) *hospital.Hospital {
	tb.Helper()
	h := &hospital.Hospital{
		ID:            uuid.New(),
		Name:          name,
		LicenseNumber: license,
		Status:        hospital.StatusActive,
	}
	if err := tx.WithContext(ctx).Create(h).Error; err != nil {
		tb.Fatalf("seed hospital: %v", err)
	}
	return h
}

func SeedLot(tb testing.TB, ctx context.Context, tx *gorm.DB, bloodType string, qty int, expiry string, status blood.LotStatus) *blood.InventoryLot {
	tb.Helper()
	exp, err := time.Parse("2006-01-02", expiry)
	if err != nil {
		tb.Fatalf("seed lot: %v", err)
	}
	l := &blood.InventoryLot{
		ID:         uuid.New(),
		BloodType:  bloodType,
		Quantity:   qty,
		ExpiryDate: exp,
		Status:     status,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lot: %v", err)
	}
	return l
}
