package dberr

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, apperrors.ErrNotFound},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, apperrors.ErrConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.email"), apperrors.ErrConflict},
		{"other", errors.New("disk I/O error"), apperrors.ErrStorageUnavailable},
	}
	for _, tc := range cases {
		got := Classify(tc.err, "op")
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: got=%v want %v", tc.name, got, tc.want)
		}
	}
	if Classify(nil, "op") != nil {
		t.Fatalf("nil error should stay nil")
	}
}

func TestIsUniqueViolationIgnoresOtherPgCodes(t *testing.T) {
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
}
