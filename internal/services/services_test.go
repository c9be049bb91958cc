package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/repos"
	"github.com/yungbote/lifeline-backend/internal/data/repos/testutil"
	"github.com/yungbote/lifeline-backend/internal/platform/ctxutil"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []realtime.SSEEvent
}

func (n *recordingNotifier) Changed(_ context.Context, event realtime.SSEEvent, _ uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) last() realtime.SSEEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1]
}

type testEnv struct {
	db     *gorm.DB
	log    *logger.Logger
	notify *recordingNotifier

	users     repos.UserRepo
	tokens    repos.UserTokenRepo
	hospitals repos.HospitalRepo
	doctors   repos.DoctorRepo
	donations repos.BloodDonationRepo
	requests  repos.BloodRequestRepo
	inventory repos.InventoryRepo
	organDons repos.OrganDonationRepo
	organReqs repos.OrganRequestRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:        db,
		log:       log,
		notify:    &recordingNotifier{},
		users:     repos.NewUserRepo(db, log),
		tokens:    repos.NewUserTokenRepo(db, log),
		hospitals: repos.NewHospitalRepo(db, log),
		doctors:   repos.NewDoctorRepo(db, log),
		donations: repos.NewBloodDonationRepo(db, log),
		requests:  repos.NewBloodRequestRepo(db, log),
		inventory: repos.NewInventoryRepo(db, log),
		organDons: repos.NewOrganDonationRepo(db, log),
		organReqs: repos.NewOrganRequestRepo(db, log),
	}
}

func asCaller(userID uuid.UUID, role string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID, Role: role})
}

func fixedClock(day string) func() time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(15 * time.Hour) }
}
