package organ

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/lifeline-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/organ"
	"github.com/yungbote/lifeline-backend/internal/domain/user"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
)

func TestOrganDonationLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	donor := testutil.SeedUser(t, ctx, tx, "pooja.g@example.com", user.RoleDonor)
	h := testutil.SeedHospital(t, ctx, tx, "Nagpur Medical College", "LIC003")
	repo := NewDonationRepo(db, testutil.Logger(t))

	d := &types.OrganDonation{DonorID: donor.ID, HospitalID: h.ID, OrganType: "Kidneys", Status: organ.DonationPending}
	if _, err := repo.Create(dbc, []*types.OrganDonation{d}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	on := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.UpdateStatus(dbc, d.ID, organ.DonationCompleted, &on); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	views, err := repo.ListWithNames(dbc)
	if err != nil || len(views) != 1 {
		t.Fatalf("ListWithNames: err=%v len=%d", err, len(views))
	}
	if views[0].Status != organ.DonationCompleted || views[0].DonationDate == nil {
		t.Fatalf("unexpected donation: %+v", views[0].OrganDonation)
	}
	if views[0].DonorName == nil || *views[0].DonorName != donor.Name {
		t.Fatalf("donor name not joined")
	}

	if n, err := repo.SoftDeleteByIDs(dbc, []uuid.UUID{d.ID}); err != nil || n != 1 {
		t.Fatalf("SoftDeleteByIDs: err=%v n=%d", err, n)
	}
	rows, err := repo.List(dbc)
	if err != nil || len(rows) != 0 {
		t.Fatalf("List after delete: err=%v len=%d", err, len(rows))
	}
}

func TestOrganRequestFulfil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	requester := testutil.SeedUser(t, ctx, tx, "meera.b@example.com", user.RoleDonor)
	h := testutil.SeedHospital(t, ctx, tx, "Yavatmal District Hospital", "LIC001")
	repo := NewRequestRepo(db, testutil.Logger(t))

	r := &types.OrganRequest{
		RequesterID:   requester.ID,
		HospitalID:    h.ID,
		OrganType:     "Heart",
		Urgency:       "critical",
		Status:        organ.RequestPending,
		RequestedDate: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	if _, err := repo.Create(dbc, []*types.OrganRequest{r}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.UpdateStatus(dbc, r.ID, organ.RequestRejected, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	views, err := repo.ListWithNames(dbc)
	if err != nil || len(views) != 1 {
		t.Fatalf("ListWithNames: err=%v len=%d", err, len(views))
	}
	if views[0].Status != organ.RequestRejected || views[0].FulfilledDate != nil {
		t.Fatalf("unexpected request: %+v", views[0].OrganRequest)
	}
}
