package blood

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifeline-backend/internal/data/dberr"
	types "github.com/yungbote/lifeline-backend/internal/domain"
	"github.com/yungbote/lifeline-backend/internal/domain/blood"
	"github.com/yungbote/lifeline-backend/internal/pkg/dbctx"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/reporting"
)

type InventoryRepo interface {
	Create(dbc dbctx.Context, lots []*types.InventoryLot) ([]*types.InventoryLot, error)
	UpdateStatusByDonationIDs(dbc dbctx.Context, donationIDs []uuid.UUID, status blood.LotStatus) (int64, error)
	SoftDeleteByDonationIDs(dbc dbctx.Context, donationIDs []uuid.UUID) (int64, error)
	LotSnapshot(dbc dbctx.Context) ([]reporting.InventoryLot, error)
}

type inventoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInventoryRepo(db *gorm.DB, baseLog *logger.Logger) InventoryRepo {
	repoLog := baseLog.With("repo", "InventoryRepo")
	return &inventoryRepo{db: db, log: repoLog}
}

func (ir *inventoryRepo) Create(dbc dbctx.Context, lots []*types.InventoryLot) ([]*types.InventoryLot, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(lots) == 0 {
		return []*types.InventoryLot{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&lots).Error; err != nil {
		return nil, dberr.Classify(err, "create inventory lot")
	}
	return lots, nil
}

func (ir *inventoryRepo) UpdateStatusByDonationIDs(dbc dbctx.Context, donationIDs []uuid.UUID, status blood.LotStatus) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(donationIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Model(&types.InventoryLot{}).
		Where("donation_id IN ?", donationIDs).
		Update("status", status)
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "update inventory lots")
	}
	return res.RowsAffected, nil
}

func (ir *inventoryRepo) SoftDeleteByDonationIDs(dbc dbctx.Context, donationIDs []uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(donationIDs) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("donation_id IN ?", donationIDs).
		Delete(&types.InventoryLot{})
	if res.Error != nil {
		return 0, dberr.Classify(res.Error, "delete inventory lots")
	}
	return res.RowsAffected, nil
}

// LotSnapshot reads every lot, whatever its status. Filtering by status is
// the aggregator's job.
func (ir *inventoryRepo) LotSnapshot(dbc dbctx.Context) ([]reporting.InventoryLot, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ir.db
	}

	var rows []*types.InventoryLot
	if err := transaction.WithContext(dbc.Ctx).
		Select("blood_type", "quantity", "expiry_date", "status", "hospital_id").
		Find(&rows).Error; err != nil {
		return nil, dberr.Classify(err, "lot snapshot")
	}

	lots := make([]reporting.InventoryLot, 0, len(rows))
	for _, r := range rows {
		lots = append(lots, reporting.InventoryLot{
			BloodType:  r.BloodType,
			Quantity:   int64(r.Quantity),
			ExpiryDate: r.ExpiryDate,
			Status:     string(r.Status),
			HospitalID: r.HospitalID,
		})
	}
	return lots, nil
}
