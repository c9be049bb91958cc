package reporting

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const statusActive = "active"

// InventoryLot is the projection of a stocked lot that the aggregator reads.
type InventoryLot struct {
	BloodType  string
	Quantity   int64
	ExpiryDate time.Time
	Status     string
	HospitalID *uuid.UUID
}

// InventorySummary is one row per blood type over the active lots.
type InventorySummary struct {
	BloodType      string
	TotalQuantity  int64
	LotCount       int64
	EarliestExpiry time.Time
}

// SummarizeInventory groups active lots by their literal blood type and returns
// the summaries sorted ascending by blood type. Lots that are not active are
// ignored, as are malformed rows (no blood type, negative quantity, no expiry),
// so one bad row never blanks the report. Never returns nil.
func SummarizeInventory(lots []InventoryLot) []InventorySummary {
	groups := make(map[string]*InventorySummary)
	for _, lot := range lots {
		if lot.Status != statusActive || malformedLot(lot) {
			continue
		}
		s, ok := groups[lot.BloodType]
		if !ok {
			s = &InventorySummary{BloodType: lot.BloodType, EarliestExpiry: lot.ExpiryDate}
			groups[lot.BloodType] = s
		}
		s.TotalQuantity += lot.Quantity
		s.LotCount++
		if lot.ExpiryDate.Before(s.EarliestExpiry) {
			s.EarliestExpiry = lot.ExpiryDate
		}
	}

	out := make([]InventorySummary, 0, len(groups))
	for _, s := range groups {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b InventorySummary) int {
		return strings.Compare(a.BloodType, b.BloodType)
	})
	return out
}

func malformedLot(lot InventoryLot) bool {
	return lot.BloodType == "" || lot.Quantity < 0 || lot.ExpiryDate.IsZero()
}
