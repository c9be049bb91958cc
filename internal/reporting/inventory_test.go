package reporting

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestSummarizeInventoryExcludesInactiveLots(t *testing.T) {
	lots := []InventoryLot{
		{BloodType: "A+", Quantity: 25, ExpiryDate: day(t, "2024-03-15"), Status: "active"},
		{BloodType: "A+", Quantity: 18, ExpiryDate: day(t, "2024-03-20"), Status: "active"},
		{BloodType: "A+", Quantity: 5, ExpiryDate: day(t, "2024-01-01"), Status: "expired"},
	}
	got := SummarizeInventory(lots)
	want := []InventorySummary{
		{BloodType: "A+", TotalQuantity: 43, LotCount: 2, EarliestExpiry: day(t, "2024-03-15")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SummarizeInventory:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestSummarizeInventoryOneRowPerActiveType(t *testing.T) {
	lots := []InventoryLot{
		{BloodType: "O-", Quantity: 3, ExpiryDate: day(t, "2024-05-01"), Status: "active"},
		{BloodType: "B+", Quantity: 4, ExpiryDate: day(t, "2024-05-02"), Status: "used"},
		{BloodType: "O-", Quantity: 2, ExpiryDate: day(t, "2024-04-01"), Status: "active"},
		{BloodType: "AB-", Quantity: 1, ExpiryDate: day(t, "2024-06-01"), Status: "active"},
	}
	got := SummarizeInventory(lots)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(got), got)
	}
	for _, s := range got {
		if s.BloodType == "B+" {
			t.Fatalf("B+ has no active lots and must be absent: %+v", got)
		}
	}
	if got[1].BloodType != "O-" || got[1].TotalQuantity != 5 || got[1].LotCount != 2 || !got[1].EarliestExpiry.Equal(day(t, "2024-04-01")) {
		t.Fatalf("O- summary wrong: %+v", got[1])
	}
}

func TestSummarizeInventorySortedRegardlessOfInputOrder(t *testing.T) {
	types := []string{"O+", "B-", "A+", "AB+", "O-", "A-", "AB-", "B+"}
	lots := make([]InventoryLot, 0, len(types))
	for _, bt := range types {
		lots = append(lots, InventoryLot{BloodType: bt, Quantity: 1, ExpiryDate: day(t, "2024-01-01"), Status: "active"})
	}
	got := SummarizeInventory(lots)
	order := make([]string, 0, len(got))
	for _, s := range got {
		order = append(order, s.BloodType)
	}
	want := []string{"A+", "A-", "AB+", "AB-", "B+", "B-", "O+", "O-"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order: got=%v want=%v", order, want)
	}
}

func TestSummarizeInventoryEmpty(t *testing.T) {
	got := SummarizeInventory(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	raw, _ := json.Marshal(got)
	if string(raw) != "[]" {
		t.Fatalf("expected [] when encoded, got %s", raw)
	}
}

func TestSummarizeInventoryGroupsUnknownTypesLiterally(t *testing.T) {
	lots := []InventoryLot{
		{BloodType: "Bombay", Quantity: 2, ExpiryDate: day(t, "2024-02-01"), Status: "active"},
		{BloodType: "Bombay", Quantity: 1, ExpiryDate: day(t, "2024-02-03"), Status: "active"},
	}
	got := SummarizeInventory(lots)
	if len(got) != 1 || got[0].BloodType != "Bombay" || got[0].TotalQuantity != 3 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestSummarizeInventorySkipsMalformedRows(t *testing.T) {
	lots := []InventoryLot{
		{BloodType: "", Quantity: 9, ExpiryDate: day(t, "2024-02-01"), Status: "active"},
		{BloodType: "A-", Quantity: -4, ExpiryDate: day(t, "2024-02-01"), Status: "active"},
		{BloodType: "A-", Quantity: 4, Status: "active"},
		{BloodType: "A-", Quantity: 6, ExpiryDate: day(t, "2024-02-09"), Status: "active"},
	}
	got := SummarizeInventory(lots)
	want := []InventorySummary{{BloodType: "A-", TotalQuantity: 6, LotCount: 1, EarliestExpiry: day(t, "2024-02-09")}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestSummarizeInventoryIsIdempotent(t *testing.T) {
	lots := []InventoryLot{
		{BloodType: "B+", Quantity: 7, ExpiryDate: day(t, "2024-03-01"), Status: "active"},
		{BloodType: "A+", Quantity: 1, ExpiryDate: day(t, "2024-03-02"), Status: "active"},
		{BloodType: "B+", Quantity: 2, ExpiryDate: day(t, "2024-02-01"), Status: "active"},
	}
	first, _ := json.Marshal(SummarizeInventory(lots))
	for i := 0; i < 5; i++ {
		again, _ := json.Marshal(SummarizeInventory(lots))
		if string(again) != string(first) {
			t.Fatalf("run %d differs:\n%s\n%s", i, first, again)
		}
	}
}
