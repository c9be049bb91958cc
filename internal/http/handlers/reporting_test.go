package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yungbote/lifeline-backend/internal/pkg/errors"
	"github.com/yungbote/lifeline-backend/internal/reporting"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type stubReporting struct {
	services.ReportingService
	inventory []reporting.InventorySummary
	stats     reporting.DashboardStats
	err       error
}

func (s *stubReporting) BloodInventory(context.Context) ([]reporting.InventorySummary, error) {
	return s.inventory, s.err
}

func (s *stubReporting) DashboardStats(context.Context) (reporting.DashboardStats, error) {
	return s.stats, s.err
}

func newReportingRouter(svc services.ReportingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReportingHandler(svc)
	r := gin.New()
	r.GET("/api/blood-inventory", h.BloodInventory)
	r.GET("/api/dashboard/stats", h.DashboardStats)
	return r
}

func TestBloodInventoryShape(t *testing.T) {
	expiry := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	r := newReportingRouter(&stubReporting{inventory: []reporting.InventorySummary{
		{BloodType: "O+", TotalQuantity: 6, LotCount: 2, EarliestExpiry: expiry},
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blood-inventory", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := `[{"blood_type":"O+","total_quantity":6,"units":2,"earliest_expiry":"2026-06-20"}]`
	if w.Body.String() != want {
		t.Fatalf("body=%s want=%s", w.Body.String(), want)
	}
}

func TestBloodInventoryEmptyIsArray(t *testing.T) {
	r := newReportingRouter(&stubReporting{inventory: []reporting.InventorySummary{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blood-inventory", nil))
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestDashboardStatsShape(t *testing.T) {
	r := newReportingRouter(&stubReporting{stats: reporting.DashboardStats{
		TotalDonors: 3, TotalHospitals: 2, TotalDonations: 5, PendingRequests: 1,
	}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]int64{"totalDonors": 3, "totalHospitals": 2, "totalDonations": 5, "pendingRequests": 1}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s=%d want %d (body=%s)", k, got[k], v, w.Body.String())
		}
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected keys: %s", w.Body.String())
	}
}

func TestReportsStorageFailureIs400(t *testing.T) {
	r := newReportingRouter(&stubReporting{err: fmt.Errorf("count donors: %w", apperrors.ErrStorageUnavailable)})
	for _, path := range []string{"/api/blood-inventory", "/api/dashboard/stats"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d", path, w.Code)
		}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if body.Code != "storage_unavailable" || body.Error == "" {
			t.Fatalf("%s: body=%s", path, w.Body.String())
		}
	}
}
