package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeline-backend/internal/http/response"
	"github.com/yungbote/lifeline-backend/internal/reporting"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type ReportingHandler struct {
	reportingService services.ReportingService
}

func NewReportingHandler(reportingService services.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingService: reportingService}
}

type bloodInventoryRow struct {
	BloodType      string `json:"blood_type"`
	TotalQuantity  int64  `json:"total_quantity"`
	Units          int64  `json:"units"`
	EarliestExpiry string `json:"earliest_expiry"`
}

type dashboardStatsBody struct {
	TotalDonors     int64 `json:"totalDonors"`
	TotalHospitals  int64 `json:"totalHospitals"`
	TotalDonations  int64 `json:"totalDonations"`
	PendingRequests int64 `json:"pendingRequests"`
}

// GET /api/blood-inventory
func (rh *ReportingHandler) BloodInventory(c *gin.Context) {
	summaries, err := rh.reportingService.BloodInventory(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "blood_inventory_failed")
		return
	}
	response.RespondOK(c, inventoryRows(summaries))
}

// GET /api/dashboard/stats
func (rh *ReportingHandler) DashboardStats(c *gin.Context) {
	stats, err := rh.reportingService.DashboardStats(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "dashboard_stats_failed")
		return
	}
	response.RespondOK(c, dashboardStatsBody{
		TotalDonors:     stats.TotalDonors,
		TotalHospitals:  stats.TotalHospitals,
		TotalDonations:  stats.TotalDonations,
		PendingRequests: stats.PendingRequests,
	})
}

func inventoryRows(summaries []reporting.InventorySummary) []bloodInventoryRow {
	rows := make([]bloodInventoryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, bloodInventoryRow{
			BloodType:      s.BloodType,
			TotalQuantity:  s.TotalQuantity,
			Units:          s.LotCount,
			EarliestExpiry: s.EarliestExpiry.Format("2006-01-02"),
		})
	}
	return rows
}
