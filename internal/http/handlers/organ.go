package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/http/response"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type OrganHandler struct {
	organService services.OrganService
}

func NewOrganHandler(organService services.OrganService) *OrganHandler {
	return &OrganHandler{organService: organService}
}

// GET /api/organ-donations
func (oh *OrganHandler) ListDonations(c *gin.Context) {
	donations, err := oh.organService.ListDonations(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "list_organ_donations_failed")
		return
	}
	response.RespondOK(c, donations)
}

// GET /api/organ-inventory
func (oh *OrganHandler) Inventory(c *gin.Context) {
	donations, err := oh.organService.Inventory(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "organ_inventory_failed")
		return
	}
	response.RespondOK(c, donations)
}

// POST /api/organ-donations
func (oh *OrganHandler) CreateDonation(c *gin.Context) {
	var req struct {
		OrganType       string    `json:"organ_type" binding:"required"`
		HospitalID      uuid.UUID `json:"hospital_id" binding:"required"`
		Notes           string    `json:"notes"`
		HealthCondition string    `json:"health_condition"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	d, err := oh.organService.CreateDonation(c.Request.Context(), services.OrganDonationInput{
		OrganType:       req.OrganType,
		HospitalID:      req.HospitalID,
		Notes:           req.Notes,
		HealthCondition: req.HealthCondition,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_organ_donation_failed")
		return
	}
	response.RespondMutation(c, "Organ donation registered successfully", d.ID)
}

// PUT /api/organ-donations/:id
func (oh *OrganHandler) UpdateDonation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status       string `json:"status" binding:"required"`
		DonationDate string `json:"donation_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := oh.organService.UpdateDonationStatus(c.Request.Context(), id, req.Status, req.DonationDate); err != nil {
		response.RespondServiceError(c, err, "update_organ_donation_failed")
		return
	}
	response.RespondMutation(c, "Organ donation updated successfully", id)
}

// DELETE /api/organ-donations/:id
func (oh *OrganHandler) DeleteDonation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := oh.organService.DeleteDonation(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_organ_donation_failed")
		return
	}
	response.RespondMutation(c, "Organ donation deleted successfully", id)
}

// GET /api/organ-requests
func (oh *OrganHandler) ListRequests(c *gin.Context) {
	requests, err := oh.organService.ListRequests(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "list_organ_requests_failed")
		return
	}
	response.RespondOK(c, requests)
}

// POST /api/organ-requests
func (oh *OrganHandler) CreateRequest(c *gin.Context) {
	var req struct {
		OrganType  string    `json:"organ_type" binding:"required"`
		Urgency    string    `json:"urgency" binding:"required"`
		Reason     string    `json:"reason"`
		HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	r, err := oh.organService.CreateRequest(c.Request.Context(), services.OrganRequestInput{
		OrganType:  req.OrganType,
		Urgency:    req.Urgency,
		Reason:     req.Reason,
		HospitalID: req.HospitalID,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_organ_request_failed")
		return
	}
	response.RespondMutation(c, "Organ request submitted successfully", r.ID)
}

// PUT /api/organ-requests/:id
func (oh *OrganHandler) UpdateRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status        string `json:"status" binding:"required"`
		FulfilledDate string `json:"fulfilled_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := oh.organService.UpdateRequestStatus(c.Request.Context(), id, req.Status, req.FulfilledDate); err != nil {
		response.RespondServiceError(c, err, "update_organ_request_failed")
		return
	}
	response.RespondMutation(c, "Organ request updated successfully", id)
}

// DELETE /api/organ-requests/:id
func (oh *OrganHandler) DeleteRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := oh.organService.DeleteRequest(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_organ_request_failed")
		return
	}
	response.RespondMutation(c, "Organ request deleted successfully", id)
}
