package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/http/response"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type BloodHandler struct {
	donationService services.BloodDonationService
	requestService  services.BloodRequestService
}

func NewBloodHandler(donationService services.BloodDonationService, requestService services.BloodRequestService) *BloodHandler {
	return &BloodHandler{donationService: donationService, requestService: requestService}
}

// GET /api/blood-donations?userId=
func (bh *BloodHandler) ListDonations(c *gin.Context) {
	var donorID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("userId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_user_id", fmt.Errorf("invalid userId %q", raw))
			return
		}
		donorID = &id
	}
	donations, err := bh.donationService.List(c.Request.Context(), donorID)
	if err != nil {
		response.RespondServiceError(c, err, "list_donations_failed")
		return
	}
	response.RespondOK(c, donations)
}

// POST /api/blood-donations
func (bh *BloodHandler) CreateDonation(c *gin.Context) {
	var req struct {
		BloodType  string    `json:"blood_type" binding:"required"`
		Quantity   int       `json:"quantity" binding:"required"`
		HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
		Notes      string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	d, err := bh.donationService.Create(c.Request.Context(), services.BloodDonationInput{
		BloodType:  req.BloodType,
		Quantity:   req.Quantity,
		HospitalID: req.HospitalID,
		Notes:      req.Notes,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_donation_failed")
		return
	}
	response.RespondMutation(c, "Blood donation recorded successfully", d.ID)
}

// PUT /api/blood-donations/:id
func (bh *BloodHandler) UpdateDonation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := bh.donationService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.RespondServiceError(c, err, "update_donation_failed")
		return
	}
	response.RespondMutation(c, "Blood donation updated successfully", id)
}

// DELETE /api/blood-donations/:id
func (bh *BloodHandler) DeleteDonation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := bh.donationService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_donation_failed")
		return
	}
	response.RespondMutation(c, "Blood donation deleted successfully", id)
}

// GET /api/blood-requests
func (bh *BloodHandler) ListRequests(c *gin.Context) {
	requests, err := bh.requestService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "list_requests_failed")
		return
	}
	response.RespondOK(c, requests)
}

// POST /api/blood-requests
func (bh *BloodHandler) CreateRequest(c *gin.Context) {
	var req struct {
		BloodType  string    `json:"blood_type" binding:"required"`
		Quantity   int       `json:"quantity" binding:"required"`
		Urgency    string    `json:"urgency" binding:"required"`
		Reason     string    `json:"reason"`
		HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	r, err := bh.requestService.Create(c.Request.Context(), services.BloodRequestInput{
		BloodType:  req.BloodType,
		Quantity:   req.Quantity,
		Urgency:    req.Urgency,
		Reason:     req.Reason,
		HospitalID: req.HospitalID,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_request_failed")
		return
	}
	response.RespondMutation(c, "Blood request submitted successfully", r.ID)
}

// PUT /api/blood-requests/:id
func (bh *BloodHandler) UpdateRequest(c *gin.Context) {
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
	if err := bh.requestService.UpdateStatus(c.Request.Context(), id, req.Status, req.FulfilledDate); err != nil {
		response.RespondServiceError(c, err, "update_request_failed")
		return
	}
	response.RespondMutation(c, "Blood request updated successfully", id)
}

// DELETE /api/blood-requests/:id
func (bh *BloodHandler) DeleteRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := bh.requestService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_request_failed")
		return
	}
	response.RespondMutation(c, "Blood request deleted successfully", id)
}
