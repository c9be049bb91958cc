package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/http/response"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type HospitalHandler struct {
	hospitalService services.HospitalService
	doctorService   services.DoctorService
}

func NewHospitalHandler(hospitalService services.HospitalService, doctorService services.DoctorService) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitalService, doctorService: doctorService}
}

type hospitalRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number" binding:"required"`
	Status        string `json:"status"`
}

func (r hospitalRequest) input() services.HospitalInput {
	return services.HospitalInput{
		Name:          r.Name,
		Address:       r.Address,
		Phone:         r.Phone,
		Email:         r.Email,
		LicenseNumber: r.LicenseNumber,
		Status:        r.Status,
	}
}

// GET /api/hospitals
func (hh *HospitalHandler) ListHospitals(c *gin.Context) {
	hospitals, err := hh.hospitalService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "list_hospitals_failed")
		return
	}
	response.RespondOK(c, hospitals)
}

// POST /api/hospitals
func (hh *HospitalHandler) CreateHospital(c *gin.Context) {
	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h, err := hh.hospitalService.Create(c.Request.Context(), req.input())
	if err != nil {
		response.RespondServiceError(c, err, "create_hospital_failed")
		return
	}
	response.RespondMutation(c, "Hospital added successfully", h.ID)
}

// PUT /api/hospitals/:id
func (hh *HospitalHandler) UpdateHospital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := hh.hospitalService.Update(c.Request.Context(), id, req.input()); err != nil {
		response.RespondServiceError(c, err, "update_hospital_failed")
		return
	}
	response.RespondMutation(c, "Hospital updated successfully", id)
}

// DELETE /api/hospitals/:id
func (hh *HospitalHandler) DeleteHospital(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := hh.hospitalService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_hospital_failed")
		return
	}
	response.RespondMutation(c, "Hospital deleted successfully", id)
}

// GET /api/doctors
func (hh *HospitalHandler) ListDoctors(c *gin.Context) {
	doctors, err := hh.doctorService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "list_doctors_failed")
		return
	}
	response.RespondOK(c, doctors)
}

// POST /api/doctors
func (hh *HospitalHandler) CreateDoctor(c *gin.Context) {
	var req struct {
		Name           string     `json:"name" binding:"required"`
		Email          string     `json:"email"`
		Phone          string     `json:"phone"`
		Specialization string     `json:"specialization"`
		HospitalID     *uuid.UUID `json:"hospital_id"`
		LicenseNumber  string     `json:"license_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	d, err := hh.doctorService.Create(c.Request.Context(), services.DoctorInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		HospitalID:     req.HospitalID,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_doctor_failed")
		return
	}
	response.RespondMutation(c, "Doctor added successfully", d.ID)
}

// DELETE /api/doctors/:id
func (hh *HospitalHandler) DeleteDoctor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := hh.doctorService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_doctor_failed")
		return
	}
	response.RespondMutation(c, "Doctor deleted successfully", id)
}
