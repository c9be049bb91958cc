package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifeline-backend/internal/http/response"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name           string   `json:"name" binding:"required"`
		Email          string   `json:"email" binding:"required"`
		Password       string   `json:"password" binding:"required"`
		Phone          string   `json:"phone"`
		BloodType      string   `json:"blood_type"`
		Address        string   `json:"address"`
		Age            *int     `json:"age"`
		Gender         string   `json:"gender"`
		OrganDonor     bool     `json:"organ_donor"`
		OrgansToDonate []string `json:"organs_to_donate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := ah.authService.RegisterDonor(c.Request.Context(), services.RegisterDonorInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		BloodType:      req.BloodType,
		Address:        req.Address,
		Age:            req.Age,
		Gender:         req.Gender,
		OrganDonor:     req.OrganDonor,
		OrgansToDonate: req.OrgansToDonate,
	})
	if err != nil {
		response.RespondServiceError(c, err, "registration_failed")
		return
	}
	response.RespondMutation(c, "User registered successfully", u.ID)
}

// POST /api/admin/register
func (ah *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req struct {
		Name       string    `json:"name" binding:"required"`
		Email      string    `json:"email" binding:"required"`
		Password   string    `json:"password" binding:"required"`
		Phone      string    `json:"phone"`
		Department string    `json:"department" binding:"required"`
		EmployeeID string    `json:"employee_id" binding:"required"`
		HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := ah.authService.RegisterAdmin(c.Request.Context(), services.RegisterAdminInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		Department: req.Department,
		EmployeeID: req.EmployeeID,
		HospitalID: req.HospitalID,
	})
	if err != nil {
		response.RespondServiceError(c, err, "registration_failed")
		return
	}
	response.RespondMutation(c, "Admin registered successfully", u.ID)
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, err, "invalid_credentials")
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
		"expires_in":    res.ExpiresIn,
		"user": gin.H{
			"id":         res.User.ID,
			"name":       res.User.Name,
			"email":      res.User.Email,
			"role":       res.User.Role,
			"blood_type": res.User.BloodType,
		},
	})
}

// POST /api/refresh
// The refresh token comes from the JSON body or the X-Refresh-Token header.
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.GetHeader("X-Refresh-Token")
	}
	pair, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondServiceError(c, err, "refresh_failed")
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondServiceError(c, err, "logout_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/me
func (ah *AuthHandler) Me(c *gin.Context) {
	u, err := ah.authService.Me(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "load_user_failed")
		return
	}
	response.RespondOK(c, u)
}
