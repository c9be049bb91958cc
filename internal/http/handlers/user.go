package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeline-backend/internal/http/response"
	"github.com/yungbote/lifeline-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/users
func (uh *UserHandler) ListUsers(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err, "list_users_failed")
		return
	}
	response.RespondOK(c, users)
}

// PUT /api/users/:id
func (uh *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Role   string `json:"role" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := uh.userService.UpdateRoleStatus(c.Request.Context(), id, req.Role, req.Status); err != nil {
		response.RespondServiceError(c, err, "update_user_failed")
		return
	}
	response.RespondMutation(c, "User updated successfully", id)
}

// DELETE /api/users/:id
func (uh *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_user_failed")
		return
	}
	response.RespondMutation(c, "User deleted successfully", id)
}

// GET /api/donors?blood_type=
func (uh *UserHandler) SearchDonors(c *gin.Context) {
	// An unescaped "O+" arrives as "O ".
	bloodType := strings.ReplaceAll(c.Query("blood_type"), " ", "+")
	donors, err := uh.userService.SearchDonors(c.Request.Context(), bloodType)
	if err != nil {
		response.RespondServiceError(c, err, "search_donors_failed")
		return
	}
	response.RespondOK(c, donors)
}
