package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeline-backend/internal/platform/apierr"
)

type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorBody{
		Error: msg,
		Code:  code,
	})
}

// RespondServiceError maps a service error by its sentinel. Errors without a
// known sentinel are reported as 400 with fallbackCode.
func RespondServiceError(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.From(err, http.StatusBadRequest, fallbackCode)
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondMutation is the acknowledgement every write endpoint returns.
func RespondMutation(c *gin.Context, message string, id any) {
	c.JSON(http.StatusOK, gin.H{"message": message, "id": id})
}
