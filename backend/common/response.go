package common

import (
	"net/http"
	"time"

	apperrors "study-hub/backend/common/errors"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every handler returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	RFC3339MilliZ = "2006-01-02T15:04:05.000Z07:00"
)

func RespSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "",
		Data:    data,
	})
}

func RespSuccessStr(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
	})
}

func RespError(c *gin.Context, statusCode int, msg string, err error) {
	errMsg := msg
	if err != nil {
		errMsg = msg + ": " + err.Error()
	}

	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: errMsg,
	})
}

func RespErrorStr(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
	})
}

// RespAppError picks the HTTP status from the error's taxonomy code.
func RespAppError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(apperrors.CodeOf(err)), APIResponse{
		Success: false,
		Message: err.Error(),
	})
}

func FormatTime(t time.Time) string {
	return t.Format(RFC3339MilliZ)
}
