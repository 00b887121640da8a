package response

import (
	"github.com/gin-gonic/gin"

	"go-talentmatch-backend/pkg/apperror"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody carries the machine-readable error kind alongside the
// human-readable message, plus per-field details for validation failures.
type ErrorBody struct {
	Kind    string   `json:"kind"`
	Details []string `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: idStr,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, errBody *ErrorBody) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     errBody,
		RequestID: idStr,
	})
}

// AppError maps a structured application error onto the envelope
func AppError(c *gin.Context, appErr *apperror.AppError) {
	Error(c, appErr.Code, appErr.Message, &ErrorBody{
		Kind:    string(appErr.Kind),
		Details: appErr.Details,
	})
}
