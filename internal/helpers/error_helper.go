package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

func RespondWithFieldErrors(c *gin.Context, customMessage string, details []FieldError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   HTTPStatusText(http.StatusBadRequest),
		Message: customMessage,
		Details: details,
	})
}
