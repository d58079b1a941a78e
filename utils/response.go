package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"autolot-api/repositories"
	"autolot-api/schemas"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   int                 `json:"code"`
	Errors []schemas.FieldError `json:"validation_errors"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

// SendValidationErrors reports every violated rule in one response.
func SendValidationErrors(c *gin.Context, violations []schemas.FieldError) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   http.StatusBadRequest,
		Errors: violations,
	})
}

func SendPaginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// RespondError classifies a repository error into the API's error taxonomy.
// Ownership and existence failures are both NotFound; uniqueness violations
// are Conflict; everything else is logged and reported as an opaque 500 so
// storage detail never reaches the caller.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrVehicleNotFound):
		SendError(c, http.StatusNotFound, "Vehicle not found")
	case errors.Is(err, repositories.ErrUserNotFound):
		SendError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, repositories.ErrDuplicateEmail):
		SendError(c, http.StatusConflict, "Email already registered")
	default:
		slog.Error("internal error", "path", c.FullPath(), "error", err)
		SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}
