package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studiocrm/pkg/logger"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service errors onto HTTP responses. Client errors
// carry the wrapped message so callers see which field or record failed.
func HandleServiceError(c *gin.Context, err error) {
	log := logger.FromContext(c.Request.Context())

	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, err.Error())
	case isAny(err, notFoundErrors):
		RespondError(c, http.StatusNotFound, err.Error())
	case isAny(err, conflictErrors):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrAuditImmutable):
		RespondError(c, http.StatusMethodNotAllowed, err.Error())
	case errors.Is(err, ErrGenerationFailed):
		log.Warn("Deliverable generation failed", zap.Error(err))
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrAuditWrite):
		log.Error("Audit log write failed, mutation rolled back", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Audit log unavailable, change was not applied")
	case errors.Is(err, ErrDatabaseError):
		log.Error("Database error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error("Unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
