package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const contextLogger = "logger"

func traceIDFrom(c *gin.Context) string {
	return c.GetString("trace_id")
}

// SetRequestLogger attaches the request-scoped logger used by HandleServiceError.
func SetRequestLogger(c *gin.Context, logger *zap.Logger) {
	c.Set(contextLogger, logger)
}

// RequestLoggerFrom falls back to the global "http" logger outside the
// request logging middleware.
func RequestLoggerFrom(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(contextLogger); ok {
		if logger, ok := v.(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return zap.L().Named("http")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

// StatusFor maps a service error onto the HTTP status returned to clients.
func StatusFor(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientCapacity),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidReference),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrReviewAlreadyExists),
		errors.Is(err, ErrCapacityExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		RequestLoggerFrom(c).Error("request failed",
			zap.String("trace_id", traceIDFrom(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		RespondError(c, code, "Internal server error")
		return
	}
	RespondError(c, code, err.Error())
}
