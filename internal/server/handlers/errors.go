package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/ration"
	"github.com/mamadbah2/feedration/internal/repository"
	"github.com/mamadbah2/feedration/internal/service/advisory"
	"github.com/mamadbah2/feedration/internal/service/pricing"
	"github.com/mamadbah2/feedration/internal/service/rations"
)

type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) (int, errorResponse) {
	var advErr *advisory.Error
	switch {
	case errors.Is(err, rations.ErrEmptyRation),
		errors.Is(err, rations.ErrInvalidImport),
		errors.Is(err, catalog.ErrBreedCategoryMismatch):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "record not found"}
	case errors.Is(err, rations.ErrBusy):
		return http.StatusConflict, errorResponse{Error: err.Error(), Retryable: true}
	case errors.Is(err, rations.ErrAdvisoryDisabled), errors.Is(err, pricing.ErrDisabled):
		return http.StatusNotImplemented, errorResponse{Error: err.Error()}
	case errors.Is(err, ration.ErrConstraintViolation):
		return http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "constraint"}
	case errors.As(err, &advErr):
		resp := errorResponse{Error: advErr.Message, Kind: advErr.Kind.String(), Retryable: advErr.Retryable()}
		if resp.Error == "" {
			resp.Error = "advisory request failed"
		}
		switch advErr.Kind {
		case advisory.KindQuota:
			return http.StatusTooManyRequests, resp
		case advisory.KindServer:
			return http.StatusServiceUnavailable, resp
		default:
			return http.StatusBadGateway, resp
		}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal error"}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err), zap.Int("status", status))
	} else {
		logger.Warn(msg, zap.Error(err), zap.Int("status", status))
	}
	c.JSON(status, body)
}

// outcome labels an advisory call for metrics.
func outcome(err error) string {
	var advErr *advisory.Error
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, rations.ErrBusy):
		return "busy"
	case errors.Is(err, ration.ErrConstraintViolation):
		return "rejected"
	case errors.As(err, &advErr):
		return advErr.Kind.String()
	}
	return "error"
}
