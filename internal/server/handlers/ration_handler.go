package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/metrics"
	"github.com/mamadbah2/feedration/internal/service/rations"
)

type rationRequest struct {
	Profile models.AnimalProfile `json:"profile"`
	Ration  []models.RationItem  `json:"ration" binding:"dive"`
}

type adviceRequest struct {
	Profile  *models.AnimalProfile `json:"profile"`
	Ration   []models.RationItem   `json:"ration" binding:"dive"`
	RecordID int64                 `json:"record_id"`
}

// RationHandler serves evaluation and advisory endpoints.
type RationHandler struct {
	svc     *rations.Service
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewRationHandler constructs the ration HTTP adapter. collector may be nil.
func NewRationHandler(svc *rations.Service, collector *metrics.Collector, logger *zap.Logger) *RationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RationHandler{svc: svc, metrics: collector, logger: logger}
}

// Evaluate returns requirements, totals and score for a ration.
func (h *RationHandler) Evaluate(c *gin.Context) {
	var req rationRequest
	if !h.bind(c, &req) || !h.validProfile(c, req.Profile) {
		return
	}
	c.JSON(http.StatusOK, h.svc.Evaluate(req.Profile, req.Ration))
}

// Advise requests a model analysis and stores it.
func (h *RationHandler) Advise(c *gin.Context) {
	var req adviceRequest
	if !h.bind(c, &req) {
		return
	}

	var profile models.AnimalProfile
	if req.RecordID == 0 {
		if req.Profile == nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "profile is required without record_id"})
			return
		}
		profile = *req.Profile
		if !h.validProfile(c, profile) {
			return
		}
	}

	res, err := h.svc.Advise(c.Request.Context(), profile, req.Ration, req.RecordID)
	h.observe("advise", err)
	if err != nil {
		respondError(c, h.logger, "advice failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Optimize suggests amounts for the ration's feeds without saving them.
func (h *RationHandler) Optimize(c *gin.Context) {
	var req rationRequest
	if !h.bind(c, &req) || !h.validProfile(c, req.Profile) {
		return
	}

	res, err := h.svc.Optimize(c.Request.Context(), req.Profile, req.Ration)
	h.observe("optimize", err)
	if err != nil {
		respondError(c, h.logger, "optimization failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RationHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid ration payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (h *RationHandler) validProfile(c *gin.Context, p models.AnimalProfile) bool {
	if err := h.svc.Catalog().ValidateProfile(p); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *RationHandler) observe(op string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveAdvisory(op, outcome(err))
	}
}
