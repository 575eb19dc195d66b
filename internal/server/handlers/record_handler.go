package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/service/rations"
	"github.com/mamadbah2/feedration/internal/service/reporting"
)

const maxImportBytes = 10 << 20

type saveRequest struct {
	Profile         models.AnimalProfile `json:"profile"`
	Ration          []models.RationItem  `json:"ration" binding:"dive"`
	AdvisoryReports []string             `json:"advisory_reports"`
}

// RecordHandler serves the saved ration archive.
type RecordHandler struct {
	svc     *rations.Service
	reports *reporting.Service
	logger  *zap.Logger
}

// NewRecordHandler constructs the record HTTP adapter.
func NewRecordHandler(svc *rations.Service, reports *reporting.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{svc: svc, reports: reports, logger: logger}
}

// List returns saved records, newest first.
func (h *RecordHandler) List(c *gin.Context) {
	records, err := h.svc.History(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed listing records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// Create saves a ration.
func (h *RecordHandler) Create(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.svc.Catalog().ValidateProfile(req.Profile); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	rec, err := h.svc.Save(c.Request.Context(), req.Profile, req.Ration, req.AdvisoryReports...)
	if err != nil {
		respondError(c, h.logger, "failed saving record", err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Delete removes a record by id.
func (h *RecordHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid record id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "failed deleting record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export downloads every record as a JSON array.
func (h *RecordHandler) Export(c *gin.Context) {
	data, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed exporting records", err)
		return
	}

	name := fmt.Sprintf("feedration-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json", data)
}

// Import replaces all records with an exported JSON array.
func (h *RecordHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "import payload too large"})
		return
	}

	n, err := h.svc.Import(c.Request.Context(), body)
	if err != nil {
		respondError(c, h.logger, "failed importing records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

// Summary aggregates the rations saved in the last ?days= days (default 7).
func (h *RecordHandler) Summary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "days must be a positive integer"})
		return
	}

	sum, err := h.reports.LastDays(c.Request.Context(), time.Now(), days)
	if err != nil {
		respondError(c, h.logger, "failed summarizing records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": sum, "text": reporting.Format(sum)})
}
