// Package api exposes the ingest and analytics HTTP surface.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trhprace/intelligence/internal/analytics"
	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/processor"
	"github.com/trhprace/intelligence/internal/storage"
)

// A single ingest batch request is bounded at 500 signals by the binding
// tag on BatchIngestRequest; scrapers chunk above that.

// Handler handles HTTP requests for the intelligence API.
type Handler struct {
	pipeline  *processor.Pipeline
	store     *storage.Store
	analytics *analytics.Service
	log       logger.Logger
}

// NewHandler creates the API handler.
func NewHandler(pipeline *processor.Pipeline, store *storage.Store, analyticsSvc *analytics.Service, log logger.Logger) *Handler {
	return &Handler{
		pipeline:  pipeline,
		store:     store,
		analytics: analyticsSvc,
		log:       log,
	}
}

// IngestRequest carries a single raw signal.
type IngestRequest struct {
	Signal *domain.RawSignal `json:"signal" binding:"required"`
}

// IngestResponse reports what the store did with a signal.
type IngestResponse struct {
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// BatchIngestRequest carries a batch of raw signals.
type BatchIngestRequest struct {
	Signals []domain.RawSignal `json:"signals" binding:"required,min=1,max=500"`
}

// KnownResponse answers the scraper's pre-fetch dedup check.
type KnownResponse struct {
	Link  string `json:"link"`
	Known bool   `json:"known"`
}

// Ingest handles POST /api/v1/signals.
func (h *Handler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid ingest request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.pipeline.ProcessOne(c.Request.Context(), *req.Signal)
	if err != nil {
		h.log.Error("signal ingest failed",
			logger.String("link", req.Signal.Link),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, IngestResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, IngestResponse{Outcome: string(outcome)})
}

// IngestBatch handles POST /api/v1/signals/batch.
func (h *Handler) IngestBatch(c *gin.Context) {
	var req BatchIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid batch ingest request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary := h.pipeline.ProcessBatch(c.Request.Context(), req.Signals)
	c.JSON(http.StatusOK, summary)
}

// Known handles GET /api/v1/signals/known. Scrapers call it before
// fetching an advert's detail page.
func (h *Handler) Known(c *gin.Context) {
	link := c.Query("link")
	if link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing link parameter"})
		return
	}

	known, err := h.store.IsKnown(c.Request.Context(), link)
	if err != nil {
		h.log.Error("known check failed", logger.String("link", link), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, KnownResponse{Link: link, Known: known})
}

// Analytics handles GET /api/v1/analytics/:query.
func (h *Handler) Analytics(c *gin.Context) {
	name := c.Param("query")

	result, err := h.analytics.Run(c.Request.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if _, ok := analyticsQueryNames()[name]; !ok {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAnalytics handles GET /api/v1/analytics.
func (h *Handler) ListAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"queries": analytics.QueryNames()})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.store.SignalStats(c.Request.Context())
	if err != nil {
		h.log.Error("stats query failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func analyticsQueryNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, name := range analytics.QueryNames() {
		names[name] = struct{}{}
	}
	return names
}
