package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/domain/reports"
)

// ReportsHandler exposes aggregated sales statistics.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates the reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// SalesStatistics handles GET /statistics/sales.
func (h *ReportsHandler) SalesStatistics(c *gin.Context) {
	stats, err := h.service.SalesStatistics(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, stats)
}
