package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/salesdesk/backend/internal/application/analysis"
	"github.com/salesdesk/backend/internal/application/chat"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
)

// AnalyticsHandler handles the analysis API endpoints
type AnalyticsHandler struct {
	BaseHandler
	reports *analysis.ReportService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(reports *analysis.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.POST("/analyze", h.Analyze)
		analytics.GET("/workflows", h.Workflows)
	}
}

type analyzeRequest struct {
	AnalysisType string `json:"analysis_type" binding:"required,oneof=inventory sales business"`
	PeriodDays   int    `json:"period_days" binding:"omitempty,min=1,max=365"`
}

// Analyze runs the requested analysis and returns metrics, chart
// specifications and an optional advisory.
func (h *AnalyticsHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch req.AnalysisType {
	case "inventory":
		report, err := h.reports.AnalyzeInventory(ctx)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, report)
	case "sales":
		periodDays := req.PeriodDays
		if periodDays == 0 {
			periodDays = analysis.DefaultSalesPeriodDays
		}
		report, err := h.reports.AnalyzeSales(ctx, periodDays)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, report)
	case "business":
		report, err := h.reports.BusinessReport(ctx)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, report)
	}
}

// Workflows lists the chat workflows the assistant can run
func (h *AnalyticsHandler) Workflows(c *gin.Context) {
	workflows := make([]string, 0, len(chat.AllWorkflows))
	for _, w := range chat.AllWorkflows {
		workflows = append(workflows, string(w))
	}
	h.Success(c, gin.H{"workflows": workflows})
}
