package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/apierror"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/service"
)

// InsightsHandler handles insight-related HTTP requests
type InsightsHandler struct {
	insightService service.InsightService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightService service.InsightService) *InsightsHandler {
	return &InsightsHandler{
		insightService: insightService,
	}
}

// GetInsights returns the current ranked insight set, served from cache
// when it is still valid.
// GET /api/v1/insights?refresh=true
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	response, err := h.insightService.GenerateInsights(c.Request.Context(), refresh)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to generate insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, response)
}

// RefreshInsights forces recomputation of insights
// POST /api/v1/insights/refresh
func (h *InsightsHandler) RefreshInsights(c *gin.Context) {
	response, err := h.insightService.GenerateInsights(c.Request.Context(), true)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to refresh insights", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCorrelations returns only the factor correlation insights
// GET /api/v1/insights/correlations?window_days=30
func (h *InsightsHandler) GetCorrelations(c *gin.Context) {
	windowStr := c.DefaultQuery("window_days", "0")
	windowDays, err := strconv.Atoi(windowStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "window_days", Message: "must be an integer number of days", Code: "invalid_type"},
		}))
		return
	}

	correlations, err := h.insightService.GenerateCorrelationInsights(c.Request.Context(), windowDays)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to compute correlations", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"correlations": correlations,
	})
}

// GetWeeklySummary returns the summary for one week. week_start defaults
// to the Monday of the current week.
// GET /api/v1/insights/weekly-summary?week_start=2025-06-02
func (h *InsightsHandler) GetWeeklySummary(c *gin.Context) {
	var weekStart time.Time
	if weekStartStr := c.Query("week_start"); weekStartStr != "" {
		var err error
		weekStart, err = models.ParseDate(weekStartStr)
		if err != nil {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "week_start", weekStartStr))
			return
		}
	} else {
		today := models.Day(time.Now())
		weekStart = today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	}

	summary, err := h.insightService.GenerateWeeklySummary(c.Request.Context(), weekStart)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to build weekly summary", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}
