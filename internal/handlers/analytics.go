package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/apierror"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/service"
)

// defaultRangeDays is the window served when the caller omits start_date.
const defaultRangeDays = 30

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// parseRange reads the start_date/end_date query parameters, defaulting to
// the trailing defaultRangeDays window. Returns ok=false after writing the
// problem response.
func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	var start, end time.Time
	var err error

	if startStr := c.Query("start_date"); startStr != "" {
		start, err = models.ParseDate(startStr)
		if err != nil {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "start_date", startStr))
			return time.Time{}, time.Time{}, false
		}
	} else {
		start = models.Day(time.Now()).AddDate(0, 0, -(defaultRangeDays - 1))
	}

	if endStr := c.Query("end_date"); endStr != "" {
		end, err = models.ParseDate(endStr)
		if err != nil {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "end_date", endStr))
			return time.Time{}, time.Time{}, false
		}
	} else {
		end = models.Day(time.Now())
	}

	if start.After(end) {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			"start_date must be before or equal to end_date",
			"The start date must not be after the end date"))
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// GetMoodTrends handles GET /api/v1/moods/trends
func (h *AnalyticsHandler) GetMoodTrends(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	trends, err := h.analyticsService.GetMoodTrends(c.Request.Context(), start, end)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to load mood trends", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":       trends,
		"start_date": models.FormatDate(start),
		"end_date":   models.FormatDate(end),
	})
}

// GetStatistics handles GET /api/v1/statistics
func (h *AnalyticsHandler) GetStatistics(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.GetStatistics(c.Request.Context(), start, end)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to compute statistics", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, stats)
}
