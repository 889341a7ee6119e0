package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/apierror"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/service"
)

type MoodHandler struct {
	moodService service.MoodService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService service.MoodService) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
	}
}

// SaveMood handles POST /api/v1/moods
func (h *MoodHandler) SaveMood(c *gin.Context) {
	var req models.SaveMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	record, err := h.moodService.SaveMood(c.Request.Context(), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "date", req.Date))
		case errors.Is(err, service.ErrFutureDate):
			apierror.WriteProblem(c, apierror.NewFutureDateError(requestID, "date"))
		case errors.Is(err, service.ErrInvalidSegment):
			apierror.WriteProblem(c, apierror.NewInvalidSegmentError(requestID, strconv.Itoa(int(req.Segment))))
		case errors.Is(err, service.ErrInvalidRating):
			apierror.WriteProblem(c, apierror.NewInvalidRatingError(requestID, req.Rating))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to save mood", logger.Err(err), logger.String("date", req.Date))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetDay handles GET /api/v1/moods/:date
func (h *MoodHandler) GetDay(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := models.ParseDate(dateStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "date", dateStr))
		return
	}

	day, err := h.moodService.GetDay(c.Request.Context(), date)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to load day moods", logger.Err(err), logger.String("date", dateStr))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, day)
}

// DeleteMood handles DELETE /api/v1/moods/:date/:segment
func (h *MoodHandler) DeleteMood(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := models.ParseDate(dateStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "date", dateStr))
		return
	}

	segmentStr := c.Param("segment")
	segmentNum, err := strconv.Atoi(segmentStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidSegmentError(requestID, segmentStr))
		return
	}

	if err := h.moodService.DeleteMood(c.Request.Context(), date, models.Segment(segmentNum)); err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrInvalidSegment) {
			apierror.WriteProblem(c, apierror.NewInvalidSegmentError(requestID, segmentStr))
			return
		}
		logger.Ctx(c.Request.Context()).Error("failed to delete mood", logger.Err(err), logger.String("date", dateStr))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetEarliest handles GET /api/v1/moods/earliest
func (h *MoodHandler) GetEarliest(c *gin.Context) {
	earliest, err := h.moodService.GetEarliestMoodDate(c.Request.Context())
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to load earliest mood date", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if earliest == nil {
		c.JSON(http.StatusOK, gin.H{"earliest_date": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"earliest_date": models.FormatDate(*earliest)})
}
