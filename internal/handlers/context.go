package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/apierror"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/service"
)

type ContextHandler struct {
	contextService service.ContextService
}

// NewContextHandler creates a new day context handler
func NewContextHandler(contextService service.ContextService) *ContextHandler {
	return &ContextHandler{
		contextService: contextService,
	}
}

// SaveContext handles PUT /api/v1/context/:date
func (h *ContextHandler) SaveContext(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := models.ParseDate(dateStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "date", dateStr))
		return
	}

	var req models.SaveContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	record, err := h.contextService.SaveContext(c.Request.Context(), date, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrFutureDate):
			apierror.WriteProblem(c, apierror.NewFutureDateError(requestID, "date"))
		case errors.Is(err, service.ErrInvalidFactor):
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "One or more context factors are invalid"))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to save context", logger.Err(err), logger.String("date", dateStr))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetContext handles GET /api/v1/context/:date
func (h *ContextHandler) GetContext(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := models.ParseDate(dateStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "date", dateStr))
		return
	}

	record, err := h.contextService.GetContext(c.Request.Context(), date)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to load context", logger.Err(err), logger.String("date", dateStr))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if record == nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "context record", dateStr))
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteContext handles DELETE /api/v1/context/:date
func (h *ContextHandler) DeleteContext(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := models.ParseDate(dateStr)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, "date", dateStr))
		return
	}

	if err := h.contextService.DeleteContext(c.Request.Context(), date); err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to delete context", logger.Err(err), logger.String("date", dateStr))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
