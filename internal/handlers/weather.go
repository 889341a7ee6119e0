package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moodlens/backend/internal/apierror"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/service"
)

// weatherRetryAfterSeconds is sent when the weather provider is unreachable.
const weatherRetryAfterSeconds = 60

type WeatherHandler struct {
	weatherService service.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService service.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
	}
}

// GetCurrentWeather handles GET /api/v1/weather?lat=&lon=
func (h *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	var fieldErrors []apierror.FieldError

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "lat",
			Message: "must be a latitude between -90 and 90",
			Code:    "invalid_coordinate",
		})
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "lon",
			Message: "must be a longitude between -180 and 180",
			Code:    "invalid_coordinate",
		})
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	weather, err := h.weatherService.CurrentWeather(c.Request.Context(), lat, lon)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Warn("weather fetch failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewServiceUnavailableError(requestID, weatherRetryAfterSeconds))
		return
	}

	c.JSON(http.StatusOK, weather)
}
