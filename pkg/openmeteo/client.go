package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Client represents an Open-Meteo forecast API client. The free API is
// keyless; commercial access attaches an API key per request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Open-Meteo client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// CurrentObservation is the current-conditions slice of a forecast
// response. WeatherCode is a WMO 4677 weather code.
type CurrentObservation struct {
	Temperature float64
	WeatherCode int
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Current fetches the current temperature and weather code for a
// coordinate. unit is "celsius" or "fahrenheit".
func (c *Client) Current(ctx context.Context, lat, lon float64, unit string) (*CurrentObservation, error) {
	return c.CurrentWithKey(ctx, lat, lon, unit, "")
}

// CurrentWithKey fetches current conditions with an optional API key for
// commercial access. An empty key leaves the request unauthenticated.
func (c *Client) CurrentWithKey(ctx context.Context, lat, lon float64, unit, apiKey string) (*CurrentObservation, error) {
	url := fmt.Sprintf("%s/v1/forecast", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("temperature_unit", unit)
	if apiKey != "" {
		q.Set("apikey", apiKey)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("open-meteo error: %s", string(body))
	}

	var parsed forecastResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode open-meteo response: %w", err)
	}

	return &CurrentObservation{
		Temperature: parsed.Current.Temperature,
		WeatherCode: parsed.Current.WeatherCode,
	}, nil
}

// DescribeCode renders a WMO 4677 weather code as short human text.
func DescribeCode(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1:
		return "Mainly clear"
	case 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55, 56, 57:
		return "Drizzle"
	case 61, 63, 65, 66, 67:
		return "Rain"
	case 71, 73, 75, 77:
		return "Snow"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95, 96, 99:
		return "Thunderstorm"
	default:
		return fmt.Sprintf("Weather code %d", code)
	}
}
