// Package weather looks up current conditions for a city through the
// Open-Meteo geocoding and forecast APIs. Requests are single-shot: no
// retries, no caching.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gophertrace/flameprof/pkg/errors"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// Client talks to the Open-Meteo APIs.
type Client struct {
	HTTPClient   *http.Client
	GeocodingURL string
	ForecastURL  string
}

// NewClient provides a Client with default values.
func NewClient() *Client {
	return &Client{
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		GeocodingURL: defaultGeocodingURL,
		ForecastURL:  defaultForecastURL,
	}
}

// Report is the current conditions for one resolved location.
type Report struct {
	Location     string  `json:"location"`
	Country      string  `json:"country"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TemperatureC float64 `json:"temperatureC"`
	Humidity     float64 `json:"humidity"`
	WindSpeedKmh float64 `json:"windSpeedKmh"`
	Conditions   string  `json:"conditions"`
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Current geocodes the city and fetches its current conditions.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if city == "" {
		return nil, errors.NewErrorInvalid("city is a required argument")
	}

	var geo geocodingResponse
	q := url.Values{"name": {city}, "count": {"1"}}
	if err := c.getJSON(ctx, c.GeocodingURL+"?"+q.Encode(), &geo); err != nil {
		return nil, errors.NewErrorUnavailable(fmt.Sprintf("geocoding lookup failed: %v", err))
	}
	if len(geo.Results) == 0 {
		return nil, errors.NewErrorInvalid(fmt.Sprintf("no location found for %q", city))
	}
	loc := geo.Results[0]

	var fc forecastResponse
	q = url.Values{
		"latitude":  {fmt.Sprintf("%.4f", loc.Latitude)},
		"longitude": {fmt.Sprintf("%.4f", loc.Longitude)},
		"current":   {"temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code"},
	}
	if err := c.getJSON(ctx, c.ForecastURL+"?"+q.Encode(), &fc); err != nil {
		return nil, errors.NewErrorUnavailable(fmt.Sprintf("forecast lookup failed: %v", err))
	}

	return &Report{
		Location:     loc.Name,
		Country:      loc.Country,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		TemperatureC: fc.Current.Temperature,
		Humidity:     fc.Current.Humidity,
		WindSpeedKmh: fc.Current.WindSpeed,
		Conditions:   Describe(fc.Current.WeatherCode),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Describe maps a WMO weather interpretation code to a short label.
func Describe(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 3:
		return "partly cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	}
	return "unknown"
}
