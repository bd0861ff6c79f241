// Package integrations wraps outbound services the assistant can consult:
// weather, travel time, timezone conversion and email. Every call returns a
// human-readable status string so results can be fed straight back to the
// user or to an LLM tool loop. Missing credentials produce a configuration
// message rather than an error.
package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// Weather queries the OpenWeatherMap API.
type Weather struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWeather creates a Weather client. An empty apiKey is allowed; calls will
// report that the key is not configured.
func NewWeather(apiKey string) *Weather {
	return &Weather{
		apiKey:     apiKey,
		baseURL:    defaultWeatherBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Current returns the current weather for a location.
func (w *Weather) Current(ctx context.Context, location string) string {
	if w.apiKey == "" {
		return "OpenWeatherMap API key not set."
	}

	var data weatherResponse
	if err := w.get(ctx, "/weather", location, &data); err != nil {
		return fmt.Sprintf("Failed to get weather: %v", err)
	}
	if len(data.Weather) == 0 {
		return fmt.Sprintf("No weather data for %s.", location)
	}

	return fmt.Sprintf("Current weather in %s: %.1f°C, %s.", location, data.Main.Temp, data.Weather[0].Description)
}

// Forecast returns the first forecast entry falling on the given date.
func (w *Weather) Forecast(ctx context.Context, location string, date time.Time) string {
	if w.apiKey == "" {
		return "OpenWeatherMap API key not set."
	}

	var data forecastResponse
	if err := w.get(ctx, "/forecast", location, &data); err != nil {
		return fmt.Sprintf("Failed to get weather forecast: %v", err)
	}

	dateStr := date.Format("2006-01-02")
	for _, item := range data.List {
		at := time.Unix(item.Dt, 0).In(date.Location())
		if at.Format("2006-01-02") != dateStr {
			continue
		}
		if len(item.Weather) == 0 {
			continue
		}
		return fmt.Sprintf("Forecast for %s on %s at %s: %.1f°C, %s.",
			location, dateStr, at.Format("2006-01-02 15:04"), item.Main.Temp, item.Weather[0].Description)
	}

	return fmt.Sprintf("No forecast found for %s in %s.", dateStr, location)
}

func (w *Weather) get(ctx context.Context, path, location string, out any) error {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
