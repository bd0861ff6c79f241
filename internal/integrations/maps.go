package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultMapsBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"

// Maps queries the Google Maps Distance Matrix API for travel-time estimates.
type Maps struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewMaps creates a Maps client. An empty apiKey is allowed; calls will
// report that the key is not configured.
func NewMaps(apiKey string) *Maps {
	return &Maps{
		apiKey:     apiKey,
		baseURL:    defaultMapsBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type distanceMatrixResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// TravelTime estimates travel time between two places. Mode is one of
// driving, walking, bicycling or transit; empty defaults to driving.
func (m *Maps) TravelTime(ctx context.Context, origin, destination, mode string) string {
	if m.apiKey == "" {
		return "Google Maps API key not set."
	}
	if mode == "" {
		mode = "driving"
	}

	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", mode)
	q.Set("key", m.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Failed to get travel time: %v", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Failed to get travel time: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Failed to get travel time: unexpected status %d", resp.StatusCode)
	}

	var data distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Sprintf("Failed to get travel time: %v", err)
	}

	if len(data.Rows) == 0 || len(data.Rows[0].Elements) == 0 {
		return "Could not compute travel time: empty response"
	}
	elem := data.Rows[0].Elements[0]
	if elem.Status != "OK" {
		return fmt.Sprintf("Could not compute travel time: %s", elem.Status)
	}

	return fmt.Sprintf("Travel time from %s to %s by %s: %s", origin, destination, mode, elem.Duration.Text)
}
