package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"tariff-sync/internal/model"
)

// EasyEnergyClient fetches APX tariffs from the EasyEnergy API.
type EasyEnergyClient struct {
	BaseURL string
	Client  *http.Client
}

// NewEasyEnergyClient creates a client for the EasyEnergy tariff API.
// If baseURL is empty, defaults to the public getapxtariffs endpoint.
func NewEasyEnergyClient(baseURL string, timeout time.Duration) *EasyEnergyClient {
	if baseURL == "" {
		baseURL = "https://mijn.easyenergy.com/nl/api/tariff/getapxtariffs"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EasyEnergyClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// RawTariff is one element of the API's JSON array. The schema is owned by
// the upstream service; only Timestamp and the two tariffs survive
// normalization.
type RawTariff struct {
	Timestamp    string   `json:"Timestamp"`
	SupplierID   int      `json:"SupplierId"`
	TariffUsage  *float64 `json:"TariffUsage"`
	TariffReturn *float64 `json:"TariffReturn"`
}

// EasyEnergyError represents a transport failure or a non-success response
// from the EasyEnergy API.
type EasyEnergyError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *EasyEnergyError) Error() string {
	return e.Message
}

// GetTariffs fetches the hourly tariffs for an inclusive date range. The
// request covers 00:00 of the start date through 23:00 of the end date.
// There is no retry; a failed fetch is fatal for the run.
func (c *EasyEnergyClient) GetTariffs(r model.DateRange) ([]RawTariff, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("reversed date range %s: nothing to fetch", r)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("startTimestamp", r.Start.Format(model.DateLayout)+"T00:00:00.000Z")
	q.Set("endTimestamp", r.End.Format(model.DateLayout)+"T23:00:00.000Z")
	q.Set("grouping", `""`)
	u.RawQuery = q.Encode()

	log.Printf("[EasyEnergy] Request: GET %s (start=%s, end=%s)",
		u.Path, r.Start.Format(model.DateLayout), r.End.Format(model.DateLayout))

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startedAt := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startedAt)
	if err != nil {
		log.Printf("[EasyEnergy] Request failed: %v (duration: %v)", err, duration)
		return nil, &EasyEnergyError{
			Code:    "TRANSPORT_ERROR",
			Message: fmt.Sprintf("request for %s failed: %v", r, err),
		}
	}
	defer resp.Body.Close()

	log.Printf("[EasyEnergy] Response: %d %s (duration: %v, range=%s)",
		resp.StatusCode, resp.Status, duration, r)

	if resp.StatusCode != http.StatusOK {
		return nil, &EasyEnergyError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d for range %s", resp.StatusCode, r),
		}
	}

	var out []RawTariff
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[EasyEnergy] Error decoding response: %v (range=%s)", err, r)
		return nil, fmt.Errorf("decode tariff response for %s: %w", r, err)
	}

	log.Printf("[EasyEnergy] Success: received %d tariff rows (range=%s)", len(out), r)
	return out, nil
}
