package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripwise/metrics"
	"tripwise/models"
)

var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	isoDatePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// FlightSearchParams is the body accepted by the flight-search proxy.
type FlightSearchParams struct {
	DepartureID  string `json:"departure_id"`
	ArrivalID    string `json:"arrival_id"`
	OutboundDate string `json:"outbound_date"`
	SerpAPIKey   string `json:"serpapi_key"`
}

func (p FlightSearchParams) Validate() error {
	if p.DepartureID == "" || p.ArrivalID == "" || p.OutboundDate == "" || p.SerpAPIKey == "" {
		return &ValidationError{Message: "Missing required parameters"}
	}
	if !airportCodePattern.MatchString(p.DepartureID) || !airportCodePattern.MatchString(p.ArrivalID) {
		return &ValidationError{Message: "Invalid airport codes"}
	}
	if !isoDatePattern.MatchString(p.OutboundDate) {
		return &ValidationError{Message: "Invalid date format"}
	}
	return nil
}

// IsAirportCode reports whether s looks like an IATA code.
func IsAirportCode(s string) bool {
	return airportCodePattern.MatchString(s)
}

// SerpAPIClient queries the Google Flights engine on SerpAPI.
type SerpAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSerpAPIClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *SerpAPIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SerpAPIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Proxy validates p and returns SerpAPI's JSON object untouched.
func (c *SerpAPIClient) Proxy(ctx context.Context, p FlightSearchParams) (raw json.RawMessage, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream("serpapi", start, err) }()

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("type", "2")
	params.Set("departure_id", p.DepartureID)
	params.Set("arrival_id", p.ArrivalID)
	params.Set("outbound_date", p.OutboundDate)
	params.Set("currency", "USD")
	params.Set("hl", "en")
	params.Set("api_key", p.SerpAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: ErrFlightSearch, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("SerpAPI error response", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, &UpstreamError{
			Kind:       ErrFlightSearch,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("SerpAPI request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, &UpstreamError{Kind: ErrFlightSearch, Detail: "Invalid response from SerpAPI"}
	}
	return json.RawMessage(trimmed), nil
}

// SearchFlights runs a one-way search with the server's own key and decodes
// the options.
func (c *SerpAPIClient) SearchFlights(ctx context.Context, departureID, arrivalID string, date models.Date) (*models.FlightSearchResponse, error) {
	raw, err := c.Proxy(ctx, FlightSearchParams{
		DepartureID:  departureID,
		ArrivalID:    arrivalID,
		OutboundDate: date.String(),
		SerpAPIKey:   c.apiKey,
	})
	if err != nil {
		return nil, err
	}
	var out models.FlightSearchResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &UpstreamError{Kind: ErrFlightSearch, Err: fmt.Errorf("failed to decode flight results: %w", err)}
	}
	return &out, nil
}
