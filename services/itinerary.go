package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripwise/metrics"
	"tripwise/models"
)

const statusSuccess = "success"

// ─── Wire types ───────────────────────────────────────────────────────────────

// RawTravelPlan is the itinerary service's travel_plan object. The email
// endpoint accepts the same shape.
type RawTravelPlan struct {
	TripOverview          RawTripOverview          `json:"trip_overview"`
	Preparation           RawPreparation           `json:"preparation"`
	DailyItinerary        []RawDay                 `json:"daily_itinerary"`
	TransportationSummary RawTransportationSummary `json:"transportation_summary"`
	BudgetBreakdown       RawBudgetBreakdown       `json:"budget_breakdown"`
	Recommendations       RawRecommendations       `json:"recommendations"`
}

type RawTripOverview struct {
	Title       string            `json:"title"`
	Dates       string            `json:"dates"`
	Travelers   models.FlexString `json:"travelers"`
	TotalBudget models.FlexString `json:"total_budget"`
	Interests   []string          `json:"interests"`
}

type RawPreparation struct {
	PackingList  []string       `json:"packing_list"`
	CulturalTips map[string]any `json:"cultural_tips"`
}

type RawDay struct {
	Day        int           `json:"day"`
	Date       string        `json:"date"`
	Title      string        `json:"title"`
	Activities []RawActivity `json:"activities"`
}

type RawActivity struct {
	Time        string            `json:"time"`
	Description string            `json:"description"`
	Cost        models.FlexString `json:"cost"`
	Notes       string            `json:"notes"`
	TimeTotal   string            `json:"time_total,omitempty"`
}

type RawTransportationSummary struct {
	BetweenCities  []RawTransport `json:"between_cities"`
	LocalTransport []RawTransport `json:"local_transport"`
}

type RawTransport struct {
	Type    string               `json:"type"`
	Details string               `json:"details"`
	Cost    models.FlexString    `json:"cost"`
	Options []RawTransportOption `json:"options,omitempty"`
}

type RawTransportOption struct {
	Airline   string            `json:"airline"`
	Departure string            `json:"departure"`
	Arrival   string            `json:"arrival"`
	Price     models.FlexString `json:"price"`
}

type RawBudgetBreakdown struct {
	TotalEstimatedCost models.FlexString `json:"total_estimated_cost"`
	Note               string            `json:"note"`
}

type RawRecommendations struct {
	Restaurants   []string `json:"restaurants"`
	BookingAdvice []string `json:"booking_advice"`
}

type itineraryResponse struct {
	Status     string        `json:"status"`
	TravelPlan RawTravelPlan `json:"travel_plan"`
}

// ─── Normalizer ───────────────────────────────────────────────────────────────

// NormalizeTravelPlan maps the service's snake_case travel_plan onto the
// internal model. Absent fields stay at their zero value; nothing here
// validates.
func NormalizeTravelPlan(form models.TravelFormData, raw RawTravelPlan) models.TravelPlan {
	plan := models.TravelPlan{
		Destination: form.Destination,
		Summary: models.Summary{
			Title:       raw.TripOverview.Title,
			Dates:       raw.TripOverview.Dates,
			Travelers:   raw.TripOverview.Travelers.String(),
			TotalBudget: raw.TripOverview.TotalBudget.String(),
			Interests:   raw.TripOverview.Interests,
		},
		Preparation: models.Preparation{
			PackingList:  raw.Preparation.PackingList,
			CulturalTips: stringifyTips(raw.Preparation.CulturalTips),
		},
		Transportation: models.Transportation{
			BetweenCities:  normalizeTransport(raw.TransportationSummary.BetweenCities),
			LocalTransport: normalizeTransport(raw.TransportationSummary.LocalTransport),
		},
		Budget: models.Budget{
			TotalEstimatedCost: raw.BudgetBreakdown.TotalEstimatedCost.String(),
			Note:               raw.BudgetBreakdown.Note,
		},
		Recommendations: models.Recommendations{
			Restaurants:   raw.Recommendations.Restaurants,
			BookingAdvice: raw.Recommendations.BookingAdvice,
		},
		Source:    form.Source,
		StartDate: form.StartDate,
	}

	if raw.DailyItinerary != nil {
		plan.Days = make([]models.Day, 0, len(raw.DailyItinerary))
	}
	for _, d := range raw.DailyItinerary {
		day := models.Day{Day: d.Day, Date: d.Date, Title: d.Title}
		if d.Activities != nil {
			day.Activities = make([]models.Activity, 0, len(d.Activities))
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, models.Activity{
				Time:        a.Time,
				Description: a.Description,
				Cost:        a.Cost.String(),
				Notes:       a.Notes,
			})
		}
		plan.Days = append(plan.Days, day)
	}

	plan.Flights = DeriveFlightOptions(raw.TransportationSummary.BetweenCities)
	return plan
}

func normalizeTransport(in []RawTransport) []models.TransportSegment {
	if in == nil {
		return nil
	}
	out := make([]models.TransportSegment, 0, len(in))
	for _, t := range in {
		seg := models.TransportSegment{Type: t.Type, Details: t.Details, Cost: t.Cost.String()}
		for _, o := range t.Options {
			seg.Options = append(seg.Options, models.TransportOption{
				Airline:   o.Airline,
				Departure: o.Departure,
				Arrival:   o.Arrival,
				Price:     o.Price.String(),
			})
		}
		out = append(out, seg)
	}
	return out
}

func stringifyTips(in map[string]any) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
			out[k] = ""
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			out[k] = strings.Join(parts, "; ")
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// SortedTipLabels returns the cultural tip labels in a stable order.
func SortedTipLabels(tips map[string]string) []string {
	labels := make([]string, 0, len(tips))
	for k := range tips {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

// ─── Client ───────────────────────────────────────────────────────────────────

// GenerateResult is a normalized plan plus the flight options derived from
// it. FlightOptions and Plan.Flights are the same slice.
type GenerateResult struct {
	Plan          models.TravelPlan     `json:"plan"`
	FlightOptions []models.FlightOption `json:"flight_options"`
}

// ItineraryClient talks to the itinerary-generation service.
type ItineraryClient struct {
	baseURL    string
	resolver   *AirportResolver
	httpClient *http.Client
	logger     *zap.Logger
}

func NewItineraryClient(baseURL string, resolver *AirportResolver, timeout time.Duration, logger *zap.Logger) *ItineraryClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		resolver: resolver,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Generate builds the request for form, makes a single call and normalizes
// the answer. Callers are expected to have run ValidateForm.
func (c *ItineraryClient) Generate(ctx context.Context, form models.TravelFormData) (result *GenerateResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream("itinerary", start, err) }()

	payload := BuildItineraryRequest(form, c.resolver)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Sending itinerary request",
		zap.String("source", payload.Source),
		zap.String("destination", payload.Destination),
		zap.String("departure_date", payload.DepartureDate),
		zap.String("return_date", payload.ReturnDate))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-travel-plan", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: ErrGenerationFailure, Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Itinerary API error response",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return nil, &UpstreamError{
			Kind:       ErrGenerationFailure,
			StatusCode: resp.StatusCode,
			Detail:     compactJSON(respBody),
		}
	}

	var decoded itineraryResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, &UpstreamError{Kind: ErrGenerationFailure, Err: fmt.Errorf("failed to parse itinerary response: %w", err)}
	}
	if decoded.Status != statusSuccess {
		return nil, &UpstreamError{Kind: ErrGenerationFailure, Detail: "Failed to generate travel plan"}
	}

	plan := NormalizeTravelPlan(form, decoded.TravelPlan)
	return &GenerateResult{Plan: plan, FlightOptions: plan.Flights}, nil
}

// compactJSON returns body re-encoded without whitespace when it is JSON,
// or the trimmed text otherwise.
func compactJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err == nil {
		return buf.String()
	}
	return strings.TrimSpace(string(body))
}
