package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripwise/metrics"
	"tripwise/models"
)

// EmailPayload is the body accepted by POST /send-travel-plan.
type EmailPayload struct {
	TravelPlan    RawTravelPlan `json:"travel_plan"`
	FlightOptions OptionBlock   `json:"flight_options"`
	HotelOptions  OptionBlock   `json:"hotel_options"`
	Status        string        `json:"status"`
}

type OptionBlock struct {
	Note    string `json:"note"`
	Options []any  `json:"options"`
}

// BuildEmailPayload renames the internal plan back into the service's
// snake_case shape. Activity costs are rendered as "$N" and every activity
// carries the total for its time-of-day period.
func BuildEmailPayload(plan models.TravelPlan) EmailPayload {
	raw := RawTravelPlan{
		TripOverview: RawTripOverview{
			Title:       plan.Summary.Title,
			Dates:       plan.Summary.Dates,
			Travelers:   models.FlexString(plan.Summary.Travelers),
			TotalBudget: models.FlexString(plan.Summary.TotalBudget),
			Interests:   plan.Summary.Interests,
		},
		Preparation: RawPreparation{
			PackingList: plan.Preparation.PackingList,
		},
		TransportationSummary: RawTransportationSummary{
			BetweenCities:  denormalizeTransport(plan.Transportation.BetweenCities),
			LocalTransport: denormalizeTransport(plan.Transportation.LocalTransport),
		},
		BudgetBreakdown: RawBudgetBreakdown{
			TotalEstimatedCost: models.FlexString(plan.Budget.TotalEstimatedCost),
			Note:               plan.Budget.Note,
		},
		Recommendations: RawRecommendations{
			Restaurants:   plan.Recommendations.Restaurants,
			BookingAdvice: plan.Recommendations.BookingAdvice,
		},
	}
	if plan.Preparation.CulturalTips != nil {
		raw.Preparation.CulturalTips = make(map[string]any, len(plan.Preparation.CulturalTips))
		for k, v := range plan.Preparation.CulturalTips {
			raw.Preparation.CulturalTips[k] = v
		}
	}

	if plan.Days != nil {
		raw.DailyItinerary = make([]RawDay, 0, len(plan.Days))
	}
	for _, day := range plan.Days {
		totals := map[string]int{}
		for _, a := range day.Activities {
			totals[a.Time] += leadingInt(a.Cost)
		}

		rd := RawDay{Day: day.Day, Date: day.Date, Title: day.Title}
		if day.Activities != nil {
			rd.Activities = make([]RawActivity, 0, len(day.Activities))
		}
		for _, a := range day.Activities {
			rd.Activities = append(rd.Activities, RawActivity{
				Time:        a.Time,
				Description: a.Description,
				Cost:        models.FlexString(dollars(a.Cost)),
				Notes:       a.Notes,
				TimeTotal:   "$" + strconv.Itoa(totals[a.Time]),
			})
		}
		raw.DailyItinerary = append(raw.DailyItinerary, rd)
	}

	return EmailPayload{
		TravelPlan:    raw,
		FlightOptions: OptionBlock{Note: "Flight options for travelers", Options: []any{}},
		HotelOptions:  OptionBlock{Note: "Hotel options", Options: []any{}},
		Status:        statusSuccess,
	}
}

func denormalizeTransport(in []models.TransportSegment) []RawTransport {
	if in == nil {
		return nil
	}
	out := make([]RawTransport, 0, len(in))
	for _, t := range in {
		rt := RawTransport{Type: t.Type, Details: t.Details, Cost: models.FlexString(t.Cost)}
		for _, o := range t.Options {
			rt.Options = append(rt.Options, RawTransportOption{
				Airline:   o.Airline,
				Departure: o.Departure,
				Arrival:   o.Arrival,
				Price:     models.FlexString(o.Price),
			})
		}
		out = append(out, rt)
	}
	return out
}

// dollars prefixes a cost with "$", mapping empty to "$0". Values that
// already carry the sign are left alone.
func dollars(cost string) string {
	cost = strings.TrimSpace(cost)
	switch {
	case cost == "":
		return "$0"
	case strings.HasPrefix(cost, "$"):
		return cost
	}
	return "$" + cost
}

// leadingInt parses the integer prefix of s (after an optional "$"), or 0.
func leadingInt(s string) int {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ─── Client ───────────────────────────────────────────────────────────────────

// EmailClient posts plans to the email-delivery endpoint.
type EmailClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewEmailClient(baseURL string, timeout time.Duration, logger *zap.Logger) *EmailClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send delivers plan to recipient. There is no retry or queueing; a failed
// send is reported to the caller.
func (c *EmailClient) Send(ctx context.Context, plan models.TravelPlan, recipient string) (err error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return &ValidationError{Message: "Please enter an email address"}
	}
	if _, err := mail.ParseAddress(recipient); err != nil {
		return &ValidationError{Message: "Please enter a valid email address"}
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream("email", start, err) }()

	body, err := json.Marshal(BuildEmailPayload(plan))
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/send-travel-plan?recipient_email=%s", c.baseURL, url.QueryEscape(recipient))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Kind: ErrEmailDeliveryFailure, Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := serverMessage(respBody)
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		c.logger.Error("Email endpoint rejected travel plan",
			zap.Int("status", resp.StatusCode), zap.String("detail", detail))
		return &UpstreamError{Kind: ErrEmailDeliveryFailure, StatusCode: resp.StatusCode, Detail: detail}
	}

	c.logger.Info("Travel plan sent", zap.String("destination", plan.Destination))
	return nil
}

// serverMessage pulls a human readable message out of an error body, looking
// at "message" and then "detail".
func serverMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		switch v := payload[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case nil:
		default:
			b, _ := json.Marshal(v)
			return string(b)
		}
	}
	return ""
}
