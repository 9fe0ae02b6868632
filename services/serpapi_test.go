package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/models"
)

const sampleSerpResponse = `{
  "best_flights": [{
    "flights": [{
      "departure_airport": {"name": "Indira Gandhi International Airport", "id": "DEL", "time": "2025-05-03 18:00"},
      "arrival_airport": {"name": "Netaji Subhash Chandra Bose International Airport", "id": "CCU", "time": "2025-05-03 20:15"},
      "duration": 135, "airplane": "Airbus A321neo", "airline": "IndiGo", "travel_class": "Economy", "flight_number": "6E 2057"
    }],
    "layovers": [], "total_duration": 135,
    "carbon_emissions": {"this_flight": 214000, "typical_for_this_route": 225000, "difference_percent": -5},
    "price": 332, "type": "One way", "booking_token": "tok+en/="
  }]
}`

func TestFlightSearchParamsValidate(t *testing.T) {
	good := FlightSearchParams{DepartureID: "DEL", ArrivalID: "CCU", OutboundDate: "2025-05-03", SerpAPIKey: "k"}
	require.NoError(t, good.Validate())

	cases := map[string]struct {
		mutate func(*FlightSearchParams)
		msg    string
	}{
		"missing key":    {func(p *FlightSearchParams) { p.SerpAPIKey = "" }, "Missing required parameters"},
		"missing date":   {func(p *FlightSearchParams) { p.OutboundDate = "" }, "Missing required parameters"},
		"lowercase code": {func(p *FlightSearchParams) { p.DepartureID = "del" }, "Invalid airport codes"},
		"long code":      {func(p *FlightSearchParams) { p.ArrivalID = "CCUX" }, "Invalid airport codes"},
		"bad date":       {func(p *FlightSearchParams) { p.OutboundDate = "03/05/2025" }, "Invalid date format"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := good
			tc.mutate(&p)
			err := p.Validate()
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.msg, vErr.Message)
		})
	}
}

func TestSerpAPIProxyForwardsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "google_flights", q.Get("engine"))
		assert.Equal(t, "2", q.Get("type"))
		assert.Equal(t, "DEL", q.Get("departure_id"))
		assert.Equal(t, "CCU", q.Get("arrival_id"))
		assert.Equal(t, "2025-05-03", q.Get("outbound_date"))
		assert.Equal(t, "USD", q.Get("currency"))
		assert.Equal(t, "en", q.Get("hl"))
		assert.Equal(t, "client-key", q.Get("api_key"))
		_, _ = io.WriteString(w, sampleSerpResponse)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, "server-key", 5*time.Second, nil)
	raw, err := client.Proxy(context.Background(), FlightSearchParams{
		DepartureID: "DEL", ArrivalID: "CCU", OutboundDate: "2025-05-03", SerpAPIKey: "client-key",
	})
	require.NoError(t, err)
	assert.JSONEq(t, sampleSerpResponse, string(raw))
}

func TestSerpAPIProxyUpstreamFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"http error", http.StatusUnauthorized, `Invalid API key`, "SerpAPI request failed: 401 Invalid API key"},
		{"not an object", http.StatusOK, `[1, 2]`, "Invalid response from SerpAPI"},
		{"null body", http.StatusOK, `null`, "Invalid response from SerpAPI"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			_, err := NewSerpAPIClient(server.URL, "k", 5*time.Second, nil).Proxy(context.Background(), FlightSearchParams{
				DepartureID: "DEL", ArrivalID: "CCU", OutboundDate: "2025-05-03", SerpAPIKey: "k",
			})
			assert.True(t, errors.Is(err, ErrFlightSearch))
			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tc.detail, upErr.Detail)
		})
	}
}

func TestSerpAPISearchFlightsUsesServerKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "server-key", r.URL.Query().Get("api_key"))
		_, _ = io.WriteString(w, sampleSerpResponse)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, "server-key", 5*time.Second, nil)
	resp, err := client.SearchFlights(context.Background(), "DEL", "CCU", models.NewDate(2025, time.May, 3))
	require.NoError(t, err)

	require.Len(t, resp.BestFlights, 1)
	option := resp.BestFlights[0]
	assert.Equal(t, 332.0, option.Price)
	assert.Equal(t, -5, option.CarbonEmissions.DifferencePercent)
	assert.Equal(t, "DEL", option.Flights[0].DepartureAirport.ID)
	assert.Equal(t, "https://google.com/travel/flights/booking?token=tok%2Ben%2F%3D", option.BookingURL())
}
