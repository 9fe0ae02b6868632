package services

import (
	"context"
	"encoding/json"
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

const sampleItineraryResponse = `{
  "status": "success",
  "travel_plan": {
    "trip_overview": {
      "title": "A Week in France",
      "dates": "May 3 - May 10, 2025",
      "travelers": 2,
      "total_budget": "$2000",
      "interests": ["Food & Dining"]
    },
    "preparation": {
      "packing_list": ["Passport", "Comfortable shoes"],
      "cultural_tips": {"Greeting": "Say bonjour", "Tipping": "Service is included", "Hours": ["Shops close Sunday", "Lunch 12-2"]}
    },
    "daily_itinerary": [
      {"day": 1, "date": "2025-05-03", "title": "Arrival in Paris", "activities": [
        {"time": "Morning", "description": "Land at CDG", "cost": "0", "notes": ""},
        {"time": "Evening", "description": "Seine cruise", "cost": 35, "notes": "Book ahead"}
      ]},
      {"day": 2, "date": "2025-05-04", "title": "Louvre", "activities": [
        {"time": "Morning", "description": "Louvre museum", "cost": "22", "notes": "Closed Tuesdays"}
      ]}
    ],
    "transportation_summary": {
      "between_cities": [
        {"type": "Flight", "details": "DEL to CDG", "cost": "$700", "options": [
          {"airline": "Air France", "departure": "2025-05-03 02:00", "arrival": "2025-05-03 08:00", "price": "650"},
          {"airline": "Air India", "departure": "2025-05-03 14:00", "arrival": "2025-05-03 20:00", "price": "$590"}
        ]},
        {"type": "Train", "details": "Paris to Lyon", "cost": "80", "options": [
          {"airline": "SNCF", "departure": "09:00", "arrival": "11:00", "price": "80"}
        ]}
      ],
      "local_transport": [
        {"type": "Metro", "details": "Navigo weekly pass", "cost": "30"}
      ]
    },
    "budget_breakdown": {"total_estimated_cost": 1850, "note": "Excludes shopping"},
    "recommendations": {"restaurants": ["Le Comptoir"], "booking_advice": ["Book the Louvre online"]}
  }
}`

func decodeSample(t *testing.T) RawTravelPlan {
	t.Helper()
	var resp itineraryResponse
	require.NoError(t, json.Unmarshal([]byte(sampleItineraryResponse), &resp))
	return resp.TravelPlan
}

func TestNormalizeTravelPlan(t *testing.T) {
	form := validForm()
	plan := NormalizeTravelPlan(form, decodeSample(t))

	assert.Equal(t, "France", plan.Destination)
	assert.Equal(t, "India", plan.Source)
	assert.Equal(t, form.StartDate, plan.StartDate)
	assert.Equal(t, "A Week in France", plan.Summary.Title)
	assert.Equal(t, "2", plan.Summary.Travelers)
	assert.Equal(t, "$2000", plan.Summary.TotalBudget)
	assert.Equal(t, []string{"Passport", "Comfortable shoes"}, plan.Preparation.PackingList)
	assert.Equal(t, "Say bonjour", plan.Preparation.CulturalTips["Greeting"])
	assert.Equal(t, "Shops close Sunday; Lunch 12-2", plan.Preparation.CulturalTips["Hours"])
	assert.Equal(t, []string{"Greeting", "Hours", "Tipping"}, SortedTipLabels(plan.Preparation.CulturalTips))

	require.Len(t, plan.Days, 2)
	assert.Equal(t, 1, plan.Days[0].Day)
	assert.Equal(t, "Arrival in Paris", plan.Days[0].Title)
	require.Len(t, plan.Days[0].Activities, 2)
	assert.Equal(t, "35", plan.Days[0].Activities[1].Cost)
	assert.Equal(t, "Book ahead", plan.Days[0].Activities[1].Notes)

	require.Len(t, plan.Transportation.BetweenCities, 2)
	assert.Equal(t, "$700", plan.Transportation.BetweenCities[0].Cost)
	require.Len(t, plan.Transportation.LocalTransport, 1)
	assert.Equal(t, "Metro", plan.Transportation.LocalTransport[0].Type)
	assert.Equal(t, "1850", plan.Budget.TotalEstimatedCost)
	assert.Equal(t, []string{"Book the Louvre online"}, plan.Recommendations.BookingAdvice)
}

func TestNormalizeMissingFieldsStayZero(t *testing.T) {
	plan := NormalizeTravelPlan(validForm(), RawTravelPlan{})
	assert.Empty(t, plan.Summary.Title)
	assert.Nil(t, plan.Days)
	assert.Nil(t, plan.Preparation.CulturalTips)
	assert.Empty(t, plan.Flights)
}

func TestDeriveFlightOptionsOnlyFromFlights(t *testing.T) {
	raw := decodeSample(t)
	options := DeriveFlightOptions(raw.TransportationSummary.BetweenCities)

	require.Len(t, options, 2)
	first := options[0]
	require.Len(t, first.Flights, 1)
	assert.Equal(t, "Air France", first.Flights[0].Airline)
	assert.Equal(t, "2025-05-03 02:00", first.Flights[0].Departure)
	assert.Equal(t, 650.0, first.Price)
	assert.Equal(t, 590.0, options[1].Price)
	assert.Equal(t, models.FlightTypeDirect, first.Type)
	assert.Empty(t, first.Layovers)
	assert.Zero(t, first.TotalDuration)
	assert.Equal(t, models.CarbonEmissions{}, first.CarbonEmissions)
	assert.Empty(t, first.BookingToken)
	assert.Empty(t, first.BookingURL())
}

func TestItineraryClientGenerate(t *testing.T) {
	var got ItineraryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-travel-plan", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, sampleItineraryResponse)
	}))
	defer server.Close()

	client := NewItineraryClient(server.URL+"/", NewAirportResolver(nil), 5*time.Second, nil)
	result, err := client.Generate(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, "DEL", got.Source)
	assert.Equal(t, "CDG", got.Destination)
	assert.Equal(t, "2025-05-03", got.DepartureDate)
	assert.Equal(t, 2000.0, got.Budget)

	assert.Len(t, result.FlightOptions, 2)
	assert.Equal(t, result.FlightOptions, result.Plan.Flights)
	assert.Equal(t, "A Week in France", result.Plan.Summary.Title)
}

func TestItineraryClientFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"http error with json", http.StatusUnprocessableEntity, `{"detail": "bad dates"}`, `{"detail":"bad dates"}`},
		{"http error with text", http.StatusBadGateway, "upstream down\n", "upstream down"},
		{"non success status", http.StatusOK, `{"status": "error", "travel_plan": {}}`, "Failed to generate travel plan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			client := NewItineraryClient(server.URL, NewAirportResolver(nil), 5*time.Second, nil)
			_, err := client.Generate(context.Background(), validForm())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGenerationFailure))

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tc.detail, upErr.Detail)
			if tc.status != http.StatusOK {
				assert.Equal(t, tc.status, upErr.StatusCode)
			}
		})
	}
}

func TestItineraryClientHonorsCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := NewItineraryClient(server.URL, NewAirportResolver(nil), 5*time.Second, nil)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := client.Generate(ctx, validForm())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, ErrGenerationFailure))
}
