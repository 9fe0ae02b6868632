package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/models"
)

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

type fakeFlights struct {
	resp  *models.FlightSearchResponse
	err   error
	calls []string
}

func (f *fakeFlights) SearchFlights(_ context.Context, from, to string, date models.Date) (*models.FlightSearchResponse, error) {
	f.calls = append(f.calls, from+"-"+to+"@"+date.String())
	return f.resp, f.err
}

func TestAdvice(t *testing.T) {
	gen := &fakeGenerator{answer: "Pack light."}
	client := NewAdviceClient(gen, NewAirportResolver(nil), nil, nil)

	answer, err := client.Advice(context.Background(), "  What should I pack for Iceland?  ")
	require.NoError(t, err)
	assert.Equal(t, "Pack light.", answer)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "As a travel expert")
	assert.Contains(t, gen.prompts[0], "What should I pack for Iceland?")
}

func TestAdviceFailuresAreUnavailable(t *testing.T) {
	cases := []struct {
		name     string
		gen      *fakeGenerator
		question string
	}{
		{"model error", &fakeGenerator{err: errors.New("quota exceeded")}, "Best time to visit Kyoto?"},
		{"empty answer", &fakeGenerator{answer: "  "}, "Best time to visit Kyoto?"},
		{"empty question", &fakeGenerator{answer: "unused"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewAdviceClient(tc.gen, NewAirportResolver(nil), nil, nil)
			_, err := client.Advice(context.Background(), tc.question)
			assert.True(t, errors.Is(err, ErrAdviceUnavailable))
		})
	}
}

func TestBuildPlanPrompt(t *testing.T) {
	form := validForm()
	prompt := BuildPlanPrompt(form, NewAirportResolver(nil))

	assert.Contains(t, prompt, "- Traveling from: India (DEL)")
	assert.Contains(t, prompt, "- Destination: France (CDG)")
	assert.Contains(t, prompt, "- Start date: 2025-05-03")
	assert.Contains(t, prompt, "- Number of days: 7")
	assert.Contains(t, prompt, "- Interests: Food & Dining")
	assert.Contains(t, prompt, `"estimatedCosts"`)
	assert.NotContains(t, prompt, "transportationDetails")

	form.IncludeTransportation = true
	form.StartDate = nil
	prompt = BuildPlanPrompt(form, NewAirportResolver(nil))
	assert.Contains(t, prompt, "- Start date: Not specified")
	assert.Contains(t, prompt, "- Number of days: Not specified")
	assert.Contains(t, prompt, `"transportationDetails"`)
	assert.Contains(t, prompt, "5. Local transportation details")
}

func TestPlanFromModelAddsFlights(t *testing.T) {
	gen := &fakeGenerator{answer: proseWrappedPlan}
	flights := &fakeFlights{resp: &models.FlightSearchResponse{BestFlights: []models.FlightOption{
		{Flights: []models.FlightLeg{{Airline: "IndiGo", FlightNumber: "6E 2057"}, {Airline: "IndiGo"}}},
		{Flights: nil},
	}}}
	client := NewAdviceClient(gen, NewAirportResolver(nil), flights, nil)

	form := validForm()
	form.IncludeFlights = true
	plan, err := client.PlanFromModel(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "Paris", plan.Destination)
	assert.Equal(t, "India", plan.Source)
	assert.Equal(t, form.StartDate, plan.StartDate)
	assert.Equal(t, []string{"DEL-CDG@2025-05-03"}, flights.calls)
	require.Len(t, plan.Flights, 1)
	assert.Equal(t, "6E 2057", plan.Flights[0].FlightNumber)
}

func TestPlanFromModelFlightSearchIsBestEffort(t *testing.T) {
	gen := &fakeGenerator{answer: proseWrappedPlan}
	flights := &fakeFlights{err: errors.New("serpapi down")}
	client := NewAdviceClient(gen, NewAirportResolver(nil), flights, nil)

	form := validForm()
	form.IncludeFlights = true
	plan, err := client.PlanFromModel(context.Background(), form)
	require.NoError(t, err)
	assert.Empty(t, plan.Flights)

	form.Destination = "Atlantis"
	flights.calls = nil
	_, err = client.PlanFromModel(context.Background(), form)
	require.NoError(t, err)
	assert.Empty(t, flights.calls)
}

func TestPlanFromModelOrFallback(t *testing.T) {
	client := NewAdviceClient(&fakeGenerator{answer: "No itinerary today."}, NewAirportResolver(nil), nil, nil)

	_, err := client.PlanFromModel(context.Background(), validForm())
	assert.True(t, errors.Is(err, ErrNoJSONFound))

	plan, err := client.PlanFromModelOrFallback(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "Error", plan.Destination)
	assert.Len(t, plan.Days, 1)
}

func TestPlanFromModelOrFallbackKeepsModelErrors(t *testing.T) {
	boom := errors.New("deadline exceeded")
	client := NewAdviceClient(&fakeGenerator{err: boom}, NewAirportResolver(nil), nil, nil)

	plan, err := client.PlanFromModelOrFallback(context.Background(), validForm())
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, boom)
}
