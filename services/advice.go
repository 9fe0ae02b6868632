package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tripwise/models"
)

// AdviceApology is what callers show in place of a failed advice answer.
const AdviceApology = "I'm sorry, I couldn't process your request at the moment. Please try again."

// FlightSearcher finds one-way flight options between two airport codes.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, departureID, arrivalID string, date models.Date) (*models.FlightSearchResponse, error)
}

// AdviceClient asks the language model for free-form advice and for
// structured itineraries.
type AdviceClient struct {
	model    Generator
	resolver *AirportResolver
	flights  FlightSearcher
	logger   *zap.Logger
}

// NewAdviceClient wires the model. flights may be nil, in which case plans
// are never enriched with flight results.
func NewAdviceClient(model Generator, resolver *AirportResolver, flights FlightSearcher, logger *zap.Logger) *AdviceClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdviceClient{model: model, resolver: resolver, flights: flights, logger: logger}
}

// Advice answers a travel question. Every failure, including an empty
// question, matches ErrAdviceUnavailable.
func (c *AdviceClient) Advice(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: empty question", ErrAdviceUnavailable)
	}

	prompt := fmt.Sprintf(`As a travel expert, please provide helpful advice for the following question:
%s

Keep the response concise, informative, and focused on practical travel advice.`, question)

	answer, err := c.model.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Error("Error generating travel advice", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrAdviceUnavailable, err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: empty answer", ErrAdviceUnavailable)
	}
	return answer, nil
}

// PlanFromModel requests a structured itinerary and parses it. Model call
// failures are returned as is; parse failures carry the ParseModelPlan
// sentinels.
func (c *AdviceClient) PlanFromModel(ctx context.Context, form models.TravelFormData) (*models.AIPlan, error) {
	text, err := c.model.GenerateContent(ctx, BuildPlanPrompt(form, c.resolver))
	if err != nil {
		c.logger.Error("Error generating travel plan", zap.Error(err))
		return nil, err
	}

	plan, err := ParseModelPlan(text)
	if err != nil {
		return nil, err
	}

	plan.Source = form.Source
	plan.StartDate = form.StartDate
	if form.IncludeFlights && form.StartDate != nil {
		plan.Flights = c.searchFlights(ctx, form)
	}
	return plan, nil
}

// PlanFromModelOrFallback is PlanFromModel with unusable model output
// replaced by FallbackPlan. Model call failures still surface.
func (c *AdviceClient) PlanFromModelOrFallback(ctx context.Context, form models.TravelFormData) (*models.AIPlan, error) {
	plan, err := c.PlanFromModel(ctx, form)
	switch {
	case err == nil:
		return plan, nil
	case errors.Is(err, ErrNoJSONFound), errors.Is(err, ErrMalformedPlan), errors.Is(err, ErrInvalidPlanShape):
		c.logger.Warn("Error parsing model response, using fallback plan", zap.Error(err))
		return FallbackPlan(err), nil
	}
	return nil, err
}

// searchFlights is best-effort: any failure leaves the plan without flights.
func (c *AdviceClient) searchFlights(ctx context.Context, form models.TravelFormData) []models.FlightLeg {
	if c.flights == nil {
		return nil
	}
	from := c.resolver.Resolve(form.Source)
	to := c.resolver.Resolve(form.Destination)
	if !IsAirportCode(from) || !IsAirportCode(to) {
		c.logger.Warn("Skipping flight search, no airport code",
			zap.String("source", form.Source), zap.String("destination", form.Destination))
		return nil
	}

	resp, err := c.flights.SearchFlights(ctx, from, to, *form.StartDate)
	if err != nil {
		c.logger.Warn("Error fetching flights", zap.Error(err))
		return nil
	}

	legs := make([]models.FlightLeg, 0, len(resp.BestFlights))
	for _, option := range resp.BestFlights {
		if len(option.Flights) > 0 {
			legs = append(legs, option.Flights[0])
		}
	}
	return legs
}

// BuildPlanPrompt renders the itinerary request sent to the model, including
// the literal JSON layout the answer must follow.
func BuildPlanPrompt(form models.TravelFormData, resolver *AirportResolver) string {
	startStr, endStr := "Not specified", "Not specified"
	if form.StartDate != nil {
		startStr = form.StartDate.String()
	}
	if form.EndDate != nil {
		endStr = form.EndDate.String()
	}
	daysStr := "Not specified"
	if n := TripDays(form); n > 0 {
		daysStr = fmt.Sprint(n)
	}

	var b strings.Builder
	b.WriteString("Create a detailed travel itinerary with the following information:\n\n")
	fmt.Fprintf(&b, "- Traveling from: %s (%s)\n", form.Source, resolver.Resolve(form.Source))
	fmt.Fprintf(&b, "- Destination: %s (%s)\n", form.Destination, resolver.Resolve(form.Destination))
	fmt.Fprintf(&b, "- Start date: %s\n", startStr)
	fmt.Fprintf(&b, "- End date: %s\n", endStr)
	fmt.Fprintf(&b, "- Number of days: %s\n", daysStr)
	fmt.Fprintf(&b, "- Budget: %s\n", form.Budget)
	fmt.Fprintf(&b, "- Number of travelers: %d\n", form.Travelers)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(form.Interests, ", "))
	if form.IncludeTransportation {
		b.WriteString("- Include local transportation options and costs\n")
	}

	b.WriteString(`
Please generate a comprehensive travel plan with the following:
1. A brief summary of the destination
2. Detailed day-by-day itinerary including:
   - Morning, afternoon and evening activities
   - Recommended accommodations
   - Meal suggestions (breakfast, lunch, dinner)
   - Estimated costs for activities, accommodations, meals, and transportation
3. Local tips and cultural insights
4. Total estimated cost for the entire trip
`)
	if form.IncludeTransportation {
		b.WriteString("5. Local transportation details including public transport, ridesharing, and walking options\n")
	}

	b.WriteString(`
Format your response consistently as JSON that can be parsed. Use this exact format:

{
  "destination": "Destination Name",
  "summary": "Brief summary of the destination",
  "tips": ["Tip 1", "Tip 2", "Tip 3"],
  "days": [
    {
      "day": 1,
      "activities": {
        "morning": "Morning activity description",
        "afternoon": "Afternoon activity description",
        "evening": "Evening activity description"
      },
      "accommodation": "Accommodation details",
      "meals": {
        "breakfast": "Breakfast suggestion",
        "lunch": "Lunch suggestion",
        "dinner": "Dinner suggestion"
      },
      "estimatedCosts": {
        "activities": 100,
        "accommodation": 150,
        "meals": 80,
        "transportation": 30
      }
    }
  ],
  "totalCost": 2500`)
	if form.IncludeTransportation {
		b.WriteString(`,
  "transportationDetails": {
    "publicTransport": ["Option 1", "Option 2"],
    "ridesharing": ["Option 1", "Option 2"],
    "walking": ["Option 1", "Option 2"],
    "costs": {
      "daily": 20,
      "total": 100
    }
  }`)
	}
	b.WriteString("\n}\n")
	return b.String()
}
