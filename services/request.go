package services

import (
	"strconv"
	"strings"

	"tripwise/models"
)

// HotelPreferences is attached to every itinerary request. The planning form
// does not expose these yet.
type HotelPreferences struct {
	MaxPrice  float64  `json:"max_price"`
	MinRating float64  `json:"min_rating"`
	Amenities []string `json:"amenities"`
}

var defaultHotelPreferences = HotelPreferences{
	MaxPrice:  300,
	MinRating: 4,
	Amenities: []string{"pool", "wifi", "breakfast"},
}

// ItineraryRequest is the body of POST /generate-travel-plan.
type ItineraryRequest struct {
	Source           string           `json:"source"`
	Destination      string           `json:"destination"`
	DepartureDate    string           `json:"departure_date,omitempty"`
	ReturnDate       string           `json:"return_date,omitempty"`
	Budget           float64          `json:"budget"`
	Travelers        int              `json:"travelers"`
	Interests        []string         `json:"interests"`
	HotelPreferences HotelPreferences `json:"hotel_preferences"`
}

// ValidateForm runs the checks that must pass before any upstream call is
// made. The returned *ValidationError message is meant for the end user.
func ValidateForm(form models.TravelFormData) error {
	if strings.TrimSpace(form.Source) == "" || strings.TrimSpace(form.Destination) == "" {
		return &ValidationError{Message: "Please enter both source and destination."}
	}
	if len(form.Interests) == 0 {
		return &ValidationError{Message: "Please select at least one interest."}
	}
	for _, interest := range form.Interests {
		if !models.IsKnownInterest(interest) {
			return &ValidationError{Message: "Unknown interest: " + interest}
		}
	}
	if form.StartDate == nil || form.EndDate == nil {
		return &ValidationError{Message: "Please select both departure and return dates."}
	}
	if form.EndDate.Before(form.StartDate.Time) {
		return &ValidationError{Message: "Return date must not be before departure date."}
	}
	if strings.TrimSpace(form.Budget) == "" {
		return &ValidationError{Message: "Please enter your budget."}
	}
	if b, err := strconv.ParseFloat(strings.TrimSpace(form.Budget), 64); err != nil || b < 0 {
		return &ValidationError{Message: "Please enter a valid budget."}
	}
	return nil
}

// BuildItineraryRequest converts form input into the wire payload. It does
// not validate; see ValidateForm.
func BuildItineraryRequest(form models.TravelFormData, resolver *AirportResolver) ItineraryRequest {
	req := ItineraryRequest{
		Source:           resolver.Resolve(form.Source),
		Destination:      resolver.Resolve(form.Destination),
		Budget:           coerceBudget(form.Budget),
		Travelers:        form.Travelers,
		Interests:        form.Interests,
		HotelPreferences: defaultHotelPreferences,
	}
	if form.StartDate != nil {
		req.DepartureDate = form.StartDate.String()
	}
	if form.EndDate != nil {
		req.ReturnDate = form.EndDate.String()
	}
	if req.Travelers < 1 {
		req.Travelers = 1
	}
	if req.Interests == nil {
		req.Interests = []string{}
	}
	return req
}

// coerceBudget mirrors a plain numeric conversion: blank or unparseable
// input becomes 0.
func coerceBudget(budget string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(budget), 64)
	if err != nil {
		return 0
	}
	return v
}

// TripDays is the inclusive-exclusive day count between the form dates, or
// 0 when either date is missing.
func TripDays(form models.TravelFormData) int {
	if form.StartDate == nil || form.EndDate == nil {
		return 0
	}
	return int(form.EndDate.Sub(form.StartDate.Time).Hours() / 24)
}
