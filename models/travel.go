package models

// Interests is the fixed vocabulary offered by the planning form.
var Interests = []string{
	"Adventure", "Art & Culture", "Beach", "Food & Dining",
	"History", "Luxury", "Nature", "Nightlife", "Shopping",
	"Sports", "Wildlife", "Wellness & Spa",
}

func IsKnownInterest(tag string) bool {
	for _, i := range Interests {
		if i == tag {
			return true
		}
	}
	return false
}

// TravelFormData is what the planning form submits.
type TravelFormData struct {
	Source                string   `json:"source"`
	Destination           string   `json:"destination"`
	StartDate             *Date    `json:"startDate,omitempty"`
	EndDate               *Date    `json:"endDate,omitempty"`
	Budget                string   `json:"budget"`
	Travelers             int      `json:"travelers"`
	Interests             []string `json:"interests"`
	IncludeFlights        bool     `json:"includeFlights"`
	IncludeTransportation bool     `json:"includeTransportation"`
}

// TravelPlan is the internal view model built from the itinerary service response.
type TravelPlan struct {
	Destination     string          `json:"destination"`
	Summary         Summary         `json:"summary"`
	Preparation     Preparation     `json:"preparation"`
	Days            []Day           `json:"days"`
	Transportation  Transportation  `json:"transportation"`
	Budget          Budget          `json:"budget"`
	Recommendations Recommendations `json:"recommendations"`
	Flights         []FlightOption  `json:"flights"`
	Source          string          `json:"source"`
	StartDate       *Date           `json:"startDate,omitempty"`
}

type Summary struct {
	Title       string   `json:"title"`
	Dates       string   `json:"dates"`
	Travelers   string   `json:"travelers"`
	TotalBudget string   `json:"totalBudget"`
	Interests   []string `json:"interests"`
}

type Preparation struct {
	PackingList  []string          `json:"packingList"`
	CulturalTips map[string]string `json:"culturalTips"`
}

type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Notes       string `json:"notes"`
}

type Transportation struct {
	BetweenCities  []TransportSegment `json:"betweenCities"`
	LocalTransport []TransportSegment `json:"localTransport"`
}

// TransportSegment is one between-cities or local transport entry. Flight
// segments carry the offers the itinerary service found in Options.
type TransportSegment struct {
	Type    string            `json:"type"`
	Details string            `json:"details"`
	Cost    string            `json:"cost"`
	Options []TransportOption `json:"options,omitempty"`
}

type TransportOption struct {
	Airline   string `json:"airline"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Price     string `json:"price"`
}

type Budget struct {
	TotalEstimatedCost string `json:"totalEstimatedCost"`
	Note               string `json:"note"`
}

type Recommendations struct {
	Restaurants   []string `json:"restaurants"`
	BookingAdvice []string `json:"bookingAdvice"`
}
