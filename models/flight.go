package models

import "net/url"

const bookingBaseURL = "https://google.com/travel/flights/booking"

// Flight-option types. Derived options are assumed direct unless the
// upstream says otherwise.
const (
	FlightTypeDirect    = "direct"
	FlightTypeOneStop   = "one_stop"
	FlightTypeMultiStop = "multi_stop"
)

type Airport struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// FlightLeg is a single flight inside an option. Options from the flight
// search carry airport records; options derived from an itinerary only carry
// the flat airline/departure/arrival/price fields.
type FlightLeg struct {
	Airline          string   `json:"airline"`
	DepartureAirport *Airport `json:"departure_airport,omitempty"`
	ArrivalAirport   *Airport `json:"arrival_airport,omitempty"`
	Duration         int      `json:"duration,omitempty"`
	Airplane         string   `json:"airplane,omitempty"`
	AirlineLogo      string   `json:"airline_logo,omitempty"`
	TravelClass      string   `json:"travel_class,omitempty"`
	FlightNumber     string   `json:"flight_number,omitempty"`
	Departure        string   `json:"departure,omitempty"`
	Arrival          string   `json:"arrival,omitempty"`
	Price            string   `json:"price,omitempty"`
}

type Layover struct {
	Duration int    `json:"duration"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

type CarbonEmissions struct {
	ThisFlight          int `json:"this_flight"`
	TypicalForThisRoute int `json:"typical_for_this_route"`
	DifferencePercent   int `json:"difference_percent"`
}

type FlightOption struct {
	Flights         []FlightLeg     `json:"flights"`
	Layovers        []Layover       `json:"layovers"`
	TotalDuration   int             `json:"total_duration"`
	CarbonEmissions CarbonEmissions `json:"carbon_emissions"`
	Price           float64         `json:"price"`
	Type            string          `json:"type"`
	AirlineLogo     string          `json:"airline_logo"`
	BookingToken    string          `json:"booking_token"`
}

// BookingURL returns the deep link for the option, or "" without a token.
func (o FlightOption) BookingURL() string {
	if o.BookingToken == "" {
		return ""
	}
	return bookingBaseURL + "?token=" + url.QueryEscape(o.BookingToken)
}

// FlightSearchResponse is the subset of the flight-search payload we read.
type FlightSearchResponse struct {
	BestFlights  []FlightOption `json:"best_flights"`
	OtherFlights []FlightOption `json:"other_flights,omitempty"`
}
