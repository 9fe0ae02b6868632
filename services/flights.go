package services

import "tripwise/models"

// transportTypeFlight marks between-cities segments that carry flight offers.
const transportTypeFlight = "Flight"

// DeriveFlightOptions flattens the offers of every "Flight" segment into
// FlightOption values. Fields the itinerary service does not provide
// (duration, emissions, logo, booking token) are left zero.
//
// This is the only place flight options are derived from an itinerary; the
// plan and the API response share its result.
func DeriveFlightOptions(betweenCities []RawTransport) []models.FlightOption {
	options := []models.FlightOption{}
	for _, segment := range betweenCities {
		if segment.Type != transportTypeFlight {
			continue
		}
		for _, o := range segment.Options {
			price := o.Price.Float()
			if price < 0 {
				price = 0
			}
			options = append(options, models.FlightOption{
				Flights: []models.FlightLeg{{
					Airline:   o.Airline,
					Departure: o.Departure,
					Arrival:   o.Arrival,
					Price:     o.Price.String(),
				}},
				Layovers: []models.Layover{},
				Price:    price,
				Type:     models.FlightTypeDirect,
			})
		}
	}
	return options
}
