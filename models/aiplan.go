package models

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AIPlan is the itinerary shape the language model is asked to produce.
type AIPlan struct {
	Destination           string                 `json:"destination"`
	Summary               string                 `json:"summary"`
	Tips                  []string               `json:"tips"`
	Days                  []AIPlanDay            `json:"days"`
	TotalCost             Amount                 `json:"totalCost"`
	TransportationDetails *TransportationDetails `json:"transportationDetails,omitempty"`
	Flights               []FlightLeg            `json:"flights,omitempty"`
	Source                string                 `json:"source,omitempty"`
	StartDate             *Date                  `json:"startDate,omitempty"`
}

// AIPlanDay uses pointers for the nested blocks so a missing block can be
// told apart from an empty one.
type AIPlanDay struct {
	Day            DayNumber       `json:"day"`
	Activities     *DayActivities  `json:"activities"`
	Accommodation  string          `json:"accommodation"`
	Meals          *DayMeals       `json:"meals"`
	EstimatedCosts *EstimatedCosts `json:"estimatedCosts"`
}

type DayActivities struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type DayMeals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

type EstimatedCosts struct {
	Activities     Amount `json:"activities"`
	Accommodation  Amount `json:"accommodation"`
	Meals          Amount `json:"meals"`
	Transportation Amount `json:"transportation"`
}

type TransportationDetails struct {
	PublicTransport []string `json:"publicTransport"`
	Ridesharing     []string `json:"ridesharing"`
	Walking         []string `json:"walking"`
	Costs           struct {
		Daily Amount `json:"daily"`
		Total Amount `json:"total"`
	} `json:"costs"`
}

var leadingNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Amount is a cost as the model writes it: a number, a quoted number or a
// formatted string like "$2,500". Ranges such as "2000-2500" keep the lower
// bound. Anything without a number decodes as 0. It always encodes as a
// plain number.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(lenientNumber(data))
	return nil
}

// DayNumber is a day index that may arrive as 1, 1.0, "1" or "Day 1".
type DayNumber int

func (d *DayNumber) UnmarshalJSON(data []byte) error {
	*d = DayNumber(math.Trunc(lenientNumber(data)))
	return nil
}

func lenientNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		return firstNumber(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

func firstNumber(s string) float64 {
	m := leadingNumber.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
