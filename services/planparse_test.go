package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const proseWrappedPlan = "Sure! Here is your plan:\n" +
	"{“destination”: “Paris”, “summary”: “City of light”, “tips”: [“Walk a lot”,],\n" +
	" \"days\": [{\"day\": 1, \"activities\": {\"morning\": \"Louvre\", \"afternoon\": \"Seine\", \"evening\": \"Eiffel\"},\n" +
	"  \"accommodation\": \"Hotel\", \"meals\": {\"breakfast\": \"Cafe\", \"lunch\": \"Bistro\", \"dinner\": \"Brasserie\"},\n" +
	"  \"estimatedCosts\": {\"activities\": 40, \"accommodation\": 150, \"meals\": 60, \"transportation\": 10},},\n" +
	" ], \"totalCost\": 260,}\n" +
	"Enjoy your trip!"

func TestParseModelPlanCleansProse(t *testing.T) {
	plan, err := ParseModelPlan(proseWrappedPlan)
	require.NoError(t, err)

	assert.Equal(t, "Paris", plan.Destination)
	assert.Equal(t, "City of light", plan.Summary)
	assert.Equal(t, []string{"Walk a lot"}, plan.Tips)
	require.Len(t, plan.Days, 1)
	assert.EqualValues(t, 1, plan.Days[0].Day)
	assert.Equal(t, "Louvre", plan.Days[0].Activities.Morning)
	assert.EqualValues(t, 150, plan.Days[0].EstimatedCosts.Accommodation)
	assert.EqualValues(t, 260, plan.TotalCost)
}

func TestParseModelPlanEscapedNewlines(t *testing.T) {
	text := `{"destination": "Rome", "summary": "Line one\nLine two", "days": [{"day": 1, "activities": {}, "meals": {}, "estimatedCosts": {}}]}`
	plan, err := ParseModelPlan(text)
	require.NoError(t, err)
	assert.Equal(t, "Line one Line two", plan.Summary)
}

func TestParseModelPlanRepairsMalformedJSON(t *testing.T) {
	text := `{destination: 'Lisbon', summary: 'Hills and tiles', days: [{day: 1, activities: {morning: 'Tram 28'}, meals: {}, estimatedCosts: {}}]}`
	plan, err := ParseModelPlan(text)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", plan.Destination)
	assert.Equal(t, "Tram 28", plan.Days[0].Activities.Morning)
}

func TestParseModelPlanLenientNumbers(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		day       int
		activity  float64
		totalCost float64
	}{
		{
			name:      "quoted costs",
			text:      `{"destination": "Kyoto", "summary": "Temples", "days": [{"day": 1, "activities": {"morning": "Fushimi Inari"}, "meals": {}, "estimatedCosts": {"activities": "100", "accommodation": "150.50", "meals": "60", "transportation": "20"}}], "totalCost": "330"}`,
			day:       1,
			activity:  100,
			totalCost: 330,
		},
		{
			name:      "string day",
			text:      `{"destination": "Kyoto", "summary": "Temples", "days": [{"day": "Day 2", "activities": {}, "meals": {}, "estimatedCosts": {"activities": 40}}], "totalCost": 40}`,
			day:       2,
			activity:  40,
			totalCost: 40,
		},
		{
			name:      "formatted total",
			text:      `{"destination": "Kyoto", "summary": "Temples", "days": [{"day": "1", "activities": {}, "meals": {}, "estimatedCosts": {"activities": "$1,200"}}], "totalCost": "$2,500"}`,
			day:       1,
			activity:  1200,
			totalCost: 2500,
		},
		{
			name:      "range total keeps lower bound",
			text:      `{"destination": "Kyoto", "summary": "Temples", "days": [{"day": 1.0, "activities": {}, "meals": {}, "estimatedCosts": {"activities": null}}], "totalCost": "2000-2500 USD"}`,
			day:       1,
			activity:  0,
			totalCost: 2000,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := ParseModelPlan(tc.text)
			require.NoError(t, err)
			require.Len(t, plan.Days, 1)
			assert.EqualValues(t, tc.day, plan.Days[0].Day)
			assert.EqualValues(t, tc.activity, plan.Days[0].EstimatedCosts.Activities)
			assert.EqualValues(t, tc.totalCost, plan.TotalCost)
		})
	}
}

func TestParseModelPlanErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"no braces", "I cannot help with that.", ErrNoJSONFound},
		{"reversed braces", "} nothing {", ErrNoJSONFound},
		{"missing destination", `{"summary": "x", "days": [{"day": 1, "activities": {}, "meals": {}, "estimatedCosts": {}}]}`, ErrInvalidPlanShape},
		{"empty days", `{"destination": "Oslo", "summary": "x", "days": []}`, ErrInvalidPlanShape},
		{"day without meals", `{"destination": "Oslo", "summary": "x", "days": [{"day": 1, "activities": {}, "estimatedCosts": {}}]}`, ErrInvalidPlanShape},
		{"day zero", `{"destination": "Oslo", "summary": "x", "days": [{"day": 0, "activities": {}, "meals": {}, "estimatedCosts": {}}]}`, ErrInvalidPlanShape},
		{"numeric destination", `{"destination": 12, "summary": "x", "days": [{"day": 1, "activities": {}, "meals": {}, "estimatedCosts": {}}]}`, ErrInvalidPlanShape},
		{"day without number", `{"destination": "Oslo", "summary": "x", "days": [{"day": "first", "activities": {}, "meals": {}, "estimatedCosts": {}}]}`, ErrInvalidPlanShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := ParseModelPlan(tc.text)
			assert.Nil(t, plan)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestFallbackPlan(t *testing.T) {
	plan := FallbackPlan(ErrNoJSONFound)

	assert.Equal(t, "Error", plan.Destination)
	assert.Contains(t, plan.Summary, "no valid JSON object found in response")
	require.Len(t, plan.Days, 1)
	day := plan.Days[0]
	assert.EqualValues(t, 1, day.Day)
	assert.Equal(t, "Error loading activities", day.Activities.Evening)
	assert.Equal(t, "Error loading meals", day.Meals.Lunch)
	assert.Zero(t, *day.EstimatedCosts)
	assert.Zero(t, plan.TotalCost)
	assert.NoError(t, validatePlanShape(plan))
}
