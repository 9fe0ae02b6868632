package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"tripwise/models"
)

var (
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)

	// Curly double quotes become straight ones and literal "\n" escapes
	// become spaces before decoding.
	modelTextCleaner = strings.NewReplacer("“", `"`, "”", `"`, `\n`, " ")
)

// ParseModelPlan extracts the itinerary JSON from free-form model output.
// The span runs from the first '{' to the last '}'. Errors match
// ErrNoJSONFound, ErrMalformedPlan (the span is not JSON even after repair)
// or ErrInvalidPlanShape.
func ParseModelPlan(text string) (*models.AIPlan, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, ErrNoJSONFound
	}

	candidate := modelTextCleaner.Replace(text[start : end+1])
	candidate = trailingComma.ReplaceAllString(candidate, "$1")

	if !json.Valid([]byte(candidate)) {
		repaired, err := jsonrepair.JSONRepair(candidate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
		}
		if !json.Valid([]byte(repaired)) {
			return nil, fmt.Errorf("%w: repaired text is still not valid JSON", ErrMalformedPlan)
		}
		candidate = repaired
	}

	// Numbers are decoded leniently, so a failure here is a field holding
	// the wrong kind of value, such as a numeric destination.
	var plan models.AIPlan
	if err := json.Unmarshal([]byte(candidate), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlanShape, err)
	}

	if err := validatePlanShape(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func validatePlanShape(plan *models.AIPlan) error {
	switch {
	case strings.TrimSpace(plan.Destination) == "":
		return fmt.Errorf("%w: invalid or missing destination", ErrInvalidPlanShape)
	case strings.TrimSpace(plan.Summary) == "":
		return fmt.Errorf("%w: invalid or missing summary", ErrInvalidPlanShape)
	case len(plan.Days) == 0:
		return fmt.Errorf("%w: invalid or empty days array", ErrInvalidPlanShape)
	}
	for i, day := range plan.Days {
		if day.Day == 0 || day.Activities == nil || day.Meals == nil || day.EstimatedCosts == nil {
			return fmt.Errorf("%w: invalid data structure in day %d", ErrInvalidPlanShape, i+1)
		}
	}
	return nil
}

// FallbackPlan is the placeholder shown when a model answer cannot be used.
// Its summary carries the reason.
func FallbackPlan(cause error) *models.AIPlan {
	reason := "unknown error"
	if cause != nil {
		reason = cause.Error()
	}
	const (
		activity = "Error loading activities"
		meal     = "Error loading meals"
	)
	return &models.AIPlan{
		Destination: "Error",
		Summary:     fmt.Sprintf("There was an error processing your travel plan: %s. Please try again.", reason),
		Tips:        []string{"Please check your input and try again."},
		Days: []models.AIPlanDay{{
			Day:            1,
			Activities:     &models.DayActivities{Morning: activity, Afternoon: activity, Evening: activity},
			Accommodation:  "Error loading accommodation",
			Meals:          &models.DayMeals{Breakfast: meal, Lunch: meal, Dinner: meal},
			EstimatedCosts: &models.EstimatedCosts{},
		}},
		TotalCost: 0,
	}
}
