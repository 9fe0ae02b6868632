package services

import (
	"errors"
	"fmt"
)

var (
	ErrInputValidation      = errors.New("input validation failed")
	ErrGenerationFailure    = errors.New("travel plan generation failed")
	ErrAdviceUnavailable    = errors.New("travel advice unavailable")
	ErrNoJSONFound          = errors.New("no valid JSON object found in response")
	ErrMalformedPlan        = errors.New("malformed plan JSON")
	ErrInvalidPlanShape     = errors.New("invalid plan structure")
	ErrEmailDeliveryFailure = errors.New("failed to send travel plan")
	ErrFlightSearch         = errors.New("flight search failed")
)

// ValidationError carries the message shown to the user when the planning
// form is incomplete.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInputValidation
}

// UpstreamError describes a failed call to an external service. Kind is one
// of the sentinel errors above so callers can match with errors.Is.
type UpstreamError struct {
	Kind       error
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%v: status %d - %s", e.Kind, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%v: status %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return e.Kind.Error()
}

func (e *UpstreamError) Is(target error) bool {
	return target == e.Kind
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
