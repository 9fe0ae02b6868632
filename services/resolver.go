package services

import (
	"strings"

	"go.uber.org/zap"
)

// AirportResolver turns a free-text country or territory name into the
// airport code the itinerary service expects.
type AirportResolver struct {
	logger *zap.Logger
	exact  map[string]string
	folded map[string]string
}

func NewAirportResolver(logger *zap.Logger) *AirportResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &AirportResolver{
		logger: logger,
		exact:  make(map[string]string, len(countryAirports)),
		folded: make(map[string]string, len(countryAirports)),
	}
	for _, e := range countryAirports {
		if _, dup := r.exact[e.name]; !dup {
			r.exact[e.name] = e.code
		}
		key := strings.ToLower(e.name)
		if _, dup := r.folded[key]; !dup {
			r.folded[key] = e.code
		}
	}
	return r
}

// Resolve tries an exact match first, then a case-insensitive match on the
// trimmed input. Unknown names are passed through unchanged.
func (r *AirportResolver) Resolve(name string) string {
	if code, ok := r.exact[name]; ok {
		return code
	}
	if code, ok := r.folded[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	r.logger.Warn("No airport code found for location", zap.String("location", name))
	return name
}

// Known reports whether name resolves through the table.
func (r *AirportResolver) Known(name string) bool {
	if _, ok := r.exact[name]; ok {
		return true
	}
	_, ok := r.folded[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
