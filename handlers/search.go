package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/services"
)

// flightSearchError is the body the flight-search function answers with on
// any failure, including bad input.
type flightSearchError struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// SearchFlights proxies a one-way search to SerpAPI and returns its JSON
// untouched.
func (h *Handler) SearchFlights(c *gin.Context) {
	if h.Flights == nil {
		c.JSON(http.StatusServiceUnavailable, flightSearchError{Error: "Flight search not configured", Status: "error"})
		return
	}

	var params services.FlightSearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.flightError(c, errors.New("Invalid request body"))
		return
	}

	raw, err := h.Flights.Proxy(c.Request.Context(), params)
	if err != nil {
		h.flightError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) flightError(c *gin.Context, err error) {
	message := err.Error()
	var vErr *services.ValidationError
	var upErr *services.UpstreamError
	switch {
	case errors.As(err, &vErr):
		message = vErr.Message
	case errors.As(err, &upErr) && upErr.Detail != "":
		message = upErr.Detail
	}
	h.Logger.Error("Flight search error", zap.String("error", message))
	c.JSON(http.StatusInternalServerError, flightSearchError{Error: message, Status: "error"})
}
