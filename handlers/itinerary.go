package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/models"
	"tripwise/services"
	"tripwise/utils"
)

// bindForm decodes and validates the planning form. It has already written
// the response when ok is false.
func (h *Handler) bindForm(c *gin.Context) (form models.TravelFormData, ok bool) {
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return form, false
	}
	if err := services.ValidateForm(form); err != nil {
		h.respondError(c, err)
		return form, false
	}
	return form, true
}

// GeneratePlan runs the itinerary service for a validated form.
func (h *Handler) GeneratePlan(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	ctx, done := h.Sessions.Begin(c.Request.Context(), c.GetHeader(SessionHeader))
	result, err := h.Itinerary.Generate(ctx, form)
	if !done() {
		h.Logger.Info("Discarding superseded travel plan", zap.String("session", c.GetHeader(SessionHeader)))
		h.stale(c)
		return
	}
	if err != nil {
		h.Logger.Error("Travel plan generation failed", zap.Error(err))
		h.respondError(c, err)
		return
	}

	h.Logger.Info("Travel plan generated",
		zap.String("destination", form.Destination),
		zap.Int("days", len(result.Plan.Days)),
		zap.Int("flight_options", len(result.FlightOptions)))
	c.JSON(http.StatusOK, result)
}

// GenerateAIPlan asks the language model for a structured itinerary.
// Unusable model output comes back as the placeholder plan.
func (h *Handler) GenerateAIPlan(c *gin.Context) {
	if h.Advisor == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Language model not configured", "")
		return
	}
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	ctx, done := h.Sessions.Begin(c.Request.Context(), c.GetHeader(SessionHeader))
	plan, err := h.Advisor.PlanFromModelOrFallback(ctx, form)
	if !done() {
		h.stale(c)
		return
	}
	if err != nil {
		h.Logger.Error("Model travel plan failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to generate travel plan", err.Error())
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ResetSession cancels whatever generation the session has in flight.
func (h *Handler) ResetSession(c *gin.Context) {
	canceled := h.Sessions.Reset(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"reset": true, "canceled": canceled})
}

type adviceRequest struct {
	Question string `json:"question"`
}

// Advice answers a free-form travel question. Failures are masked with an
// apology so the chat never shows an error.
func (h *Handler) Advice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if h.Advisor == nil {
		c.JSON(http.StatusOK, gin.H{"answer": services.AdviceApology, "fallback": true})
		return
	}

	answer, err := h.Advisor.Advice(c.Request.Context(), req.Question)
	if err != nil {
		h.Logger.Warn("Travel advice unavailable", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"answer": services.AdviceApology, "fallback": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer, "fallback": false})
}
