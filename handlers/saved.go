package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/models"
	"tripwise/utils"
)

type savePlanRequest struct {
	Plan models.TravelPlan `json:"plan"`
	Meta map[string]string `json:"meta"`
}

func (h *Handler) ListSavedPlans(c *gin.Context) {
	plans, err := h.Store.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *Handler) SavePlan(c *gin.Context) {
	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	saved, err := h.Store.Append(c.Request.Context(), models.SavedPlan{Plan: req.Plan, Meta: req.Meta})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Logger.Info("Plan saved", zap.String("id", saved.ID), zap.String("destination", saved.Plan.Destination))
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) DeleteSavedPlan(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
