package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/models"
	"tripwise/services"
	"tripwise/utils"
)

// PlanPDF renders the posted plan and returns it as an attachment.
func (h *Handler) PlanPDF(c *gin.Context) {
	var plan models.TravelPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	pdfBytes, err := services.RenderPlanPDF(plan)
	if err != nil {
		h.Logger.Error("PDF generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate PDF", err.Error())
		return
	}
	h.sendPDF(c, services.PDFFilename(plan), pdfBytes)
}

// SavedPlanSummaryPDF renders the one-page summary of a saved plan.
func (h *Handler) SavedPlanSummaryPDF(c *gin.Context) {
	saved, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	pdfBytes, err := services.RenderSummaryPDF(saved)
	if err != nil {
		h.Logger.Error("Summary PDF generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate PDF", err.Error())
		return
	}
	h.sendPDF(c, services.SummaryPDFFilename(saved.Plan), pdfBytes)
}

func (h *Handler) sendPDF(c *gin.Context, filename string, data []byte) {
	h.Logger.Info("PDF generated", zap.String("filename", filename), zap.Int("bytes", len(data)))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}

// EmailPlan forwards the posted plan to the email-delivery endpoint.
func (h *Handler) EmailPlan(c *gin.Context) {
	var plan models.TravelPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Email.Send(c.Request.Context(), plan, c.Query("recipient_email")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "message": "Travel plan sent to your email!"})
}
