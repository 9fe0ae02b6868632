package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripwise/database"
	"tripwise/models"
	"tripwise/services"
	"tripwise/utils"
)

// SessionHeader identifies the client session whose previous generation a
// new request supersedes.
const SessionHeader = "X-Session-ID"

type PlanGenerator interface {
	Generate(ctx context.Context, form models.TravelFormData) (*services.GenerateResult, error)
}

type Advisor interface {
	Advice(ctx context.Context, question string) (string, error)
	PlanFromModelOrFallback(ctx context.Context, form models.TravelFormData) (*models.AIPlan, error)
}

type PlanSender interface {
	Send(ctx context.Context, plan models.TravelPlan, recipient string) error
}

type FlightProxy interface {
	Proxy(ctx context.Context, params services.FlightSearchParams) (json.RawMessage, error)
}

// Deps are the collaborators the handlers call into. All are required
// except Advisor and Flights, whose routes answer 503 when unset.
type Deps struct {
	Itinerary    PlanGenerator
	Advisor      Advisor
	Email        PlanSender
	Flights      FlightProxy
	Store        database.PlanStore
	Sessions     *services.Sessions
	Logger       *zap.Logger
	StoreDriver  string
	ModelBackend string
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Sessions == nil {
		d.Sessions = services.NewSessions()
	}
	return &Handler{Deps: d}
}

// Register mounts the JSON API under /api behind apiMiddleware, with
// generateMiddleware added on the endpoints that call a model or the
// itinerary service. The flight-search function lives under /functions with
// its own fixed CORS headers.
func (h *Handler) Register(r *gin.Engine, apiMiddleware, generateMiddleware []gin.HandlerFunc, flightMiddleware ...gin.HandlerFunc) {
	api := r.Group("/api", apiMiddleware...)
	{
		api.GET("/health", h.Health)

		gen := api.Group("", generateMiddleware...)
		gen.POST("/plans/generate", h.GeneratePlan)
		gen.POST("/plans/ai", h.GenerateAIPlan)
		gen.POST("/advice", h.Advice)

		api.POST("/sessions/:id/reset", h.ResetSession)
		api.POST("/plans/pdf", h.PlanPDF)
		api.POST("/plans/email", h.EmailPlan)

		api.GET("/saved-plans", h.ListSavedPlans)
		api.POST("/saved-plans", h.SavePlan)
		api.DELETE("/saved-plans/:id", h.DeleteSavedPlan)
		api.GET("/saved-plans/:id/summary.pdf", h.SavedPlanSummaryPDF)
	}

	fn := r.Group("/functions", flightMiddleware...)
	fn.POST("/search-flights", h.SearchFlights)
	fn.OPTIONS("/search-flights", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func (h *Handler) Health(c *gin.Context) {
	storeStatus := "ok"
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		storeStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "Tripwise API",
		"store":   gin.H{"driver": h.StoreDriver, "status": storeStatus},
		"model":   h.ModelBackend,
	})
}

// respondError maps service errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var upErr *services.UpstreamError

	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Message, "")
	case errors.Is(err, database.ErrPlanNotFound):
		utils.JSONError(c, http.StatusNotFound, "Saved plan not found", "")
	case errors.Is(err, context.Canceled):
		h.stale(c)
	case errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusGatewayTimeout, "The request timed out", err.Error())
	case errors.As(err, &upErr):
		details := upErr.Detail
		if details == "" {
			details = err.Error()
		}
		utils.JSONError(c, http.StatusBadGateway, upstreamMessage(upErr.Kind), details)
	default:
		h.Logger.Error("Unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func upstreamMessage(kind error) string {
	switch kind {
	case services.ErrGenerationFailure:
		return "Failed to generate travel plan"
	case services.ErrEmailDeliveryFailure:
		return "Failed to send travel plan"
	case services.ErrFlightSearch:
		return "Flight search failed"
	}
	return "Upstream service error"
}

// stale answers a generation that a newer request or a reset superseded.
func (h *Handler) stale(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{
		"status":  "stale",
		"message": "This request was superseded by a newer one",
	})
}
