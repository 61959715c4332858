package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/llm"
	"github.com/blaisecz/sleep-sync/internal/service"
	"github.com/blaisecz/sleep-sync/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InsightsHandler handles the LLM insights endpoint.
type InsightsHandler struct {
	service service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(service service.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Generate handles GET /v1/users/{userId}/insights
// @Summary Generate sleep insights
// @Description Produce an LLM-generated narrative over the user's trend summaries and goal progress. Unavailable when no OpenAI API key is configured.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.InsightsResponse "Insights with backing trend data"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 503 {object} problem.Problem "LLM not configured"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/insights [get]
func (h *InsightsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	response, err := h.service.Generate(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			problem.ServiceUnavailable("Insights are unavailable: LLM not configured").Write(w)
			return
		}
		problem.InternalError("Failed to generate insights").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
