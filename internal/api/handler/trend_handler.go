package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/service"
	"github.com/blaisecz/sleep-sync/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TrendHandler handles trend analytics endpoints.
type TrendHandler struct {
	service service.TrendService
}

// NewTrendHandler creates a new TrendHandler.
func NewTrendHandler(service service.TrendService) *TrendHandler {
	return &TrendHandler{service: service}
}

// GetTrends handles GET /v1/users/{userId}/trends
// @Summary Get trend summary
// @Description Period averages for score, duration, bedtime, wake-up (circular means), and interruptions, plus deltas against the entry one period length back. Windows without data report has_data=false instead of erroring.
// @Tags trends
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param period query string false "Trend period" Enums(7d,30d,90d,week,month,quarter,ytd,year) default(7d)
// @Success 200 {object} domain.TrendSummaryResponse "Trend summary"
// @Failure 400 {object} problem.Problem "Unknown trend period"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/trends [get]
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	period, err := domain.ParseTrendPeriod(r.URL.Query().Get("period"))
	if err != nil {
		problem.BadRequest("Unknown trend period; use 7d, 30d, 90d, week, month, quarter, ytd, or year").Write(w)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute trends").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
