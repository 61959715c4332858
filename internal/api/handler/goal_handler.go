package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-sync/internal/api/validation"
	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/service"
	"github.com/blaisecz/sleep-sync/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GoalHandler handles goal management endpoints.
type GoalHandler struct {
	service service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service service.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

// Save handles PUT /v1/users/{userId}/goals/{metric}
// @Summary Create or replace a goal
// @Description Store a target for one sleep metric. Time-of-day targets before 6:00 are normalized onto the extended evening domain so comparisons never cross midnight incorrectly.
// @Tags goals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param metric path string true "Metric key" Enums(sleep_duration,sleep_bedtime,sleep_wakeup,sleep_interruptions,sleep_score)
// @Param request body domain.SaveGoalRequest true "Goal target"
// @Success 200 {object} domain.GoalResponse "Stored goal"
// @Failure 400 {object} problem.Problem "Unknown metric or malformed body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation failure"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals/{metric} [put]
func (h *GoalHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	metric, err := domain.ParseGoalMetric(chi.URLParam(r, "metric"))
	if err != nil {
		problem.BadRequest("Unknown goal metric").Write(w)
		return
	}

	var req domain.SaveGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	goal, err := h.service.Save(r.Context(), userID, metric, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to save goal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goal.ToResponse())
}

// Delete handles DELETE /v1/users/{userId}/goals/{metric}
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param metric path string true "Metric key" Enums(sleep_duration,sleep_bedtime,sleep_wakeup,sleep_interruptions,sleep_score)
// @Success 204 "Goal deleted"
// @Failure 400 {object} problem.Problem "Unknown metric"
// @Failure 404 {object} problem.Problem "User or goal not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals/{metric} [delete]
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	metric, err := domain.ParseGoalMetric(chi.URLParam(r, "metric"))
	if err != nil {
		problem.BadRequest("Unknown goal metric").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, metric); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Goal not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete goal").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/users/{userId}/goals
// @Summary List goals
// @Tags goals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {array} domain.GoalResponse "Stored goals"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals [get]
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	goals, err := h.service.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list goals").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goals)
}

// Progress handles GET /v1/users/{userId}/goals/progress
// @Summary Get goal progress
// @Description Compare each stored goal against its period average with a met/close/far classification. Goals without period data are omitted rather than erroring.
// @Tags goals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param period query string false "Averaging period" Enums(7d,30d,90d,week,month,quarter,ytd,year) default(7d)
// @Success 200 {object} domain.GoalProgressResponse "Per-goal comparisons"
// @Failure 400 {object} problem.Problem "Unknown trend period"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/goals/progress [get]
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
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

	progress, err := h.service.Progress(r.Context(), userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute goal progress").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}
