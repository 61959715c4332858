package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/service"
	"github.com/blaisecz/sleep-sync/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SleepEntryHandler handles sleep entry listing.
type SleepEntryHandler struct {
	service service.SleepEntryService
}

// NewSleepEntryHandler creates a new SleepEntryHandler.
func NewSleepEntryHandler(service service.SleepEntryService) *SleepEntryHandler {
	return &SleepEntryHandler{service: service}
}

// List handles GET /v1/users/{userId}/sleep-entries
// @Summary List sleep entries
// @Description Fetch the scored sleep history, newest night first. Filter by sleep-date range.
// @Tags sleep-entries
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (YYYY-MM-DD)" example(2026-01-01)
// @Param to query string false "End of date range (YYYY-MM-DD)" example(2026-01-31)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SleepEntryListResponse "Sleep entries with pagination"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-entries [get]
func (h *SleepEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseEntryFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list sleep entries").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseEntryFilter(r *http.Request) (domain.SleepEntryFilter, []problem.FieldError) {
	var filter domain.SleepEntryFilter
	var fieldErrors []problem.FieldError

	parseDate := func(name string) *string {
		s := r.URL.Query().Get(name)
		if s == "" {
			return nil
		}
		if _, err := time.Parse(domain.SleepDateFormat, s); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   name,
				Message: "must be a valid YYYY-MM-DD date",
			})
			return nil
		}
		return &s
	}

	filter.From = parseDate("from")
	filter.To = parseDate("to")

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}
	return filter, nil
}
