package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/ingest"
	"github.com/blaisecz/sleep-sync/internal/service"
	"github.com/blaisecz/sleep-sync/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// IngestHandler handles the wearable export webhook.
type IngestHandler struct {
	service service.IngestionService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(service service.IngestionService) *IngestHandler {
	return &IngestHandler{service: service}
}

// Ingest handles POST /v1/users/{userId}/ingest
// @Summary Ingest a wearable sleep export
// @Description Accepts a Health Auto Export style payload, reduces the sleep_analysis channel into one scored entry per sleep night, and upserts by (user, date). Re-delivering the same payload overwrites rather than duplicates. Responds 200 with a "no sleep data found" message when the channel is absent or empty.
// @Tags ingest
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body ingest.ExportPayload true "Export payload"
// @Success 200 {object} domain.IngestResponse "Ingestion outcome with processed and diagnostic counts"
// @Failure 400 {object} problem.Problem "Malformed JSON body"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Pipeline failure; detail carries the error message"
// @Router /users/{userId}/ingest [post]
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var payload ingest.ExportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	response, err := h.service.Ingest(r.Context(), userID, &payload)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError(err.Error()).Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RejectGet handles GET /v1/users/{userId}/ingest
// @Summary Reject GET on the webhook path
// @Description The webhook only accepts POST; GET answers 405 with an Allow header.
// @Tags ingest
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Failure 405 {object} problem.Problem "Method not allowed"
// @Router /users/{userId}/ingest [get]
func (h *IngestHandler) RejectGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	problem.MethodNotAllowed("The ingest webhook accepts POST only").Write(w)
}
