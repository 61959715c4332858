package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/ingest"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MockIngestionService is a mock implementation of IngestionService
type MockIngestionService struct {
	ingestFunc func(ctx context.Context, userID uuid.UUID, payload *ingest.ExportPayload) (*domain.IngestResponse, error)
}

func (m *MockIngestionService) Ingest(ctx context.Context, userID uuid.UUID, payload *ingest.ExportPayload) (*domain.IngestResponse, error) {
	if m.ingestFunc != nil {
		return m.ingestFunc(ctx, userID, payload)
	}
	return &domain.IngestResponse{Processed: 1, Dates: []string{"2026-01-06"}}, nil
}

func newIngestRequest(method, userID, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/v1/users/"+userID+"/ingest", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	return req, rec
}

func TestIngestHandler_Ingest(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		body           string
		mockService    *MockIngestionService
		wantStatusCode int
	}{
		{
			name:           "valid payload",
			userID:         userID.String(),
			body:           `{"data": {"metrics": []}}`,
			mockService:    &MockIngestionService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			body:           `{"data": {"metrics": []}}`,
			mockService:    &MockIngestionService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "malformed JSON",
			userID:         userID.String(),
			body:           `{"data": `,
			mockService:    &MockIngestionService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			userID: userID.String(),
			body:   `{"data": {"metrics": []}}`,
			mockService: &MockIngestionService{
				ingestFunc: func(ctx context.Context, uid uuid.UUID, payload *ingest.ExportPayload) (*domain.IngestResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewIngestHandler(tt.mockService)

			req, rec := newIngestRequest(http.MethodPost, tt.userID, tt.body)
			handler.Ingest(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Ingest() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestIngestHandler_IngestNoSleepData(t *testing.T) {
	userID := uuid.New()
	mockService := &MockIngestionService{
		ingestFunc: func(ctx context.Context, uid uuid.UUID, payload *ingest.ExportPayload) (*domain.IngestResponse, error) {
			return &domain.IngestResponse{Message: "no sleep data found"}, nil
		},
	}
	handler := NewIngestHandler(mockService)

	req, rec := newIngestRequest(http.MethodPost, userID.String(), `{"data": {"metrics": []}}`)
	handler.Ingest(rec, req)

	// An empty payload is a 200 with a message, never an error.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp domain.IngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "no sleep data found" {
		t.Errorf("message = %q, want no sleep data found", resp.Message)
	}
}

func TestIngestHandler_RejectGet(t *testing.T) {
	handler := NewIngestHandler(&MockIngestionService{})

	req, rec := newIngestRequest(http.MethodGet, uuid.New().String(), "")
	handler.RejectGet(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow header = %q, want POST", allow)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}
