package response_test

import (
	"encoding/json"
	"errors"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWriters(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "message only",
			write:      func(w http.ResponseWriter) { response.WithMessage(w, http.StatusOK, "Room deleted successfully") },
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"message": "Room deleted successfully"},
		},
		{
			name:       "data only",
			write:      func(w http.ResponseWriter) { response.WithJSON(w, http.StatusOK, []string{"SINGLE", "DOUBLE"}) },
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"data": []any{"SINGLE", "DOUBLE"}},
		},
		{
			name: "message and data",
			write: func(w http.ResponseWriter) {
				response.WithMessageAndJSON(w, http.StatusCreated, "Room added successfully", map[string]int{"id": 3})
			},
			wantStatus: http.StatusCreated,
			wantBody:   map[string]any{"message": "Room added successfully", "data": map[string]any{"id": float64(3)}},
		},
		{
			name:       "failure keeps its code",
			write:      func(w http.ResponseWriter) { response.WithError(w, failure.NotFound("room not found")) },
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"error": "room not found"},
		},
		{
			name:       "plain error is internal",
			write:      func(w http.ResponseWriter) { response.WithError(w, errors.New("connection reset")) },
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "connection reset"},
		},
		{
			name:       "rate limited",
			write:      response.WithRequestLimitExceeded,
			wantStatus: http.StatusTooManyRequests,
			wantBody:   map[string]any{"message": "REQUEST LIMIT EXCEEDED"},
		},
		{
			name:       "shutting down",
			write:      response.WithPreparingShutdown,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]any{"message": "SERVER PREPARING TO SHUT DOWN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			tt.write(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decode(t, rec))
		})
	}
}

func TestWithJSON_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, func() {})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
