package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name         string
		checker      HealthChecker
		wantStatus   int
		wantDatabase string
	}{
		{"no checker", nil, http.StatusOK, "skipped"},
		{"db up", &mockHealthChecker{}, http.StatusOK, "up"},
		{"db down", &mockHealthChecker{err: errors.New("refused")}, http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checker)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			h(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body map[string]string
			decodeJSON(t, w, &body)
			if body["database"] != tt.wantDatabase {
				t.Errorf("database = %q, want %q", body["database"], tt.wantDatabase)
			}
		})
	}
}
