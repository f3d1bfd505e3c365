package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/inkwell/internal/model"
)

// recordedRequest はメトリクスミドルウェアが記録した1件分の値。
type recordedRequest struct {
	method string
	route  string
	status int
}

type mockHTTPRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (m *mockHTTPRecorder) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{method: method, route: route, status: statusCode})
}

var _ HTTPRecorder = (*mockHTTPRecorder)(nil)

// TestRouterIntegration_PublicAndProtectedGroups は
// 認証不要ルートと認証必須ルートがchi.Routerで正しく分かれることを検証する。
func TestRouterIntegration_PublicAndProtectedGroups(t *testing.T) {
	repo := &mockSessionRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			if id == "router-test-token" {
				return &model.Session{
					ID:        "router-test-token",
					UserID:    "user-router-test",
					ExpiresAt: time.Now().Add(1 * time.Hour),
				}, nil
			}
			return nil, nil
		},
	}

	recorder := &mockHTTPRecorder{}

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(recorder))

	// 認証不要のルート
	r.Get("/posts/explore/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": chi.URLParam(r, "id")})
	})

	// 認証が必要なルートグループ
	r.Group(func(r chi.Router) {
		r.Use(NewSessionMiddleware(repo))

		r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := UserIDFromContext(r.Context())
			json.NewEncoder(w).Encode(map[string]string{"user_id": userID, "id": chi.URLParam(r, "id")})
		})
	})

	t.Run("public_without_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/explore/p1", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("protected_with_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/p1", nil)
		req.Header.Set("Authorization", "Bearer router-test-token")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var body map[string]string
		json.NewDecoder(w.Result().Body).Decode(&body)
		if body["user_id"] != "user-router-test" {
			t.Errorf("user_id = %q, want %q", body["user_id"], "user-router-test")
		}
	})

	t.Run("protected_without_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/p1", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unmatched_route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nowhere/at/all", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	want := []recordedRequest{
		{http.MethodGet, "/posts/explore/{id}", http.StatusOK},
		{http.MethodGet, "/posts/{id}", http.StatusOK},
		{http.MethodGet, "/posts/{id}", http.StatusUnauthorized},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}
	if len(recorder.requests) != len(want) {
		t.Fatalf("recorded %d requests, want %d: %+v", len(recorder.requests), len(want), recorder.requests)
	}
	for i, w := range want {
		if recorder.requests[i] != w {
			t.Errorf("request[%d] = %+v, want %+v", i, recorder.requests[i], w)
		}
	}
}
