package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/inkwell/internal/model"
)

func TestMapAPIErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *model.APIError
		want int
	}{
		{model.NewInvalidRequestError("x"), http.StatusBadRequest},
		{model.NewInvalidIDError(), http.StatusBadRequest},
		{model.NewSelfFollowError(), http.StatusBadRequest},
		{model.NewAuthTokenMissingError(), http.StatusUnauthorized},
		{model.NewAuthTokenInvalidError(), http.StatusUnauthorized},
		{model.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{model.NewForbiddenError("x"), http.StatusForbidden},
		{model.NewBlogPostNotFoundError(), http.StatusNotFound},
		{model.NewCommentNotFoundError(), http.StatusNotFound},
		{model.NewBookmarkNotFoundError(), http.StatusNotFound},
		{model.NewUserNotFoundError(), http.StatusNotFound},
		{model.NewNotFollowingError(), http.StatusNotFound},
		{model.NewPostNotFoundError(), http.StatusConflict},
		{model.NewAlreadyBookmarkedError(), http.StatusConflict},
		{model.NewAlreadyFollowingError(), http.StatusConflict},
		{model.NewEmailExistsError("a@example.com"), http.StatusConflict},
		{&model.APIError{Code: "UNKNOWN"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			if got := mapAPIErrorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("mapAPIErrorToHTTPStatus(%s) = %d, want %d", tt.err.Code, got, tt.want)
			}
		})
	}
}

func TestHandleServiceError_WrappedAPIError(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(w, fmt.Errorf("wrap: %w", model.NewUserNotFoundError()))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	body := parseAPIErrorResponse(t, w)
	if body["message"] != "User does not exist." {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleServiceError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(w, errors.New("pq: connection refused to 10.0.0.1"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "10.0.0.1") {
		t.Error("internal error details should not leak to the client")
	}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name        string
		body        string
		wantOK      bool
		wantMessage string
	}{
		{"valid", `{"name":"x"}`, true, ""},
		{"empty", ``, false, "empty!"},
		{"whitespace", "  \n ", false, "empty!"},
		{"null", `null`, false, "empty!"},
		{"empty object", `{ }`, false, "empty!"},
		{"malformed", `{"name":`, false, "Malformed JSON body."},
		{"wrong type", `{"name":1}`, false, "Malformed JSON body."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			ok := decodeBody(w, req, &dst, "empty!")

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				if dst.Name != "x" {
					t.Errorf("Name = %q, want %q", dst.Name, "x")
				}
				return
			}
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			body := parseAPIErrorResponse(t, w)
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %q, want %q", body["message"], tt.wantMessage)
			}
		})
	}
}

func TestPickID(t *testing.T) {
	if got := pickID("a", "b"); got != "a" {
		t.Errorf("pickID(a, b) = %q, want %q", got, "a")
	}
	if got := pickID("", "b"); got != "b" {
		t.Errorf("pickID(\"\", b) = %q, want %q", got, "b")
	}
}
