package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/inkwell/internal/auth"
	"github.com/hitoshi/inkwell/internal/model"
)

func TestAuthHandler_Signup_Created(t *testing.T) {
	svc := &mockAuthService{
		signupFn: func(ctx context.Context, in auth.SignupInput) (*model.User, error) {
			if in.Email != "alice@example.com" || in.Password != "pw123456" {
				t.Errorf("input = %+v", in)
			}
			return &model.User{
				ID:        "user-1",
				FirstName: in.FirstName,
				LastName:  in.LastName,
				FullName:  model.FullNameOf(in.FirstName, in.LastName),
				Email:     in.Email,
				Following: []string{},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	body := `{"firstName":"Alice","lastName":"Smith","email":"alice@example.com","password":"pw123456"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var result map[string]interface{}
	decodeJSON(t, w, &result)
	if result["fullName"] != "Alice Smith" {
		t.Errorf("fullName = %v", result["fullName"])
	}
	if _, ok := result["password"]; ok {
		t.Error("response should not contain password")
	}
}

func TestAuthHandler_Signup_EmptyBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", nil)
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	body := parseAPIErrorResponse(t, w)
	if body["message"] != "User data not found" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestAuthHandler_Signup_EmailExists(t *testing.T) {
	svc := &mockAuthService{
		signupFn: func(ctx context.Context, in auth.SignupInput) (*model.User, error) {
			return nil, model.NewEmailExistsError(in.Email)
		},
	}
	h := NewAuthHandler(svc)

	body := `{"firstName":"Alice","lastName":"Smith","email":"alice@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	resp := parseAPIErrorResponse(t, w)
	if resp["message"] != "Your email alice@example.com already exists" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestAuthHandler_Login_ReturnsToken(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*model.Session, error) {
			return &model.Session{ID: "token-abc", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		sessionMaxAge: 24 * time.Hour,
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@example.com","password":"pw"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var result map[string]interface{}
	decodeJSON(t, w, &result)
	if result["token"] != "token-abc" {
		t.Errorf("token = %v, want %q", result["token"], "token-abc")
	}
	if result["expiresIn"] != float64(86400) {
		t.Errorf("expiresIn = %v, want 86400", result["expiresIn"])
	}
}

func TestAuthHandler_Login_WrongCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@example.com","password":"bad"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	body := parseAPIErrorResponse(t, w)
	if body["message"] != "Wrong credentials provided" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestAuthHandler_Logout_PassesBearerToken(t *testing.T) {
	var gotToken string
	svc := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			gotToken = sessionID
			return nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if gotToken != "token-abc" {
		t.Errorf("token = %q, want %q", gotToken, "token-abc")
	}
}

func TestAuthHandler_LogoutAll_UsesSessionUser(t *testing.T) {
	var gotUser string
	svc := &mockAuthService{
		logoutAllFn: func(ctx context.Context, userID string) error {
			gotUser = userID
			return nil
		},
	}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil)
	req = withUserID(req, "user-1")
	w := httptest.NewRecorder()

	h.LogoutAll(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if gotUser != "user-1" {
		t.Errorf("userID = %q, want %q", gotUser, "user-1")
	}
}

func TestAuthHandler_LogoutAll_NoUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil)
	w := httptest.NewRecorder()

	h.LogoutAll(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthHandler_Me_InvalidToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer unknown")
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
