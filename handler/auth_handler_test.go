package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mavryck/services"
	"mavryck/storage"
	"mavryck/utils"
)

const (
	testAdminEmail    = "admin@mavryckevents.com"
	testAdminPassword = "SecurePass!23"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitValidator()
}

func newAuthRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()

	cred, err := services.NewAdminCredential(testAdminEmail, testAdminPassword, "")
	if err != nil {
		t.Fatalf("NewAdminCredential failed: %v", err)
	}

	kv := storage.NewMemoryKV()
	auth := services.NewAuthService(cred,
		services.NewAttemptLedger(15*time.Minute, 5),
		services.NewSessionManager(kv, 30*time.Minute),
		services.NewCSRFIssuer(kv),
		nil,
		"")

	h := NewAuthHandler(auth)

	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/logout", h.Logout)
	router.GET("/api/auth/session", h.Session)
	router.GET("/api/auth/csrf", h.CSRFToken)
	router.GET("/api/admin/security/stats", h.SecurityStats)

	return router, auth
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandlerSuccess(t *testing.T) {
	router, auth := newAuthRouter(t)

	w := postLogin(router, `{"email":"admin@mavryckevents.com","password":"SecurePass!23"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200. Body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			CSRFToken string `json:"csrf_token"`
			Message   string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Data.CSRFToken == "" {
		t.Error("Expected a CSRF token in the login response")
	}

	if !auth.IsAuthenticated() {
		t.Error("Successful login should establish a session")
	}
}

func TestLoginHandlerGenericRejection(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"admin@mavryckevents.com","password":"WrongPass!23"}`},
		{"malformed email", `{"email":"not-an-email","password":"SecurePass!23"}`},
		{"weak password", `{"email":"admin@mavryckevents.com","password":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newAuthRouter(t)

			w := postLogin(router, tt.body)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("Status = %d, want 401", w.Code)
			}

			// Every rejection reads the same so callers cannot probe
			// which check failed.
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Bad response body: %v", err)
			}
			if resp.Error != services.GenericLoginMessage {
				t.Errorf("Error = %q, want the generic rejection", resp.Error)
			}
		})
	}
}

func TestLoginHandlerMissingFields(t *testing.T) {
	router, _ := newAuthRouter(t)

	w := postLogin(router, `{"email":"admin@mavryckevents.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
}

func TestLoginHandlerRateLimited(t *testing.T) {
	router, _ := newAuthRouter(t)

	for i := 0; i < 5; i++ {
		w := postLogin(router, `{"email":"admin@mavryckevents.com","password":"WrongPass!23"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Attempt %d: status = %d, want 401", i+1, w.Code)
		}
	}

	// The 6th attempt with the correct password is still refused, with a
	// distinct retry-after message.
	w := postLogin(router, `{"email":"admin@mavryckevents.com","password":"SecurePass!23"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Status = %d, want 429. Body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
		Data  struct {
			RetryAfterMinutes int `json:"retry_after_minutes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Data.RetryAfterMinutes < 1 {
		t.Errorf("retry_after_minutes = %d, want >= 1", resp.Data.RetryAfterMinutes)
	}
}

func TestLogoutHandler(t *testing.T) {
	router, auth := newAuthRouter(t)

	postLogin(router, `{"email":"admin@mavryckevents.com","password":"SecurePass!23"}`)
	if !auth.IsAuthenticated() {
		t.Fatal("Login should have succeeded")
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/logout", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}
	if auth.IsAuthenticated() {
		t.Error("Logout should clear the session")
	}
}

func TestSessionEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)

	check := func(want bool) {
		t.Helper()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/auth/session", nil)
		router.ServeHTTP(w, req)

		var resp struct {
			Data struct {
				Authenticated bool `json:"authenticated"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Bad response body: %v", err)
		}
		if resp.Data.Authenticated != want {
			t.Errorf("authenticated = %v, want %v", resp.Data.Authenticated, want)
		}
	}

	check(false)
	postLogin(router, `{"email":"admin@mavryckevents.com","password":"SecurePass!23"}`)
	check(true)
}

func TestSecurityStatsEndpoint(t *testing.T) {
	router, _ := newAuthRouter(t)

	postLogin(router, `{"email":"admin@mavryckevents.com","password":"WrongPass!23"}`)
	postLogin(router, `{"email":"admin@mavryckevents.com","password":"SecurePass!23"}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/security/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var resp struct {
		Data struct {
			TotalAttempts      int  `json:"total_attempts"`
			FailedAttempts     int  `json:"failed_attempts"`
			SuccessfulAttempts int  `json:"successful_attempts"`
			IsLocked           bool `json:"is_locked"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Data.TotalAttempts != 2 || resp.Data.FailedAttempts != 1 || resp.Data.SuccessfulAttempts != 1 {
		t.Errorf("Unexpected stats: %+v", resp.Data)
	}
	if resp.Data.IsLocked {
		t.Error("Should not be locked after one failure")
	}
}
