package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mavryck/model"
	"mavryck/repository"
	"mavryck/services"
	"mavryck/storage"
)

// Runs before init() so the required-env check is skipped.
var _ = os.Setenv("GO_ENV", "test")

type fakeEvents struct{ events []*model.EventRequest }

func (f *fakeEvents) Create(_ context.Context, event *model.EventRequest) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeEvents) List(_ context.Context) ([]*model.EventRequest, error) { return f.events, nil }
func (f *fakeEvents) Update(_ context.Context, _ string, _ map[string]interface{}) (*model.EventRequest, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeEvents) Delete(_ context.Context, _ string) error { return repository.ErrNotFound }

type fakeMessages struct{}

func (f *fakeMessages) Create(_ context.Context, _ *model.ContactMessage) error { return nil }
func (f *fakeMessages) List(_ context.Context) ([]*model.ContactMessage, error) { return nil, nil }
func (f *fakeMessages) Update(_ context.Context, _ string, _ map[string]interface{}) (*model.ContactMessage, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeMessages) Delete(_ context.Context, _ string) error { return repository.ErrNotFound }

type fakeGallery struct{}

func (f *fakeGallery) Create(_ context.Context, _ *model.GalleryItem) error  { return nil }
func (f *fakeGallery) List(_ context.Context) ([]*model.GalleryItem, error)  { return nil, nil }
func (f *fakeGallery) Update(_ context.Context, _ string, _ map[string]interface{}) (*model.GalleryItem, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeGallery) Delete(_ context.Context, _ string) error { return repository.ErrNotFound }

type fakeProducts struct{}

func (f *fakeProducts) Create(_ context.Context, _ *model.Product) error  { return nil }
func (f *fakeProducts) List(_ context.Context) ([]*model.Product, error)  { return nil, nil }
func (f *fakeProducts) Update(_ context.Context, _ string, _ map[string]interface{}) (*model.Product, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeProducts) Delete(_ context.Context, _ string) error { return repository.ErrNotFound }

type fakeTestimonials struct{}

func (f *fakeTestimonials) Create(_ context.Context, _ *model.Testimonial) error { return nil }
func (f *fakeTestimonials) List(_ context.Context) ([]*model.Testimonial, error) { return nil, nil }
func (f *fakeTestimonials) Update(_ context.Context, _ string, _ map[string]interface{}) (*model.Testimonial, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeTestimonials) Delete(_ context.Context, _ string) error { return repository.ErrNotFound }

func newTestRouter(t *testing.T) (*gin.Engine, *services.SessionManager, *fakeEvents) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cred, err := services.NewAdminCredential("admin@mavryckevents.com", "SecurePass!23", "")
	if err != nil {
		t.Fatalf("NewAdminCredential failed: %v", err)
	}

	kv := storage.NewMemoryKV()
	sessions := services.NewSessionManager(kv, 30*time.Minute)
	csrf := services.NewCSRFIssuer(kv)
	auth := services.NewAuthService(cred,
		services.NewAttemptLedger(15*time.Minute, 5),
		sessions, csrf, nil, "")

	events := &fakeEvents{events: []*model.EventRequest{{
		ID:    "evt-1",
		Name:  "Asha",
		Email: "asha@example.com",
	}}}

	router := setupRouter("http://localhost:3000", auth, sessions, csrf,
		events, &fakeMessages{}, &fakeGallery{}, &fakeProducts{}, &fakeTestimonials{})
	return router, sessions, events
}

func request(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

// The route table is the security boundary: customer enquiries and
// contact messages must never be readable without a session, while the
// marketing-site endpoints stay open.
func TestRouteTableAnonymousAccess(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{"POST", "/api/events", `{"name":"Priya","email":"priya@example.com","event_type":"wedding"}`, http.StatusCreated},
		{"POST", "/api/messages", `{"name":"Priya","email":"priya@example.com","message":"hello"}`, http.StatusCreated},
		{"GET", "/api/gallery", "", http.StatusOK},
		{"GET", "/api/products", "", http.StatusOK},
		{"GET", "/api/testimonials", "", http.StatusOK},
		{"GET", "/api/auth/session", "", http.StatusOK},
		{"GET", "/api/auth/csrf", "", http.StatusOK},

		{"GET", "/api/events", "", http.StatusUnauthorized},
		{"GET", "/api/messages", "", http.StatusUnauthorized},
		{"PUT", "/api/events/evt-1", `{"status":"confirmed"}`, http.StatusUnauthorized},
		{"DELETE", "/api/events/evt-1", "", http.StatusUnauthorized},
		{"PUT", "/api/messages/msg-1", `{"read":true}`, http.StatusUnauthorized},
		{"POST", "/api/gallery", `{"title":"x","image_url":"https://example.com/a.jpg"}`, http.StatusUnauthorized},
		{"POST", "/api/products", `{"name":"Set","price":10}`, http.StatusUnauthorized},
		{"POST", "/api/testimonials", `{"name":"x","rating":5,"message":"great"}`, http.StatusUnauthorized},
		{"GET", "/api/admin/security/stats", "", http.StatusUnauthorized},
		{"GET", "/api/admin/health", "", http.StatusUnauthorized},
		{"POST", "/api/auth/logout", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		w := request(router, tt.method, tt.path, tt.body)
		if w.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestRouteTableGuardedReadsWithSession(t *testing.T) {
	router, sessions, _ := newTestRouter(t)

	if _, err := sessions.Create("admin@mavryckevents.com", "Mozilla/5.0", "127.0.0.1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Dashboard reads work without a CSRF header; the CSRF check only
	// applies to mutating methods.
	w := request(router, "GET", "/api/events", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/events with session = %d, want 200", w.Code)
	}

	var resp struct {
		Data []*model.EventRequest `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Email != "asha@example.com" {
		t.Errorf("Unexpected list payload: %+v", resp.Data)
	}

	if w := request(router, "GET", "/api/messages", ""); w.Code != http.StatusOK {
		t.Errorf("GET /api/messages with session = %d, want 200", w.Code)
	}

	// A mutation still needs the CSRF token even with a valid session.
	if w := request(router, "PUT", "/api/events/evt-1", `{"status":"confirmed"}`); w.Code != http.StatusForbidden {
		t.Errorf("PUT without CSRF token = %d, want 403", w.Code)
	}
}
