package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCORSRouter(origin string) *gin.Engine {
	router := gin.New()
	router.Use(CORSMiddleware(origin))
	router.GET("/api/resource", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestCORSMiddlewareSetsOrigin(t *testing.T) {
	router := newCORSRouter("https://mavryckevents.com")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/resource", nil)
	req.Header.Set("Origin", "https://mavryckevents.com")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://mavryckevents.com" {
		t.Errorf("Allow-Origin = %q, want the configured origin", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	router := newCORSRouter("https://mavryckevents.com")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/api/resource", nil)
	req.Header.Set("Origin", "https://mavryckevents.com")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("Preflight response must carry Allow-Origin")
	}
}
