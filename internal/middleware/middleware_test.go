package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/response"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery(), CORS(""))
	r.GET("/x", handlers...)
	return r
}

func TestRecovery_ReturnsGenericEnvelope(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		panic("secret gateway detail")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Fatalf("panic value leaked to client: %s", w.Body.String())
	}

	var resp response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status || resp.Message != response.MsgInternalError {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	var seen string
	r := newEngine(func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" {
		t.Fatalf("expected request id in context")
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("expected header %q, got %q", seen, got)
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Errorf("expected caller request id to be kept, got %q", seen)
	}
}

func TestCORS_HeadersAndPreflight(t *testing.T) {
	called := false
	r := newEngine(func(c *gin.Context) {
		called = true
		c.Status(http.StatusNoContent)
	})
	r.OPTIONS("/x", func(c *gin.Context) { called = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected preflight status 200, got %d", w.Code)
	}
	if called {
		t.Errorf("expected preflight to stop before the handler")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected default origin *, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != corsAllowMethods {
		t.Errorf("unexpected allow methods %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if !called {
		t.Errorf("expected GET to reach the handler")
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials header on GET, got %q", got)
	}
}
