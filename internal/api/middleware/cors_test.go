package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSMiddleware_AllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("*"))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	origin := w.Header().Get("Access-Control-Allow-Origin")
	if origin != "*" {
		t.Errorf("expected ACAO header '*', got '%s'", origin)
	}

	// Should NOT have Vary: Origin when using wildcard
	vary := w.Header().Get("Vary")
	if vary == "Origin" {
		t.Error("should not set Vary: Origin when using wildcard")
	}

	// Should NOT have credentials with wildcard
	creds := w.Header().Get("Access-Control-Allow-Credentials")
	if creds == "true" {
		t.Error("should not set Allow-Credentials with wildcard origin")
	}
}

func TestCORSMiddleware_SpecificOrigin_Allowed(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://allowed.com,http://also-allowed.com"))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://allowed.com")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	origin := w.Header().Get("Access-Control-Allow-Origin")
	if origin != "http://allowed.com" {
		t.Errorf("expected ACAO header 'http://allowed.com', got '%s'", origin)
	}

	// The response depends on the Origin header, so caches must vary on it.
	vary := w.Header().Get("Vary")
	if vary != "Origin" {
		t.Errorf("expected Vary: Origin, got '%s'", vary)
	}

	// Should have credentials for specific origin
	creds := w.Header().Get("Access-Control-Allow-Credentials")
	if creds != "true" {
		t.Errorf("expected Allow-Credentials: true, got '%s'", creds)
	}
}

func TestCORSMiddleware_SpecificOrigin_NotAllowed(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://allowed.com"))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://not-allowed.com")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	// Request should still succeed (CORS headers just won't be set)
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	// Should NOT have ACAO header for disallowed origin
	origin := w.Header().Get("Access-Control-Allow-Origin")
	if origin != "" {
		t.Errorf("expected no ACAO header, got '%s'", origin)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("*"))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	// Preflight should return 204 No Content
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for preflight, got %d", w.Code)
	}

	methods := w.Header().Get("Access-Control-Allow-Methods")
	if methods == "" {
		t.Error("expected Access-Control-Allow-Methods header")
	}
}

func TestCORSMiddleware_PreflightWithRequestHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("*"))
	r.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header, X-Another")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}

	// Should echo back requested headers
	allowHeaders := w.Header().Get("Access-Control-Allow-Headers")
	if allowHeaders != "X-Custom-Header, X-Another" {
		t.Errorf("expected echoed headers, got '%s'", allowHeaders)
	}
}

func TestCORSMiddleware_NoOriginHeader(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://allowed.com"))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Request without Origin header (same-origin or non-browser)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	// No CORS headers should be set
	origin := w.Header().Get("Access-Control-Allow-Origin")
	if origin != "" {
		t.Errorf("expected no ACAO header for no-origin request, got '%s'", origin)
	}
}

func TestCORSMiddleware_EmptyAllowedOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(""))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	// Should still work but no origin allowed
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestCORSMiddleware_WhitespaceInOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("  http://a.com  ,  http://b.com  "))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://a.com")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	origin := w.Header().Get("Access-Control-Allow-Origin")
	if origin != "http://a.com" {
		t.Errorf("expected origin to be allowed after trimming whitespace, got '%s'", origin)
	}
}
