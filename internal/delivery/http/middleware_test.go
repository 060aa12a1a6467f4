package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "https://comparanote.example",
			allowedOrigins: []string{"https://comparanote.example"},
			want:           true,
		},
		{
			name:           "wildcard match",
			origin:         "https://preview-42.comparanote.example",
			allowedOrigins: []string{"https://preview-*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "http://localhost:5173",
			allowedOrigins: []string{"https://comparanote.example", "http://localhost:5173"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"https://comparanote.example"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"https://comparanote.example"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "https://comparanote.example",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowsAnyOrigin(t *testing.T) {
	if !allowsAnyOrigin([]string{"https://comparanote.example", "*"}) {
		t.Errorf("allowsAnyOrigin() = false, want true when list contains *")
	}
	if allowsAnyOrigin([]string{"https://comparanote.example"}) {
		t.Errorf("allowsAnyOrigin() = true, want false without *")
	}
	if allowsAnyOrigin(nil) {
		t.Errorf("allowsAnyOrigin(nil) = true, want false")
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		method         string
		wantStatus     int
		wantOriginHdr  string
		wantCreds      bool
	}{
		{
			name:           "wildcard list - any origin",
			origin:         "https://somewhere.example",
			allowedOrigins: []string{"*"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantOriginHdr:  "*",
		},
		{
			name:           "allowed origin echoed with credentials",
			origin:         "https://comparanote.example",
			allowedOrigins: []string{"https://comparanote.example"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantOriginHdr:  "https://comparanote.example",
			wantCreds:      true,
		},
		{
			name:           "allowed origin - OPTIONS request",
			origin:         "https://comparanote.example",
			allowedOrigins: []string{"https://comparanote.example"},
			method:         "OPTIONS",
			wantStatus:     http.StatusNoContent,
			wantOriginHdr:  "https://comparanote.example",
			wantCreds:      true,
		},
		{
			name:           "disallowed origin",
			origin:         "http://evil.com",
			allowedOrigins: []string{"https://comparanote.example"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantOriginHdr:  "",
		},
		{
			name:           "no origin header",
			origin:         "",
			allowedOrigins: []string{"https://comparanote.example"},
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantOriginHdr:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware(tt.allowedOrigins))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOriginHdr {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOriginHdr)
			}
			if creds := w.Header().Get("Access-Control-Allow-Credentials") == "true"; creds != tt.wantCreds {
				t.Errorf("Access-Control-Allow-Credentials = %v, want %v", creds, tt.wantCreds)
			}
		})
	}
}

func TestCORSMiddleware_PreflightRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORSMiddleware([]string{"https://comparanote.example"}))
	router.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest("OPTIONS", "/test", nil)
	req.Header.Set("Origin", "https://comparanote.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://comparanote.example" {
		t.Errorf("Access-Control-Allow-Origin not set correctly")
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Errorf("Access-Control-Allow-Methods not set")
	}
	if w.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Errorf("Access-Control-Allow-Headers not set")
	}
	if w.Header().Get("Access-Control-Max-Age") == "" {
		t.Errorf("Access-Control-Max-Age not set")
	}
}
