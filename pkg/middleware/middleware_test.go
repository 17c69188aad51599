package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"studiocrm/pkg/memcache"
	"studiocrm/pkg/utils"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware(zap.NewNop()))
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"https://studio.example"}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://studio.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://studio.example" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin was allowed: %q", got)
	}
}

func TestTraceIDIsEchoed(t *testing.T) {
	r := newEngine()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(TraceIDHeader); got != "trace-123" {
		t.Errorf("trace id = %q", got)
	}
}

func TestJWTAndRoleMiddleware(t *testing.T) {
	issuer := utils.NewTokenIssuer("middleware-secret", time.Hour)
	revoked := memcache.NewRevokedTokens()
	r := newEngine(JWTAuthMiddleware(issuer, revoked), RoleMiddleware("ADMIN"))

	adminToken, _, err := issuer.CreateToken(uuid.New(), "admin@studio.test", "ADMIN")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	operatorToken, _, err := issuer.CreateToken(uuid.New(), "ops@studio.test", "OPERATOR")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	foreign, _, _ := utils.NewTokenIssuer("other-secret", time.Hour).CreateToken(uuid.New(), "x@y.z", "ADMIN")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + adminToken, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized},
		{"insufficient role", "Bearer " + operatorToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
