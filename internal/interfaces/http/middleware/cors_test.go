package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"listed origin", []string{"https://ui.example.com/"}, http.MethodGet, "https://ui.example.com", "https://ui.example.com", http.StatusOK},
		{"unlisted origin", []string{"https://ui.example.com"}, http.MethodGet, "https://evil.example.com", "", http.StatusOK},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example.com", "https://any.example.com", http.StatusOK},
		{"no origin header", []string{"*"}, http.MethodGet, "", "", http.StatusOK},
		{"preflight", []string{"*"}, http.MethodOptions, "https://any.example.com", "https://any.example.com", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(SecurityHeaders(), CORS(tt.allowed))
			r.Any("/status", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/status", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}
