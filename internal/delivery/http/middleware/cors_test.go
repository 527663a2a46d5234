package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed string
	}{
		{name: "allowed origin", origins: []string{"http://app.test/"}, method: http.MethodGet, origin: "http://app.test", wantStatus: http.StatusOK, wantAllowed: "http://app.test"},
		{name: "other origin", origins: []string{"http://app.test"}, method: http.MethodGet, origin: "http://evil.test", wantStatus: http.StatusOK},
		{name: "preflight allowed", origins: []string{"http://app.test"}, method: http.MethodOptions, origin: "http://app.test", preflight: true, wantStatus: http.StatusNoContent, wantAllowed: "http://app.test"},
		{name: "preflight rejected origin", origins: []string{"http://app.test"}, method: http.MethodOptions, origin: "http://evil.test", preflight: true, wantStatus: http.StatusNoContent},
		{name: "wildcard", origins: []string{"*"}, method: http.MethodGet, origin: "http://any.test", wantStatus: http.StatusOK, wantAllowed: "http://any.test"},
		{name: "no origins configured", method: http.MethodGet, origin: "http://app.test", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/api/events", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			CORS(tt.origins, ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight && tt.wantAllowed != "" {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}
