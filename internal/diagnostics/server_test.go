package diagnostics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRoutes(t *testing.T) {
	s := NewServer("0")

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "health returns ok",
			target:     "/health",
			wantStatus: 200,
		},
		{
			name:       "metrics exposes the process collectors",
			target:     "/metrics",
			wantStatus: 200,
			wantBody:   "go_goroutines",
		},
		{
			name:       "pprof index is mounted",
			target:     "/debug/pprof/",
			wantStatus: 200,
			wantBody:   "goroutine",
		},
		{
			name:       "pprof cmdline is mounted",
			target:     "/debug/pprof/cmdline",
			wantStatus: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			rec := httptest.NewRecorder()

			s.httpServer.Handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := NewServer("9090")
	assert.Equal(t, ":9090", s.httpServer.Addr)
}
