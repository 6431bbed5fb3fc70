package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/ticketdesk/internal/domain/registration"
	"github.com/geocoder89/ticketdesk/internal/notifications"
	"github.com/geocoder89/ticketdesk/internal/observability"
	"github.com/geocoder89/ticketdesk/internal/pipeline"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistrar struct{ calls int }

func (s *stubRegistrar) Run(ctx context.Context, req registration.Request) (pipeline.Result, error) {
	s.calls++
	return pipeline.Result{Outcome: notifications.Outcome{
		TicketCode: "TIX-ZZ9900",
		Email:      notifications.ChannelResult{Status: notifications.StatusSent},
		Chat:       notifications.ChannelResult{Status: notifications.StatusSkipped},
	}}, nil
}

func testRouter(t *testing.T, reg *stubRegistrar) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()

	return NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), RouterConfig{
		Env:          "test",
		ServiceName:  "ticketdesk-test",
		MaxBodyBytes: 256,
		Registrar:    reg,
		Prom:         observability.NewProm(registry),
		Gatherer:     registry,
	})
}

func TestRouter_Webhook(t *testing.T) {
	reg := &stubRegistrar{}
	r := testRouter(t, reg)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"name":"Ayu","email":"ayu@example.com"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
	assert.Equal(t, "TIX-ZZ9900", w.Header().Get("X-Ticket-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Body.String(), `"ticketId":"TIX-ZZ9900"`)
	assert.Contains(t, w.Body.String(), `"requestId":"req-123"`)
	assert.Equal(t, 1, reg.calls)
}

func TestRouter_RejectsNonJSON(t *testing.T) {
	reg := &stubRegistrar{}
	r := testRouter(t, reg)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("name=Ayu"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Zero(t, reg.calls)
}

func TestRouter_RejectsOversizeBody(t *testing.T) {
	reg := &stubRegistrar{}
	r := testRouter(t, reg)

	body := `{"name":"` + strings.Repeat("a", 512) + `","email":"ayu@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, reg.calls)
}

func TestRouter_OversizeBodyWithoutContentLength(t *testing.T) {
	reg := &stubRegistrar{}
	r := testRouter(t, reg)

	body := `{"name":"` + strings.Repeat("a", 512) + `","email":"ayu@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", io.NopCloser(strings.NewReader(body)))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, reg.calls)
}

func TestRouter_LivenessAndMetrics(t *testing.T) {
	r := testRouter(t, &stubRegistrar{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ticketdesk_http_requests_total")
}
