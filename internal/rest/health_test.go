package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReporter struct {
	ready  bool
	detail string
}

func (s *stubReporter) Ready() (bool, string) { return s.ready, s.detail }

func TestHealthAlwaysOK(t *testing.T) {
	h := NewHealthHandler(&stubReporter{})
	rec := doRequest(t, h.Health, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestReady(t *testing.T) {
	h := NewHealthHandler(&stubReporter{ready: true})
	rec := doRequest(t, h.Ready, "/ready")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestReadyNotYet(t *testing.T) {
	h := NewHealthHandler(&stubReporter{ready: false, detail: "open events.csv: no such file"})
	rec := doRequest(t, h.Ready, "/ready")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "open events.csv: no such file", body["detail"])
}

func TestReadyDefaultDetail(t *testing.T) {
	h := NewHealthHandler(&stubReporter{ready: false})
	rec := doRequest(t, h.Ready, "/ready")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "recommendation model not ready", decodeBody(t, rec)["detail"])
}

type stubReloader struct {
	err    error
	called bool
}

func (s *stubReloader) Reload(ctx context.Context) error {
	s.called = true
	return s.err
}

func TestAdminReload(t *testing.T) {
	reloader := &stubReloader{}
	h := NewAdminHandler(reloader)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ReloadModel(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reloader.called)
}

func TestAdminReloadFailure(t *testing.T) {
	h := NewAdminHandler(&stubReloader{err: errors.New("events.csv is gone")})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ReloadModel(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "events.csv is gone")
}
