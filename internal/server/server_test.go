package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeHandler struct {
	path string
	fn   echo.HandlerFunc
}

func (h routeHandler) Register(e *echo.Echo) {
	e.GET(h.path, h.fn)
}

func TestServer_RegistersHandlersAndLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	srv := NewServer(log, "", routeHandler{path: "/ok", fn: func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	}}, nil)
	assert.Equal(t, DefaultAddr, srv.Addr())

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
	assert.Contains(t, buf.String(), "uri=/ok")
	assert.Contains(t, buf.String(), "status=200")
}

func TestServer_RecoversPanics(t *testing.T) {
	t.Parallel()

	srv := NewServer(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), ":0", routeHandler{path: "/boom", fn: func(echo.Context) error {
		panic("boom")
	}})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
