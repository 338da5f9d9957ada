package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "TrendScan/pkg/logger"
)

type testRoutes struct{}

func (testRoutes) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerServesRoutesAndMetrics(t *testing.T) {
	s := NewServer(testRoutes{}, applogger.Nop(), WithHost("127.0.0.1"), WithPort(0))
	require.NoError(t, s.Start())
	defer func() { assert.NoError(t, s.Stop(context.Background())) }()

	base := "http://" + s.Addr()

	code, body := get(t, base+"/ping")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body)

	code, _ = get(t, base+"/boom")
	assert.Equal(t, http.StatusInternalServerError, code)

	code, body = get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `trendscan_http_requests_total{method="GET",route="/boom",status="500"} 1`)
}

func TestServerStartFailsOnBusyPort(t *testing.T) {
	first := NewServer(nil, applogger.Nop(), WithHost("127.0.0.1"), WithPort(0))
	require.NoError(t, first.Start())
	defer first.Stop(context.Background())

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	second := NewServer(nil, applogger.Nop(), WithHost("127.0.0.1"), WithPort(port))
	assert.Error(t, second.Start())
}
