package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/phase2-labs/demo-api/apis/common"
	"github.com/phase2-labs/demo-api/internal/config"
	"github.com/phase2-labs/demo-api/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             config.DefaultPort,
		Environment:      config.DefaultEnvironment,
		LogLevel:         config.DefaultLogLevel,
		ShutdownTimeout:  time.Second,
		ReadinessTimeout: 200 * time.Millisecond,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := New(cfg)
	require.NoError(t, err)
	return srv
}

func decodeDetail(t *testing.T, resp *http.Response) common.DetailResponse {
	t.Helper()
	var body common.DetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, path := range []string{"/", "/api/info", "/health", "/health/ready", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			resp, err := srv.App().Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_RequestID(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "client-supplied")
	resp, err = srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(fiber.HeaderXRequestID))
}

func TestServer_NotFoundUsesDetailResponse(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/does-not-exist", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeDetail(t, resp)
	assert.Equal(t, float64(fiber.StatusNotFound), body.Detail["status"])
	assert.Contains(t, body.Detail["message"], "/does-not-exist")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, err := srv.App().Test(httptest.NewRequest("POST", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, float64(fiber.StatusMethodNotAllowed), decodeDetail(t, resp).Detail["status"])
}

func TestServer_RecoversFromPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(zap.NewNop()) })

	srv := newTestServer(t, testConfig())
	srv.App().Get("/panic", func(c *fiber.Ctx) error { panic("secret internals") })

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeDetail(t, resp)
	assert.Equal(t, "Internal Server Error", body.Detail["message"])
	assert.Equal(t, float64(fiber.StatusInternalServerError), body.Detail["status"])

	// the raw error only goes to the access log
	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "secret internals")
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{name: "fiber error keeps its message", err: fiber.NewError(fiber.StatusBadRequest, "bad input"), wantCode: 400, wantMessage: "bad input"},
		{name: "wrapped fiber error", err: fmt.Errorf("handler: %w", fiber.ErrServiceUnavailable), wantCode: 503, wantMessage: "Service Unavailable"},
		{name: "plain error is masked", err: errors.New("dial tcp 10.0.0.1:5432: refused"), wantCode: 500, wantMessage: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantMessage, decodeDetail(t, resp).Detail["message"])
		})
	}
}

// /api/info names the documentation paths of the descriptor, but no
// documentation UI is served.
func TestServer_DocumentationPathsAreNotServed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, path := range []string{"/docs", "/redoc"} {
		resp, err := srv.App().Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, float64(fiber.StatusNotFound), decodeDetail(t, resp).Detail["status"])
	}
}

func TestServer_ReadinessReportsUnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Redis = config.RedisYAMLConfig{Enabled: true, Address: "127.0.0.1:1"}
	srv := newTestServer(t, cfg)
	defer srv.closeDependencies()

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health/ready", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	// liveness is unaffected by dependencies
	resp, err = srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
}

func TestServer_StartAndGracefulShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Port = freePort(t)
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	url := "http://127.0.0.1:" + cfg.Port + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_StartWithCancelledContext(t *testing.T) {
	cfg := testConfig()
	cfg.Port = freePort(t)
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after its context was cancelled")
	}

	// the port is released once Start returns
	l, err := net.Listen("tcp", "127.0.0.1:"+cfg.Port)
	require.NoError(t, err)
	l.Close()
}

func TestServer_StartFailsWhenPortIsTaken(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	cfg := testConfig()
	cfg.Port = strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
	srv := newTestServer(t, cfg)

	err = srv.Start(context.Background())
	assert.Error(t, err)
}
