package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/phase2-labs/demo-api/apis/common"
	"github.com/phase2-labs/demo-api/apis/health"
	"github.com/phase2-labs/demo-api/internal/config"
	"github.com/phase2-labs/demo-api/internal/handlers"
	"github.com/phase2-labs/demo-api/internal/version"
	"github.com/phase2-labs/demo-api/pkg/logger"
	"github.com/phase2-labs/demo-api/pkg/metrics"
	"github.com/phase2-labs/demo-api/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
)

// Server represents the HTTP server instance with all its components.
type Server struct {
	// app is the Fiber HTTP application instance
	app *fiber.App

	// cfg contains the server configuration
	cfg *config.Config

	// redis is the optional Redis dependency, nil when disabled
	redis *storage.RedisClient
}

// New creates and initializes a new Server instance with the provided configuration.
// The global logger must already be initialised.
func New(cfg *config.Config) (*Server, error) {
	redisClient, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis dependency: %w", err)
	}

	var checkers []health.Checker
	if redisClient != nil {
		checkers = append(checkers, redisClient)
	} else {
		logger.Infof("Redis dependency: disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:               version.AppTitle + " " + version.GetVersion(),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	collector := metrics.NewCollector(health.Uptime)

	// Middleware
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(logger.RequestLogger())
	app.Use(collector.Middleware())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	handlers.SetupRoutes(app, health.NewHandler(cfg.ReadinessTimeout, checkers...), collector)

	return &Server{
		app:   app,
		cfg:   cfg,
		redis: redisClient,
	}, nil
}

// ErrorHandler renders every error as a DetailResponse carrying the message
// and HTTP status code. Errors that are not *fiber.Error only expose the
// status text; the raw error reaches the access log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := utils.StatusMessage(code)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(common.DetailResponse{
		Detail: map[string]any{
			"message": message,
			"status":  code,
		},
	})
}

// App exposes the Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on the configured port until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
// The socket is bound before serving starts so a shutdown always has a
// listener to close, even when ctx is already done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		s.closeDependencies()
		return fmt.Errorf("failed to listen on :%s: %w", s.cfg.Port, err)
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- s.app.Listener(ln)
	}()

	logger.Infof("Listening on %s", ln.Addr())

	select {
	case err := <-listenErr:
		s.closeDependencies()
		return err
	case <-ctx.Done():
	}

	logger.Infof("Shutting down (timeout %s)", s.cfg.ShutdownTimeout)
	shutdownErr := s.app.ShutdownWithTimeout(s.cfg.ShutdownTimeout)
	// Serving may not have started yet; closing the listener makes it return.
	_ = ln.Close()
	s.closeDependencies()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}
	if err := <-listenErr; err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (s *Server) closeDependencies() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Close(); err != nil {
		logger.Warnf("Failed to close redis client: %v", err)
	}
}
