package health

import (
	"context"
	"sync"
	"time"

	"github.com/phase2-labs/demo-api/apis/common"
	"github.com/phase2-labs/demo-api/internal/version"
	"github.com/phase2-labs/demo-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// startTime is captured once when the package is initialised.
var startTime = time.Now()

// Uptime returns the seconds elapsed since process start.
func Uptime() float64 {
	return time.Since(startTime).Seconds()
}

// HealthHandler handles liveness requests. It never checks dependencies.
func HealthHandler(c *fiber.Ctx) error {
	return c.JSON(common.HealthResponse{
		Status:  StatusHealthy,
		Version: version.APIVersion,
		Uptime:  Uptime(),
	})
}

// Handler serves the readiness endpoint.
type Handler struct {
	checkers []Checker
	timeout  time.Duration
}

// NewHandler creates a readiness handler that runs every checker within timeout.
func NewHandler(timeout time.Duration, checkers ...Checker) *Handler {
	return &Handler{
		checkers: checkers,
		timeout:  timeout,
	}
}

// ReadinessHandler runs all checks concurrently and answers 503 if any failed.
func (h *Handler) ReadinessHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	response := ReadinessResponse{
		Status:  StatusReady,
		Version: version.APIVersion,
		Checks:  h.run(ctx),
	}

	code := fiber.StatusOK
	for name, result := range response.Checks {
		if result.Status != CheckUp {
			response.Status = StatusNotReady
			code = fiber.StatusServiceUnavailable
			logger.Warnf("Readiness check %s failed: %s", name, result.Error)
		}
	}

	return c.Status(code).JSON(response)
}

func (h *Handler) run(ctx context.Context) map[string]CheckResult {
	results := make(map[string]CheckResult, len(h.checkers))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, checker := range h.checkers {
		wg.Add(1)
		go func(checker Checker) {
			defer wg.Done()
			result := CheckResult{Status: CheckUp}
			if err := checker.Check(ctx); err != nil {
				result = CheckResult{Status: CheckDown, Error: err.Error()}
			}
			mu.Lock()
			results[checker.Name()] = result
			mu.Unlock()
		}(checker)
	}
	wg.Wait()

	return results
}
