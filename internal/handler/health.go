package handler

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	credentialsPath string
	rdb             *redis.Client
	startAt         time.Time
}

func NewHealthHandler(credentialsPath string, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		credentialsPath: credentialsPath,
		rdb:             rdb,
		startAt:         time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	// The credential file is the only hard dependency.
	checks["credentialStore"] = checkCredentialFile(h.credentialsPath)
	if fileCheck, ok := checks["credentialStore"].(fiber.Map); ok {
		if fileCheck["status"] != "up" {
			overallStatus = "degraded"
		}
	}

	// Redis is optional; report it only when configured.
	if h.rdb != nil {
		checks["redis"] = checkRedis(ctx, h.rdb)
		if redisCheck, ok := checks["redis"].(fiber.Map); ok {
			if redisCheck["status"] != "up" && overallStatus == "healthy" {
				overallStatus = "degraded"
			}
		}
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  overallStatus,
		"uptime":  time.Since(h.startAt).Round(time.Second).String(),
		"checks":  checks,
		"checked": time.Now().UTC(),
	})
}

func checkCredentialFile(path string) fiber.Map {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fiber.Map{"status": "down", "error": "credential file not readable"}
	}
	return fiber.Map{"status": "up"}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	start := time.Now()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fiber.Map{"status": "down", "error": err.Error()}
	}
	return fiber.Map{
		"status":  "up",
		"latency": time.Since(start).String(),
	}
}
