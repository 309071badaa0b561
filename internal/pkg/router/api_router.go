package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/GritGym/app/controllers"
	apiv1 "github.com/ManuelReschke/GritGym/internal/api/v1"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/middleware"
)

// APIRouter mounts the JSON API under /api/v1
type APIRouter struct {
	services Services
}

func NewAPIRouter(s Services) *APIRouter {
	return &APIRouter{services: s}
}

// apiLimiter allows API_RATE_LIMIT requests per client IP and minute
func apiLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          env.GetEnvInt("API_RATE_LIMIT", 60),
		Expiration:   time.Minute,
		KeyGenerator: controllers.GetClientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(apiv1.Error{
				Error:   "rate_limited",
				Message: "too many requests, try again in a minute",
			})
		},
	})
}

func (r APIRouter) InstallRouter(app *fiber.App) {
	v1 := app.Group("/api/v1", apiLimiter())
	server := apiv1.NewAPIServer(r.services.Catalog, r.services.Moderation)
	apiv1.RegisterHandlers(v1, server, middleware.RequireAPIAdmin)
}
