package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ManuelReschke/GritGym/app/controllers"
	"github.com/ManuelReschke/GritGym/internal/pkg/oauth"
)

// registerPublicRoutes adds the provider sign-in for admins. The routes only exist when a provider is configured.
func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	if !oauth.Enabled() {
		return
	}
	auth := app.Group("/auth")
	auth.Get("/:provider", gothfiber.BeginAuthHandler)
	auth.Get("/:provider/callback", controllers.HandleOAuthCallback)
}
