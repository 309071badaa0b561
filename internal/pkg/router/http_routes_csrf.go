package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/ManuelReschke/GritGym/app/controllers"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/middleware"
)

// csrfConfig expects the token in the _csrf form field. The JSON API authenticates by session and is skipped.
func csrfConfig() csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "gritgym_csrf",
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   !env.IsDev(),
		Expiration:     time.Hour,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}
}

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	pages := app.Group("", csrf.New(csrfConfig()))
	pages.Get("/", controllers.HandleStart)

	wizard := pages.Group("/membership")
	wizard.Get("", controllers.HandleMembership)
	wizard.Post("/plan", controllers.HandleMembershipPlan)
	wizard.Post("/method", controllers.HandleMembershipMethod)
	wizard.Post("/details", controllers.HandleMembershipDetails)
	wizard.Post("/back", controllers.HandleMembershipBack)
	wizard.Post("/submit", controllers.HandleMembershipSubmit)
	wizard.Post("/close", controllers.HandleMembershipClose)

	pages.Get("/login", controllers.HandleAuthLogin)
	pages.Post("/login", controllers.HandleAuthLogin)
	pages.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	h.registerAdminRoutes(pages)
}
