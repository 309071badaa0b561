package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/app/controllers"
	"github.com/ManuelReschke/GritGym/internal/pkg/middleware"
	"github.com/ManuelReschke/GritGym/internal/pkg/oauth"
	"github.com/ManuelReschke/GritGym/internal/pkg/session"
)

type HttpRouter struct {
	services Services
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	if session.GetSessionStore() == nil {
		session.NewSessionStore()
	}

	if oauth.Enabled() {
		oauth.Setup()
	}

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	controllers.InitializeControllers(controllers.Dependencies{
		Catalog:     h.services.Catalog,
		Intake:      h.services.Intake,
		Moderation:  h.services.Moderation,
		Methods:     h.services.Methods,
		Captcha:     h.services.Captcha,
		CaptchaSite: h.services.Captcha.SiteKey,
		Users:       h.services.Users,
		Counter:     h.services.Payments,
	})

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter(s Services) *HttpRouter {
	return &HttpRouter{services: s}
}
