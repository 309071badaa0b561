package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/app/controllers"
	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/hcaptcha"
	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Services are the domain services shared by the page and API routes
type Services struct {
	Catalog    membership.Catalog
	Intake     *membership.IntakeService
	Moderation *membership.ModerationQueue
	Methods    []membership.PaymentMethodInfo
	Captcha    *hcaptcha.Verifier
	Users      repository.UserRepository
	Payments   repository.PaymentRepository
}

// NewServices builds the membership services on top of the given stores
func NewServices(payments repository.PaymentRepository, users repository.UserRepository, notifier membership.Notifier) Services {
	return Services{
		Catalog:    membership.DefaultCatalog(),
		Intake:     membership.NewIntakeService(payments, notifier),
		Moderation: membership.NewModerationQueue(payments, notifier),
		Methods:    membership.LoadPaymentMethods(env.GetEnv),
		Captcha:    hcaptcha.NewVerifier(),
		Users:      users,
		Payments:   payments,
	}
}

func InstallRouter(app *fiber.App, s Services) {
	// HttpRouter goes first: it sets up the session store and the
	// UserContext middleware the admin API routes rely on.
	setup(app, NewHttpRouter(s), NewAPIRouter(s))

	app.Use(controllers.HandleNotFound)
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
