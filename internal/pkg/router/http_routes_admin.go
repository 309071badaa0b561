package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/app/controllers"
	"github.com/ManuelReschke/GritGym/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(group fiber.Router) {
	adminGroup := group.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// Payment moderation
	adminGroup.Get("/payments", controllers.HandleAdminPayments)
	adminGroup.Get("/payments/:id", controllers.HandleAdminPaymentDetail)
	adminGroup.Post("/payments/:id/approve", controllers.HandleAdminPaymentApprove)
	adminGroup.Post("/payments/:id/reject", controllers.HandleAdminPaymentReject)
}
