package apiv1

import (
	"github.com/gofiber/fiber/v2"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// (GET /plans)
	ListPlans(c *fiber.Ctx) error
	// (GET /payments)
	ListPayments(c *fiber.Ctx, params ListPaymentsParams) error
	// (GET /payments/{id})
	GetPayment(c *fiber.Ctx, id string) error
	// (POST /payments/{id}/approve)
	ApprovePayment(c *fiber.Ctx, id string) error
	// (POST /payments/{id}/reject)
	RejectPayment(c *fiber.Ctx, id string) error
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (siw *ServerInterfaceWrapper) GetPing(c *fiber.Ctx) error {
	return siw.Handler.GetPing(c)
}

func (siw *ServerInterfaceWrapper) ListPlans(c *fiber.Ctx) error {
	return siw.Handler.ListPlans(c)
}

func (siw *ServerInterfaceWrapper) ListPayments(c *fiber.Ctx) error {
	var params ListPaymentsParams
	if v := c.Query("status"); v != "" {
		params.Status = &v
	}
	if v := c.Query("q"); v != "" {
		params.Q = &v
	}
	return siw.Handler.ListPayments(c, params)
}

func (siw *ServerInterfaceWrapper) GetPayment(c *fiber.Ctx) error {
	return siw.Handler.GetPayment(c, c.Params("id"))
}

func (siw *ServerInterfaceWrapper) ApprovePayment(c *fiber.Ctx) error {
	return siw.Handler.ApprovePayment(c, c.Params("id"))
}

func (siw *ServerInterfaceWrapper) RejectPayment(c *fiber.Ctx) error {
	return siw.Handler.RejectPayment(c, c.Params("id"))
}

// RegisterHandlers adds each server route to the router. The payment routes run behind admin.
func RegisterHandlers(router fiber.Router, si ServerInterface, admin fiber.Handler) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.Get("/ping", wrapper.GetPing)
	router.Get("/plans", wrapper.ListPlans)

	router.Get("/payments", admin, wrapper.ListPayments)
	router.Get("/payments/:id", admin, wrapper.GetPayment)
	router.Post("/payments/:id/approve", admin, wrapper.ApprovePayment)
	router.Post("/payments/:id/reject", admin, wrapper.RejectPayment)
}
