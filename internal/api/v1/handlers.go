package apiv1

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
	"github.com/ManuelReschke/GritGym/internal/pkg/statistics"
	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

// APIServer implements the ServerInterface
type APIServer struct {
	catalog membership.Catalog
	queue   *membership.ModerationQueue
}

// NewAPIServer creates a new API server instance
func NewAPIServer(catalog membership.Catalog, queue *membership.ModerationQueue) *APIServer {
	return &APIServer{catalog: catalog, queue: queue}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// ListPlans returns the membership plans in display order
func (s *APIServer) ListPlans(c *fiber.Ctx) error {
	plans := s.catalog.Plans()
	out := PlanList{Plans: make([]Plan, 0, len(plans))}
	for _, p := range plans {
		features := p.Features
		if features == nil {
			features = []string{}
		}
		out.Plans = append(out.Plans, Plan{
			Name:          p.Name,
			Price:         p.Price,
			PriceLabel:    p.PriceLabel(),
			Period:        p.Period,
			OriginalPrice: p.OriginalPrice,
			SavingsLabel:  p.SavingsLabel,
			Features:      features,
			Highlighted:   p.Highlighted,
			Badge:         p.Badge,
			Description:   p.Description,
		})
	}
	return c.JSON(out)
}

// ListPayments returns the filtered moderation queue and the stats over all applications
func (s *APIServer) ListPayments(c *fiber.Ctx, params ListPaymentsParams) error {
	filter := membership.Filter{}
	if params.Status != nil {
		filter.Status = *params.Status
	}
	if params.Q != nil {
		filter.Search = *params.Q
	}

	apps, err := s.queue.List(c.UserContext(), filter)
	if errors.Is(err, membership.ErrUnknownStatus) {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "unknown status filter")
	}
	if err != nil {
		return internalError(c, err)
	}
	stats, err := s.queue.Stats(c.UserContext())
	if err != nil {
		return internalError(c, err)
	}

	out := PaymentList{
		Payments: make([]Payment, 0, len(apps)),
		Stats: PaymentStats{
			Total:    stats.Total,
			Pending:  stats.Pending,
			Approved: stats.Approved,
			Rejected: stats.Rejected,
			Revenue:  stats.Revenue.StringFixed(2),
		},
	}
	for _, app := range apps {
		out.Payments = append(out.Payments, toPayment(app))
	}
	return c.JSON(out)
}

func (s *APIServer) GetPayment(c *fiber.Ctx, id string) error {
	app, err := s.queue.Get(c.UserContext(), id)
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(toPayment(*app))
}

func (s *APIServer) ApprovePayment(c *fiber.Ctx, id string) error {
	app, err := s.queue.Approve(c.UserContext(), id, usercontext.Actor(c))
	if err != nil {
		return moderationError(c, err)
	}
	statistics.Invalidate(c.UserContext())
	return c.JSON(toPayment(*app))
}

func (s *APIServer) RejectPayment(c *fiber.Ctx, id string) error {
	app, err := s.queue.Reject(c.UserContext(), id, usercontext.Actor(c))
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(toPayment(*app))
}

func toPayment(app models.PaymentApplication) Payment {
	return Payment{
		ID:              app.ID,
		FullName:        app.FullName,
		ContactNumber:   app.ContactNumber,
		Email:           app.Email,
		ReferenceNumber: app.ReferenceNumber,
		Amount:          app.Amount.StringFixed(2),
		PaymentMethod:   app.PaymentMethod,
		Plan:            app.PlanLabel(),
		Status:          app.Status,
		EmergencyContact: EmergencyContact{
			Person:        app.EmergencyContact.Person,
			ContactNumber: app.EmergencyContact.ContactNumber,
			Address:       app.EmergencyContact.Address,
		},
		CreatedAt: app.CreatedAt,
	}
}

func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, membership.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "not_found", "payment application not found")
	case errors.Is(err, membership.ErrNotPending):
		return errorJSON(c, fiber.StatusConflict, "not_pending", "payment application is no longer pending")
	case errors.Is(err, membership.ErrStatusConflict):
		return errorJSON(c, fiber.StatusConflict, "conflict", "payment application was decided concurrently")
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	log.Errorf("[API] %s %s failed: %v", c.Method(), c.Path(), err)
	return errorJSON(c, fiber.StatusInternalServerError, "internal_error", "internal server error")
}

func errorJSON(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(Error{Error: code, Message: message})
}
