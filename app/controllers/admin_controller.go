package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
	"github.com/ManuelReschke/GritGym/internal/pkg/statistics"
	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

const (
	adminPaymentsPath = "/admin/payments"
	recentPendingSize = 5
)

// AdminController serves the moderation screens
type AdminController struct {
	queue *membership.ModerationQueue
	users repository.UserRepository
}

// NewAdminController creates a new admin controller with its dependencies
func NewAdminController(queue *membership.ModerationQueue, users repository.UserRepository) *AdminController {
	return &AdminController{
		queue: queue,
		users: users,
	}
}

// HandleDashboard renders the stats cards and the newest pending applications
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	stats, err := ac.queue.Stats(ctx)
	if err != nil {
		return ac.handleError(c, "Failed to load payment statistics", err)
	}

	pending, err := ac.queue.List(ctx, membership.Filter{Status: models.PaymentStatusPending})
	if err != nil {
		return ac.handleError(c, "Failed to load pending payments", err)
	}
	if len(pending) > recentPendingSize {
		pending = pending[:recentPendingSize]
	}

	admins, err := ac.users.Count()
	if err != nil {
		log.Warnf("[Admin] Failed to count users: %v", err)
	}

	return render(c, "admin/dashboard", "Admin Dashboard", fiber.Map{
		"Stats":   stats,
		"Revenue": stats.RevenueLabel(),
		"Pending": paymentRows(pending),
		"Admins":  admins,
	})
}

// HandlePayments renders the moderation queue with status filter and search
func (ac *AdminController) HandlePayments(c *fiber.Ctx) error {
	filter := membership.Filter{
		Status: c.Query("status", membership.StatusAll),
		Search: c.Query("q"),
	}
	apps, err := ac.queue.List(c.UserContext(), filter)
	if errors.Is(err, membership.ErrUnknownStatus) {
		return flashError(c, "Unknown status filter", adminPaymentsPath)
	}
	if err != nil {
		return ac.handleError(c, "Failed to load payments", err)
	}

	return render(c, "admin/payments", "Payments", fiber.Map{
		"Payments": paymentRows(apps),
		"Status":   filter.Status,
		"Search":   filter.Search,
		"Statuses": []string{
			membership.StatusAll,
			models.PaymentStatusPending,
			models.PaymentStatusApproved,
			models.PaymentStatusRejected,
		},
	})
}

// HandlePaymentDetail renders one application. Approve and reject are only offered while pending.
func (ac *AdminController) HandlePaymentDetail(c *fiber.Ctx) error {
	app, err := ac.queue.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, membership.ErrNotFound) {
		return flashError(c, "Payment application not found", adminPaymentsPath)
	}
	if err != nil {
		return ac.handleError(c, "Failed to load payment", err)
	}

	return render(c, "admin/payment_detail", "Payment "+app.ReferenceNumber, fiber.Map{
		"Payment": newPaymentRow(*app),
	})
}

func (ac *AdminController) HandleApprove(c *fiber.Ctx) error {
	return ac.decide(c, models.PaymentStatusApproved)
}

func (ac *AdminController) HandleReject(c *fiber.Ctx) error {
	return ac.decide(c, models.PaymentStatusRejected)
}

func (ac *AdminController) decide(c *fiber.Ctx, status string) error {
	id := c.Params("id")
	detailPath := adminPaymentsPath + "/" + id
	actor := usercontext.Actor(c)

	var err error
	if status == models.PaymentStatusApproved {
		_, err = ac.queue.Approve(c.UserContext(), id, actor)
	} else {
		_, err = ac.queue.Reject(c.UserContext(), id, actor)
	}

	switch {
	case err == nil:
		statistics.Invalidate(c.UserContext())
		return flashSuccess(c, "Payment "+status, detailPath)
	case errors.Is(err, membership.ErrNotFound):
		return flashError(c, "Payment application not found", adminPaymentsPath)
	case errors.Is(err, membership.ErrNotPending):
		return flashError(c, "This payment has already been reviewed", detailPath)
	case errors.Is(err, membership.ErrStatusConflict):
		return flashError(c, "Another admin reviewed this payment first", detailPath)
	}
	return ac.handleError(c, "Failed to update payment status", err)
}

// handleError logs the cause and sends the admin back with a flash message
func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.Errorf("[Admin] %s: %v", message, err)

	redirectPath := "/"
	if c.Path() != "/admin" && c.Path() != "/admin/" {
		redirectPath = "/admin"
	}
	return flashError(c, message, redirectPath)
}

// paymentRow is an application prepared for the admin templates
type paymentRow struct {
	models.PaymentApplication
	PlanName    string
	AmountLabel string
	CreatedAt   string
	IsPending   bool
}

func newPaymentRow(app models.PaymentApplication) paymentRow {
	return paymentRow{
		PaymentApplication: app,
		PlanName:           app.PlanLabel(),
		AmountLabel:        membership.FormatPeso(app.Amount),
		CreatedAt:          app.CreatedAt.Format("Jan 2, 2006 15:04"),
		IsPending:          app.IsPending(),
	}
}

func paymentRows(apps []models.PaymentApplication) []paymentRow {
	rows := make([]paymentRow, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, newPaymentRow(app))
	}
	return rows
}
