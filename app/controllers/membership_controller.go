package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
	"github.com/ManuelReschke/GritGym/internal/pkg/metrics"
	"github.com/ManuelReschke/GritGym/internal/pkg/session"
)

const membershipPath = "/membership"

// CaptchaVerifier checks a captcha token when enabled
type CaptchaVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) (bool, error)
}

// MembershipController drives the payment intake wizard. The wizard lives in the visitor's session.
type MembershipController struct {
	catalog     membership.Catalog
	intake      *membership.IntakeService
	methods     []membership.PaymentMethodInfo
	captcha     CaptchaVerifier
	captchaSite string
	now         func() time.Time
}

func NewMembershipController(catalog membership.Catalog, intake *membership.IntakeService, methods []membership.PaymentMethodInfo, captcha CaptchaVerifier, captchaSite string) *MembershipController {
	return &MembershipController{
		catalog:     catalog,
		intake:      intake,
		methods:     methods,
		captcha:     captcha,
		captchaSite: captchaSite,
		now:         time.Now,
	}
}

// loadWizard returns the session wizard; a receipt past its display window starts over.
func (mc *MembershipController) loadWizard(c *fiber.Ctx) membership.Wizard {
	w, ok := session.GetWizard(c)
	if !ok || w.Expired(mc.now()) {
		return membership.NewWizard(nil)
	}
	return w
}

func (mc *MembershipController) apply(w membership.Wizard, ev membership.Event) (membership.Wizard, error) {
	from := w.Step
	next, err := membership.Transition(w, ev)
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	metrics.WizardTransitions.WithLabelValues(from.String(), outcome).Inc()
	return next, err
}

// advance applies events in order, stopping at the first failure, and stores the result.
func (mc *MembershipController) advance(c *fiber.Ctx, events ...membership.Event) error {
	w := mc.loadWizard(c)
	var err error
	for _, ev := range events {
		if w, err = mc.apply(w, ev); err != nil {
			break
		}
	}
	if saveErr := session.SaveWizard(c, w); saveErr != nil {
		log.Errorf("[Membership] Could not store wizard: %v", saveErr)
		return flashError(c, membership.SubmitFailedMessage, membershipPath)
	}
	if err != nil && !errors.Is(err, membership.ErrInvalidTransition) {
		return flashError(c, membership.UserMessage(err), membershipPath)
	}
	return c.Redirect(membershipPath, fiber.StatusSeeOther)
}

func (mc *MembershipController) methodInfo(id string) *membership.PaymentMethodInfo {
	for i := range mc.methods {
		if mc.methods[i].ID == id {
			return &mc.methods[i]
		}
	}
	return nil
}

func (mc *MembershipController) captchaRequired(c *fiber.Ctx) bool {
	return mc.captcha != nil && mc.captcha.Enabled() && !isLoggedIn(c)
}

// HandleShow renders the current wizard step. ?plan= preselects a plan and skips step 1.
func (mc *MembershipController) HandleShow(c *fiber.Ctx) error {
	w := mc.loadWizard(c)
	if name := c.Query("plan"); name != "" {
		// a wizard past step 1 keeps its data
		if w.Step != membership.ChoosePlan {
			return c.Redirect(membershipPath, fiber.StatusSeeOther)
		}
		if plan, err := mc.catalog.Lookup(name); err == nil {
			snapshot := plan.Snapshot()
			w = membership.NewWizard(&snapshot)
		}
	}
	if err := session.SaveWizard(c, w); err != nil {
		log.Errorf("[Membership] Could not store wizard: %v", err)
	}

	data := fiber.Map{
		"Wizard":       w,
		"Step":         int(w.Step),
		"StepName":     w.Step.String(),
		"Plans":        mc.catalog.Plans(),
		"Methods":      mc.methods,
		"Method":       mc.methodInfo(w.PaymentMethod),
		"PlanName":     w.PlanName(),
		"AmountLabel":  membership.FormatPeso(membership.ParseAmount(w.Amount)),
		"RefreshAfter": int(membership.ConfirmationWindow / time.Second),
		"CaptchaSite":  "",
		"SelectedPlan": "",
		"RefreshPage":  w.Step == membership.Submitted,
	}
	if w.Plan != nil {
		data["SelectedPlan"] = w.Plan.Name
	}
	if w.Receipt != nil {
		data["ReceiptAmount"] = membership.FormatPeso(membership.ParseAmount(w.Receipt.Amount))
	}
	if mc.captchaRequired(c) {
		data["CaptchaSite"] = mc.captchaSite
	}
	return render(c, "membership/wizard", "Membership", data)
}

// HandlePlan selects a plan and moves on to the payment method
func (mc *MembershipController) HandlePlan(c *fiber.Ctx) error {
	events := make([]membership.Event, 0, 2)
	if plan, err := mc.catalog.Lookup(c.FormValue("plan")); err == nil {
		events = append(events, membership.SelectPlan{Plan: plan.Snapshot()})
	}
	events = append(events, membership.Next{})
	return mc.advance(c, events...)
}

// HandleMethod records the wallet provider and moves on to the details form
func (mc *MembershipController) HandleMethod(c *fiber.Ctx) error {
	return mc.advance(c, membership.ChooseMethod{Method: c.FormValue("payment_method")}, membership.Next{})
}

// HandleDetails stores the details form and moves on to the review when it validates
func (mc *MembershipController) HandleDetails(c *fiber.Ctx) error {
	var details membership.Details
	if err := c.BodyParser(&details); err != nil {
		return flashError(c, "Invalid form data", membershipPath)
	}
	return mc.advance(c, membership.UpdateDetails{Details: details}, membership.Next{})
}

// HandleBack steps back one page. On the details page the typed values are
// kept without validating them.
func (mc *MembershipController) HandleBack(c *fiber.Ctx) error {
	if mc.loadWizard(c).Step == membership.EnterDetails {
		var details membership.Details
		if err := c.BodyParser(&details); err == nil {
			return mc.advance(c, membership.UpdateDetails{Details: details}, membership.Back{})
		}
	}
	return mc.advance(c, membership.Back{})
}

// HandleClose discards the wizard
func (mc *MembershipController) HandleClose(c *fiber.Ctx) error {
	if err := session.ClearWizard(c); err != nil {
		log.Warnf("[Membership] Could not clear wizard: %v", err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleSubmit stores the application and shows the receipt
func (mc *MembershipController) HandleSubmit(c *fiber.Ctx) error {
	w := mc.loadWizard(c)
	if w.Step != membership.Review {
		return c.Redirect(membershipPath, fiber.StatusSeeOther)
	}

	if mc.captchaRequired(c) {
		ok, err := mc.captcha.Verify(c.UserContext(), c.FormValue("h-captcha-response"))
		if err != nil || !ok {
			log.Warnf("[Membership] Captcha rejected from %s: %v", GetClientIP(c), err)
			return flashError(c, membership.UserMessage(membership.ErrVerificationFailed), membershipPath)
		}
	}

	next, app, err := mc.intake.Submit(c.UserContext(), w)
	if err != nil {
		metrics.WizardTransitions.WithLabelValues(w.Step.String(), "failed").Inc()
		return flashError(c, membership.UserMessage(err), membershipPath)
	}
	metrics.WizardTransitions.WithLabelValues(w.Step.String(), "ok").Inc()
	log.Infof("[Membership] Application %s submitted from %s", app.ID, GetClientIP(c))

	if err := session.SaveWizard(c, next); err != nil {
		log.Errorf("[Membership] Could not store receipt: %v", err)
	}
	return c.Redirect(membershipPath, fiber.StatusSeeOther)
}
