package jobqueue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/mail"
	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
)

// Mailer delivers one HTML message
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through the mail package and skips silently when SMTP is unset
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, body string) error {
	if !mail.Configured() {
		log.Debugf("[JobQueue] SMTP not configured, skipping mail %q to %s", subject, to)
		return nil
	}
	return mail.SendMail(to, subject, body)
}

var (
	receivedMemberTmpl = template.Must(template.New("received_member").Parse(
		`<p>Hi {{.FullName}},</p>
<p>We received your {{.Plan}} payment of {{.Amount}} via {{.Method}} (reference {{.ReferenceNumber}}).</p>
<p>Our staff will verify it shortly. Your application ID is <strong>{{.ID}}</strong>.</p>
<p>See you at the gym!</p>`))

	receivedAdminTmpl = template.Must(template.New("received_admin").Parse(
		`<p>New payment application waiting for review.</p>
<ul>
<li>Name: {{.FullName}}</li>
<li>Plan: {{.Plan}}</li>
<li>Amount: {{.Amount}}</li>
<li>Method: {{.Method}}</li>
<li>Reference: {{.ReferenceNumber}}</li>
</ul>`))

	decidedMemberTmpl = template.Must(template.New("decided_member").Parse(
		`<p>Hi {{.FullName}},</p>
{{if eq .Status "approved"}}<p>Your {{.Plan}} membership payment (reference {{.ReferenceNumber}}) has been <strong>approved</strong>. Welcome to the gym!</p>
{{else}}<p>We could not verify your {{.Plan}} payment (reference {{.ReferenceNumber}}). Please contact the front desk.</p>
{{end}}`))
)

type mailView struct {
	ID              string
	FullName        string
	Plan            string
	Amount          string
	Method          string
	ReferenceNumber string
	Status          string
}

func newMailView(app models.PaymentApplication) mailView {
	return mailView{
		ID:              app.ID,
		FullName:        app.FullName,
		Plan:            app.PlanLabel(),
		Amount:          membership.FormatPeso(app.Amount),
		Method:          methodLabel(app.PaymentMethod),
		ReferenceNumber: app.ReferenceNumber,
		Status:          app.Status,
	}
}

func methodLabel(m string) string {
	switch m {
	case models.PaymentMethodGCash:
		return "GCash"
	case models.PaymentMethodMaya:
		return "Maya"
	}
	return m
}

func render(t *template.Template, v mailView) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// processApplicationReceived mails the member and the admin inbox
func (q *Queue) processApplicationReceived(_ context.Context, payload ApplicationEvent) error {
	v := newMailView(payload.Application)

	var errs []error
	if payload.Application.Email != "" {
		body, err := render(receivedMemberTmpl, v)
		if err != nil {
			return err
		}
		if err := q.mailer.Send(payload.Application.Email, "We received your payment", body); err != nil {
			errs = append(errs, fmt.Errorf("member mail: %w", err))
		}
	}

	if admin := env.GetEnv("MAIL_ADMIN", ""); admin != "" {
		body, err := render(receivedAdminTmpl, v)
		if err != nil {
			return err
		}
		subject := fmt.Sprintf("New payment application: %s", v.FullName)
		if err := q.mailer.Send(admin, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("admin mail: %w", err))
		}
	}

	return errors.Join(errs...)
}

// notifyDecision mails the member about an approve or reject
func (q *Queue) notifyDecision(app models.PaymentApplication) error {
	if app.Email == "" {
		return nil
	}
	body, err := render(decidedMemberTmpl, newMailView(app))
	if err != nil {
		return err
	}
	subject := "Your membership payment was approved"
	if app.Status == models.PaymentStatusRejected {
		subject = "Your membership payment could not be verified"
	}
	return q.mailer.Send(app.Email, subject, body)
}
