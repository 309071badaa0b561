// Package hcaptcha verifies the widget token posted with the review step.
package hcaptcha

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

const (
	DefaultEndpoint = "https://api.hcaptcha.com/siteverify"
	defaultTimeout  = 10 * time.Second
)

var (
	ErrEmptyToken = errors.New("hcaptcha: empty token")
	ErrNoSecret   = errors.New("hcaptcha: secret not set")
)

// RejectedError is returned when the service answered success=false
type RejectedError struct {
	Codes []string
}

func (e *RejectedError) Error() string {
	if len(e.Codes) == 0 {
		return "hcaptcha: rejected"
	}
	return "hcaptcha: rejected: " + strings.Join(e.Codes, ", ")
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verifier posts tokens to the siteverify endpoint
type Verifier struct {
	SiteKey  string
	Secret   string
	Endpoint string
	Timeout  time.Duration
}

// NewVerifier reads HCAPTCHA_SITEKEY and HCAPTCHA_SECRET
func NewVerifier() *Verifier {
	return &Verifier{
		SiteKey:  env.GetEnv("HCAPTCHA_SITEKEY", ""),
		Secret:   env.GetEnv("HCAPTCHA_SECRET", ""),
		Endpoint: DefaultEndpoint,
		Timeout:  defaultTimeout,
	}
}

// Enabled reports whether a secret is configured
func (v *Verifier) Enabled() bool {
	return v != nil && v.Secret != ""
}

func (v *Verifier) timeout(ctx context.Context) time.Duration {
	d := v.Timeout
	if d <= 0 {
		d = defaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	return d
}

// Verify reports whether token is a solved challenge. A false result always comes with an error.
func (v *Verifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, ErrEmptyToken
	}
	if v.Secret == "" {
		return false, ErrNoSecret
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	form := url.Values{"secret": {v.Secret}, "response": {token}}
	agent := fiber.Post(v.Endpoint).
		ContentType(fiber.MIMEApplicationForm).
		BodyString(form.Encode()).
		Timeout(v.timeout(ctx))

	var res siteverifyResponse
	status, _, errs := agent.Struct(&res)
	if len(errs) > 0 {
		return false, fmt.Errorf("hcaptcha: siteverify: %w", errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		return false, fmt.Errorf("hcaptcha: siteverify returned %d", status)
	}
	if !res.Success {
		return false, &RejectedError{Codes: res.ErrorCodes}
	}
	return true, nil
}
