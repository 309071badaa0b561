package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

const loginPath = "/login"

type accessLevel int

const (
	anonymous accessLevel = iota
	member
	admin
)

func access(c *fiber.Ctx) accessLevel {
	uc := usercontext.Get(c)
	switch {
	case !uc.IsLoggedIn:
		return anonymous
	case !uc.IsAdmin:
		return member
	}
	return admin
}

// RequireAuth sends visitors without a session to the login page
func RequireAuth(c *fiber.Ctx) error {
	if access(c) == anonymous {
		return c.Redirect(loginPath, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdmin guards the moderation pages. Logged-in non-admins go back to the landing page.
func RequireAdmin(c *fiber.Ctx) error {
	switch access(c) {
	case anonymous:
		return c.Redirect(loginPath, fiber.StatusSeeOther)
	case member:
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPIAdmin is RequireAdmin for JSON clients: 401 without a session, 403 for non-admins.
func RequireAPIAdmin(c *fiber.Ctx) error {
	switch access(c) {
	case anonymous:
		return apiDenied(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	case member:
		return apiDenied(c, fiber.StatusForbidden, "forbidden", "admin access required")
	}
	return c.Next()
}

func apiDenied(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}
