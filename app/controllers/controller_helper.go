package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/GritGym/internal/pkg/avatar"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

const (
	layoutMain = "layouts/main"
	siteTitle  = "Grit Gym"
)

func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

// render fills the layout fields shared by every page and renders view inside the main layout
func render(c *fiber.Ctx, view string, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	uc := usercontext.Get(c)
	data["Title"] = siteTitle
	if title != "" {
		data["Title"] = title + " | " + siteTitle
	}
	data["LoggedIn"] = uc.IsLoggedIn
	data["IsAdmin"] = uc.IsAdmin
	data["Username"] = uc.Username
	if uc.IsLoggedIn {
		data["Avatar"] = avatar.GravatarURL(uc.Email, 32)
	}
	data["Flash"] = flash.Get(c)
	data["CSRF"] = csrfToken(c)
	data["IsDev"] = env.IsDev()
	return c.Render(view, data, layoutMain)
}

func flashError(c *fiber.Ctx, message string, path string) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect(path, fiber.StatusSeeOther)
}

func flashSuccess(c *fiber.Ctx, message string, path string) error {
	fm := fiber.Map{
		"type":    "success",
		"message": message,
	}
	return flash.WithSuccess(c, fm).Redirect(path, fiber.StatusSeeOther)
}

// GetClientIP determines the client address behind Cloudflare or a reverse proxy
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := strings.TrimSpace(c.Get("CF-Connecting-IP")); cfIP != "" {
		return cfIP
	}
	// the first X-Forwarded-For entry is the original client
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return strings.TrimPrefix(c.IP(), "::ffff:")
}
