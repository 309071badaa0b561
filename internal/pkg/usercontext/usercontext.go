// Package usercontext carries the signed-in staff member through a request.
package usercontext

import "github.com/gofiber/fiber/v2"

// UserContext is the login state of the current request. The zero value is an anonymous visitor.
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"is_logged_in"`
	IsAdmin    bool   `json:"is_admin"`
}

// Get returns the user context stored by Set, or an anonymous one
func Get(c *fiber.Ctx) UserContext {
	if uc, ok := c.Locals(localsKey).(UserContext); ok {
		return uc
	}
	return UserContext{}
}

func Set(c *fiber.Ctx, uc UserContext) {
	c.Locals(localsKey, uc)
}

func IsLoggedIn(c *fiber.Ctx) bool {
	return Get(c).IsLoggedIn
}

// IsAdmin is true only for logged-in admins
func IsAdmin(c *fiber.Ctx) bool {
	uc := Get(c)
	return uc.IsLoggedIn && uc.IsAdmin
}

// Actor names the logged-in user in audit records, preferring the email
func Actor(c *fiber.Ctx) string {
	uc := Get(c)
	if uc.Email != "" {
		return uc.Email
	}
	return uc.Username
}
