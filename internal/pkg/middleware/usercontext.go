package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/internal/pkg/session"
	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

// UserContextMiddleware restores the admin login from the session. Visitors stay anonymous.
func UserContextMiddleware(c *fiber.Ctx) error {
	usercontext.Set(c, loadUserContext(c))
	return c.Next()
}

func loadUserContext(c *fiber.Ctx) usercontext.UserContext {
	// goth keeps its own session store on /auth/*
	if strings.HasPrefix(c.Path(), "/auth/") {
		return usercontext.UserContext{}
	}
	store := session.GetSessionStore()
	if store == nil {
		return usercontext.UserContext{}
	}
	sess, err := store.Get(c)
	if err != nil {
		return usercontext.UserContext{}
	}

	id, ok := sess.Get(usercontext.SessionAdminID).(uint)
	if !ok || id == 0 {
		return usercontext.UserContext{}
	}
	uc := usercontext.UserContext{UserID: id, IsLoggedIn: true}
	uc.Username, _ = sess.Get(usercontext.SessionName).(string)
	uc.Email, _ = sess.Get(usercontext.SessionEmail).(string)
	uc.IsAdmin, _ = sess.Get(usercontext.SessionIsAdmin).(bool)
	return uc
}
