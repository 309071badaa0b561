package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

func appWithUser(uc usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.Set(c, uc)
		return c.Next()
	})
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/admin", RequireAdmin, ok)
	app.Get("/account", RequireAuth, ok)
	app.Get("/api/admin", RequireAPIAdmin, ok)
	return app
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		user     usercontext.UserContext
		status   int
		location string
	}{
		{"anonymous", usercontext.UserContext{}, fiber.StatusSeeOther, "/login"},
		{"member", usercontext.UserContext{UserID: 2, IsLoggedIn: true}, fiber.StatusSeeOther, "/"},
		{"admin", usercontext.UserContext{UserID: 1, IsLoggedIn: true, IsAdmin: true}, fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := appWithUser(tt.user).Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	resp, err := appWithUser(usercontext.UserContext{}).Test(httptest.NewRequest(fiber.MethodGet, "/account", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, err = appWithUser(usercontext.UserContext{UserID: 2, IsLoggedIn: true}).Test(httptest.NewRequest(fiber.MethodGet, "/account", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAPIAdmin(t *testing.T) {
	resp, err := appWithUser(usercontext.UserContext{}).Test(httptest.NewRequest(fiber.MethodGet, "/api/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = appWithUser(usercontext.UserContext{UserID: 2, IsLoggedIn: true}).Test(httptest.NewRequest(fiber.MethodGet, "/api/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = appWithUser(usercontext.UserContext{UserID: 1, IsLoggedIn: true, IsAdmin: true}).Test(httptest.NewRequest(fiber.MethodGet, "/api/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
