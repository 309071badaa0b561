package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/markbates/goth"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
)

// OAuthController signs in existing admins through a hosted identity provider
type OAuthController struct {
	users    repository.UserRepository
	complete func(c *fiber.Ctx) (goth.User, error)
}

func NewOAuthController(users repository.UserRepository) *OAuthController {
	return &OAuthController{
		users: users,
		complete: func(c *fiber.Ctx) (goth.User, error) {
			return gothfiber.CompleteUserAuth(c)
		},
	}
}

// HandleCallback completes the provider flow. Only emails of existing admins are accepted;
// no accounts are created here.
func (oc *OAuthController) HandleCallback(c *fiber.Ctx) error {
	u, err := oc.complete(c)
	if err != nil {
		log.Warnf("[OAuth] Provider flow failed: %v", err)
		return flashError(c, "Sign-in with the provider failed", "/login")
	}

	email := strings.TrimSpace(u.Email)
	if email == "" {
		return flashError(c, loginFailedMessage, "/login")
	}
	user, err := oc.users.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Errorf("[OAuth] Lookup of %s failed: %v", email, err)
		}
		return flashError(c, loginFailedMessage, "/login")
	}
	if !user.IsAdmin() || !user.IsActive() {
		return flashError(c, loginFailedMessage, "/login")
	}

	var exp *time.Time
	if !u.ExpiresAt.IsZero() {
		t := u.ExpiresAt
		exp = &t
	}
	if err := oc.users.LinkProviderAccount(&models.ProviderAccount{
		UserID:         user.ID,
		Provider:       u.Provider,
		ProviderUserID: u.UserID,
		Email:          email,
		AccessToken:    u.AccessToken,
		RefreshToken:   u.RefreshToken,
		ExpiresAt:      exp,
	}); err != nil {
		log.Errorf("[OAuth] Linking %s account for user %d failed: %v", u.Provider, user.ID, err)
	}
	if user.AvatarURL == "" && u.AvatarURL != "" {
		user.AvatarURL = u.AvatarURL
		if err := oc.users.Update(user); err != nil {
			log.Warnf("[OAuth] Could not store avatar for user %d: %v", user.ID, err)
		}
	}

	if err := startAdminSession(c, oc.users, user); err != nil {
		log.Errorf("[OAuth] Session for %s failed: %v", email, err)
		return flashError(c, "Something went wrong, please try again", "/login")
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}
