package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/oauth"
	"github.com/ManuelReschke/GritGym/internal/pkg/session"
	"github.com/ManuelReschke/GritGym/internal/pkg/usercontext"
)

// loginFailedMessage does not tell which part of the login was wrong
const loginFailedMessage = "There is a problem with the login process"

var errNotAdmin = errors.New("account is not an active admin")

// AuthController handles admin login and logout
type AuthController struct {
	users repository.UserRepository
}

func NewAuthController(users repository.UserRepository) *AuthController {
	return &AuthController{users: users}
}

func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		if isLoggedIn(c) {
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		return render(c, "auth/login", "Login", fiber.Map{
			"OAuthEnabled": oauth.Enabled(),
		})
	}

	email := strings.TrimSpace(c.FormValue("email"))
	user, err := ac.users.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Errorf("[Auth] Lookup of %s failed: %v", email, err)
		}
		return flashError(c, loginFailedMessage, "/login")
	}
	if !user.CheckPassword(c.FormValue("password")) {
		return flashError(c, loginFailedMessage, "/login")
	}
	if err := startAdminSession(c, ac.users, user); err != nil {
		if errors.Is(err, errNotAdmin) {
			return flashError(c, loginFailedMessage, "/login")
		}
		log.Errorf("[Auth] Session for %s failed: %v", email, err)
		return flashError(c, "Something went wrong, please try again", "/login")
	}

	return flashSuccess(c, "Welcome back, "+user.Name+"!", "/admin")
}

func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return flashError(c, "logged out (no session)", "/login")
	}
	if err := sess.Destroy(); err != nil {
		log.Errorf("[Auth] Logout failed: %v", err)
		return flashError(c, "Something went wrong, please try again", "/login")
	}

	usercontext.Set(c, usercontext.UserContext{})
	return flashSuccess(c, "You have been logged out.", "/login")
}

// startAdminSession stores an active admin in the app session
func startAdminSession(c *fiber.Ctx, users repository.UserRepository, user *models.User) error {
	if !user.IsAdmin() || !user.IsActive() {
		return errNotAdmin
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	// a fresh id so a pre-login session cookie cannot be reused
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(usercontext.SessionAdminID, user.ID)
	sess.Set(usercontext.SessionName, user.Name)
	sess.Set(usercontext.SessionEmail, user.Email)
	sess.Set(usercontext.SessionIsAdmin, true)
	sess.Set(usercontext.SessionLoggedIn, time.Now().Unix())
	if err := sess.Save(); err != nil {
		return err
	}

	if err := users.UpdateLastLogin(user.ID); err != nil {
		log.Warnf("[Auth] Could not update last login for user %d: %v", user.ID, err)
	}
	return nil
}
