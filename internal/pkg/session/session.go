package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/GritGym/internal/pkg/cache"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
)

const wizardKey = "membership_wizard"

var (
	sessionStore *session.Store
	errNoStore   = errors.New("session store not initialized")
)

// NewSessionStore keeps visitor sessions in the cache server's session database.
func NewSessionStore() *session.Store {
	sessionStore = session.New(session.Config{
		Storage:        redis.New(cache.StorageConfig(cache.DBSessions)),
		CookieHTTPOnly: true,
		CookieSecure:   !env.IsDev(),
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		Expiration:     time.Hour,
		KeyLookup:      "cookie:gritgym_session",
	})
	return sessionStore
}

// UseStore installs an already configured store
func UseStore(store *session.Store) {
	sessionStore = store
}

func GetSessionStore() *session.Store {
	return sessionStore
}

// SetSessionValue stores a key-value pair in the user's individual session
func SetSessionValue(c *fiber.Ctx, key string, value string) error {
	if sessionStore == nil {
		return errNoStore
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return err
	}

	sess.Set(key, value)
	return sess.Save()
}

// GetSessionValue retrieves a value by key from the user's individual session
func GetSessionValue(c *fiber.Ctx, key string) string {
	if sessionStore == nil {
		return ""
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}

	if strValue, ok := sess.Get(key).(string); ok {
		return strValue
	}
	return ""
}

// GetWizard loads the visitor's wizard. ok is false when none is stored or it cannot be decoded.
func GetWizard(c *fiber.Ctx) (w membership.Wizard, ok bool) {
	raw := GetSessionValue(c, wizardKey)
	if raw == "" {
		return membership.Wizard{}, false
	}
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return membership.Wizard{}, false
	}
	return w, true
}

// SaveWizard stores the wizard in the visitor's session
func SaveWizard(c *fiber.Ctx, w membership.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return SetSessionValue(c, wizardKey, string(data))
}

// ClearWizard removes the wizard from the visitor's session
func ClearWizard(c *fiber.Ctx) error {
	if sessionStore == nil {
		return errNoStore
	}
	sess, err := sessionStore.Get(c)
	if err != nil {
		return err
	}
	sess.Delete(wizardKey)
	return sess.Save()
}
