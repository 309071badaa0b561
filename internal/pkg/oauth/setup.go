package oauth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ManuelReschke/GritGym/internal/pkg/cache"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// Enabled reports whether Google credentials are configured
func Enabled() bool {
	return env.GetEnv("GOOGLE_KEY", "") != "" && env.GetEnv("GOOGLE_SECRET", "") != ""
}

// CallbackURL is the absolute redirect target registered with the provider
func CallbackURL(provider string) string {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}
	return base + "/auth/" + provider + "/callback"
}

// Setup registers the Google provider for admin sign-in and the OAuth state store.
// Calling it again re-registers the provider.
func Setup() {
	goth.UseProviders(
		google.New(
			env.GetEnv("GOOGLE_KEY", ""),
			env.GetEnv("GOOGLE_SECRET", ""),
			CallbackURL("google"),
			"email", "profile",
		),
	)

	gothfiber.SessionStore = session.New(session.Config{
		Storage:        redisstorage.New(cache.StorageConfig(cache.DBOAuth)),
		KeyLookup:      "cookie:" + gothic.SessionName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     72 * time.Hour,
	})
}
