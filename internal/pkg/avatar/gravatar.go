package avatar

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const defaultSize = 80

// GravatarURL returns the Gravatar image for email, falling back to the mystery person.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = defaultSize
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Sprintf("https://www.gravatar.com/avatar/?s=%d&d=mp", size)
	}

	hash := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=mp", hash, size)
}
