package hookx

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the secrets a webhook must present. An empty value
// disables that method; with both empty every request is accepted.
type Credentials struct {
	Username     string
	PasswordHash string
	Token        string
}

// Enabled reports whether any auth method is configured.
func (cr Credentials) Enabled() bool {
	return cr.Username != "" || cr.Token != ""
}

// Check reports whether the request carries valid credentials. Either
// method is sufficient.
func (cr Credentials) Check(c *fiber.Ctx) bool {
	if !cr.Enabled() {
		return true
	}
	if cr.Token != "" {
		got := c.Get(TokenHeader)
		if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(cr.Token)) == 1 {
			return true
		}
	}
	if cr.Username != "" {
		if user, pass, ok := basicAuth(c); ok {
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cr.Username)) == 1
			passOK := bcrypt.CompareHashAndPassword([]byte(cr.PasswordHash), []byte(pass)) == nil
			return userOK && passOK
		}
	}
	return false
}

// Authenticate rejects requests without valid credentials.
func (cr Credentials) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cr.Check(c) {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="sparkpost-webhooks"`)
			return hookErrors.New(ErrUnauthorized).WithDetail("path", c.Path())
		}
		return c.Next()
	}
}

func basicAuth(c *fiber.Ctx) (string, string, bool) {
	encoded, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Basic ")
	if !ok {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(raw), ":")
}
