package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"studynotes/internal/model"
)

// IdentityLocalKey is the key under which Identify stores the caller's model.Identity.
const IdentityLocalKey = "identity"

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// Identify resolves the caller from the Authorization bearer token or, failing that, the session cookie.
// A missing or invalid token leaves the caller anonymous; it never rejects the request.
func Identify(v TokenVerifier, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		if h := c.Get(fiber.HeaderAuthorization); h != "" {
			if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
				token = strings.TrimSpace(rest)
			}
		}
		if token == "" && cookieName != "" {
			token = c.Cookies(cookieName)
		}

		id := model.Identity{}
		if token != "" {
			if resolved, err := v.Verify(token); err == nil {
				id = resolved
			}
		}
		c.Locals(IdentityLocalKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by Identify, or the anonymous identity.
func IdentityFrom(c *fiber.Ctx) model.Identity {
	if id, ok := c.Locals(IdentityLocalKey).(model.Identity); ok {
		return id
	}
	return model.Identity{}
}

// RequireIdentity rejects anonymous callers with 401.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IdentityFrom(c).Known() {
			return fiber.NewError(fiber.StatusUnauthorized, "sign in required")
		}
		return c.Next()
	}
}
