package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// SameOrigin rejects state-changing requests that a browser sent from another site.
// Sec-Fetch-Site is preferred; browsers without it are judged by the Origin header.
// Requests carrying neither header (non-browser clients) pass.
func SameOrigin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		if site := c.Get("Sec-Fetch-Site"); site != "" {
			if site == "same-origin" || site == "none" {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusForbidden, "cross-site request")
		}

		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" || u.Host != string(c.Request().Host()) {
			return fiber.NewError(fiber.StatusForbidden, "cross-site request")
		}
		return c.Next()
	}
}
