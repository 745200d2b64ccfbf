package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"clouddocs/internal/session"
)

// SessionLocalKey is the key under which the parsed session is stored in
// Fiber's context locals.
const SessionLocalKey = "session"

// Authenticate verifies the Bearer token and stores the resulting session in
// context locals. Requests without a valid token are rejected before any
// store call happens.
func Authenticate(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			return fiber.ErrUnauthorized
		}

		sess, err := session.FromToken(token, secret)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(SessionLocalKey, sess)
		return c.Next()
	}
}

// SessionFromCtx extracts the session stored by Authenticate, or nil.
func SessionFromCtx(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(SessionLocalKey).(*session.Session)
	return sess
}
