package middleware

import (
	"github.com/gofiber/fiber/v2"

	"wakili/internal/identity"
)

const (
	// CallerIDHeader carries the opaque caller identifier supplied by the
	// upstream identity subsystem.
	CallerIDHeader = "X-Caller-ID"
	// CallerLocalKey is the key used to store the caller in Fiber's context locals.
	CallerLocalKey = "caller_id"
)

// CallerIdentity extracts the authenticated caller identifier from the
// request and stores it in context locals. A missing or blank header maps to
// the anonymous sentinel; rejecting anonymous callers is left to the service
// layer so every operation applies the same guard.
func CallerIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(CallerIDHeader)
		if id == "" {
			c.Locals(CallerLocalKey, identity.Anonymous)
		} else {
			c.Locals(CallerLocalKey, identity.Caller(id))
		}
		return c.Next()
	}
}

// CallerFromCtx returns the caller stored by CallerIdentity, or the anonymous
// sentinel when the middleware did not run.
func CallerFromCtx(c *fiber.Ctx) identity.Caller {
	if v := c.Locals(CallerLocalKey); v != nil {
		if caller, ok := v.(identity.Caller); ok {
			return caller
		}
	}
	return identity.Anonymous
}
