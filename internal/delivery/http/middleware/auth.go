package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "multipart-uploader/pkg/errors"
)

const callerKey = "caller"

// TokenValidator returns the subject of a valid bearer token.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token subject as the caller identity.
func RequireAuth(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			return apperrors.ErrUnauthorized(errors.New("missing bearer token"))
		}

		subject, err := tokens.Validate(strings.TrimSpace(raw))
		if err != nil {
			return apperrors.ErrUnauthorized(err)
		}

		c.Locals(callerKey, subject)
		return c.Next()
	}
}

// CallerIdentity returns the identity set by RequireAuth, or "" on open routes.
func CallerIdentity(c *fiber.Ctx) string {
	caller, _ := c.Locals(callerKey).(string)
	return caller
}
