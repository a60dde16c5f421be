package httpapi

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/server/auth"
)

const claimsLocal = "claims"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWTs and
// stores the parsed claims in c.Locals for downstream handlers.
func NewAuthMiddleware(secretKey []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(common.AuthHeaderName)
		if header == "" || !strings.HasPrefix(header, common.BearerPrefix) {
			return respondError(c, http.StatusUnauthorized, "Not authenticated")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))

		claims, err := auth.ParseToken(tokenString, secretKey)
		if err != nil {
			return respondError(c, http.StatusUnauthorized, "Could not validate credentials")
		}

		c.Locals(claimsLocal, claims)
		return c.Next()
	}
}

// requireRegistered blocks guest tokens. Guest sessions keep their data on
// the client; a guest principal reaching a mutating resume endpoint means the
// client-side guard was bypassed.
func requireRegistered(c *fiber.Ctx) error {
	if claimsFrom(c).IsGuest {
		return respondError(c, http.StatusForbidden, "Resume management requires a registered account")
	}
	return c.Next()
}

func claimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsLocal).(*auth.Claims)
	if claims == nil {
		return &auth.Claims{}
	}
	return claims
}

func userIDFrom(c *fiber.Ctx) int64 {
	return claimsFrom(c).UserID
}
