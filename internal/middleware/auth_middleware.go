package middleware

import (
	"strings"

	"go-storefront/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// tokenFromRequest reads the auth token from the session cookie or,
// failing that, from a bearer Authorization header.
func tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func setIdentity(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals("user_id", claims.UserID.String())
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", claims.Name)
	c.Locals("is_admin", claims.IsAdmin)
}

// RequireAuth validates the JWT and sets the identity in the request
// context for downstream handlers
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"message": "Not authenticated"})
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// lets the request through either way. Checkout uses this: orders from
// anonymous shoppers are guest orders.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := jwt.ValidateToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok || !isAdmin {
			return c.Status(403).JSON(fiber.Map{"message": "Admin only"})
		}
		return c.Next()
	}
}
