package handler

import (
	"errors"
	"log"

	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserID returns the authenticated user's id, or nil for
// anonymous requests (set by the auth middleware)
func currentUserID(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func isAdmin(c *fiber.Ctx) bool {
	admin, ok := c.Locals("is_admin").(bool)
	return ok && admin
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps a service error onto the conventional status code. The
// client always receives a single message string; unexpected store
// failures are logged server-side and reported generically.
func fail(c *fiber.Ctx, err error) error {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrAddressIncomplete),
		errors.Is(err, service.ErrUnsupportedPayment),
		errors.Is(err, service.ErrPaymentIncomplete),
		errors.Is(err, service.ErrInvalidCardNumber),
		errors.Is(err, service.ErrInvalidCvc),
		errors.Is(err, service.ErrInvalidExpiry),
		errors.Is(err, service.ErrInvalidExpiryMonth),
		errors.Is(err, service.ErrNoValidProducts),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrOrderFinalized),
		errors.Is(err, service.ErrOrderCodeRequired),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrNoProductIDs),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrMissingFields),
		errors.As(err, &stockErr):
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, service.ErrNotOrderOwner):
		return c.Status(403).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"message": err.Error()})

	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}
}
