package handler

import (
	"github.com/gofiber/fiber/v2"

	"studynotes/internal/http/middleware"
	"studynotes/internal/service"
)

// CheckEntitlement godoc
// @Summary Whether the caller may view library content
// @Tags payments
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/entitlement [get]
func CheckEntitlement(ent service.EntitlementService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := middleware.IdentityFrom(c)
		return c.JSON(fiber.Map{"entitled": ent.IsEntitled(c.UserContext(), id.UserID)})
	}
}

// Checkout godoc
// @Summary Create a provider order for lifetime access
// @Tags payments
// @Produce json
// @Success 201 {object} service.CheckoutOptions
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/payments/checkout [post]
func Checkout(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, err := svc.Checkout(c.UserContext(), middleware.IdentityFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(opts)
	}
}

// ConfirmPayment godoc
// @Summary Verify a completed payment and grant access
// @Tags payments
// @Accept json
// @Produce json
// @Param body body service.ConfirmInput true "provider callback payload"
// @Success 201 {object} model.AccessGrant
// @Failure 400 {object} errorPayload
// @Failure 402 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/payments/confirm [post]
func ConfirmPayment(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ConfirmInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		grant, err := svc.Confirm(c.UserContext(), middleware.IdentityFrom(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(grant)
	}
}

// PaymentStatus godoc
// @Summary The caller's current plan
// @Tags payments
// @Produce json
// @Success 200 {object} service.PlanStatus
// @Router /api/payments/status [get]
func PaymentStatus(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Status(c.UserContext(), middleware.IdentityFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
