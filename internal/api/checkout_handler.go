package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

const idempotencyHeader = "Idempotency-Key"

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout --> POST /api/checkout
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	req := entity.CheckoutRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	key := c.Request().Header.Get(idempotencyHeader)
	res, err := h.checkoutService.Checkout(c.Request().Context(), sessionFrom(c), key, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Order placed successfully", echo.Map{"order": res})
}
