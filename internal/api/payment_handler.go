package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// AddPayment --> POST /api/payments/add
func (h *PaymentHandler) AddPayment(c echo.Context) error {
	req := entity.PaymentRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	id, err := h.paymentService.AddPayment(c.Request().Context(), sessionFrom(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Payment recorded successfully", echo.Map{"payment_id": id})
}

// GetPayments --> GET /api/payments
func (h *PaymentHandler) GetPayments(c echo.Context) error {
	payments, err := h.paymentService.GetPayments(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"payments": payments})
}

// UpdateStatus --> PUT /api/payments/:id
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	req := entity.UpdatePaymentStatusRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.paymentService.UpdateStatus(c.Request().Context(), id, &req); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Payment status updated successfully", nil)
}
