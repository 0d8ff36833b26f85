package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit --> POST /api/contact
func (h *ContactHandler) Submit(c echo.Context) error {
	req := entity.ContactRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	contact, err := h.contactService.Submit(c.Request().Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Message sent successfully", echo.Map{"id": contact.ID})
}

// GetContacts --> GET /api/contact
func (h *ContactHandler) GetContacts(c echo.Context) error {
	contacts, err := h.contactService.GetContacts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"contacts": contacts})
}

// MarkRead --> PUT /api/contact/:id/read
func (h *ContactHandler) MarkRead(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.contactService.MarkRead(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Message marked as read", nil)
}
