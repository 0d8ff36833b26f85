package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart --> GET /api/cart/:userId
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	lines, err := h.cartService.List(c.Request().Context(), sessionFrom(c), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"cart": lines})
}

// AddToCart --> POST /api/cart/add
func (h *CartHandler) AddToCart(c echo.Context) error {
	req := entity.AddToCartRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.cartService.Add(c.Request().Context(), sessionFrom(c), req.BookID); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Book added to cart", nil)
}

// UpdateQuantity --> PUT /api/cart/:cartId
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	cartID, err := intParam(c, "cartId")
	if err != nil {
		return fail(c, err)
	}
	req := entity.UpdateQuantityRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.cartService.SetQuantity(c.Request().Context(), sessionFrom(c), cartID, req.Quantity); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Quantity updated", nil)
}

// RemoveItem --> DELETE /api/cart/:cartId
func (h *CartHandler) RemoveItem(c echo.Context) error {
	cartID, err := intParam(c, "cartId")
	if err != nil {
		return fail(c, err)
	}
	if err := h.cartService.Remove(c.Request().Context(), sessionFrom(c), cartID); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Item removed from cart", nil)
}

// ClearCart --> DELETE /api/cart/clear/:userId
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	if err := h.cartService.Clear(c.Request().Context(), sessionFrom(c), userID); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Cart cleared successfully", nil)
}
