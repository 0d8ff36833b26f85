package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// AddOrder --> POST /api/orders/add
func (h *OrderHandler) AddOrder(c echo.Context) error {
	req := entity.CreateOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	orderID, err := h.orderService.AddOrder(c.Request().Context(), sessionFrom(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Order added successfully", echo.Map{"order_id": orderID})
}

// GetOrders --> GET /api/orders
func (h *OrderHandler) GetOrders(c echo.Context) error {
	orders, err := h.orderService.GetOrders(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"orders": orders})
}

// GetOrdersByUser --> GET /api/orders/user/:userId
func (h *OrderHandler) GetOrdersByUser(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	orders, err := h.orderService.GetOrdersByUser(c.Request().Context(), sessionFrom(c), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"orders": orders})
}

// GetOrder --> GET /api/orders/:orderId
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderService.GetOrder(c.Request().Context(), sessionFrom(c), c.Param("orderId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"order": order})
}

// UpdateStatus --> PUT /api/orders/:orderId
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	req := entity.UpdateStatusRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.orderService.UpdateStatus(c.Request().Context(), c.Param("orderId"), req.Status); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Order status updated successfully", nil)
}

// AddTransaction --> POST /api/order-transactions/add
func (h *OrderHandler) AddTransaction(c echo.Context) error {
	req := entity.CreateTransactionRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	id, err := h.orderService.AddTransaction(c.Request().Context(), sessionFrom(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Order transaction added successfully", echo.Map{"transaction_id": id})
}

// GetTransactions --> GET /api/order-transactions
func (h *OrderHandler) GetTransactions(c echo.Context) error {
	transactions, err := h.orderService.GetTransactions(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"transactions": transactions})
}

// GetTransactionsByOrder --> GET /api/order-transactions/:orderId
func (h *OrderHandler) GetTransactionsByOrder(c echo.Context) error {
	transactions, err := h.orderService.GetTransactionsByOrder(c.Request().Context(), sessionFrom(c), c.Param("orderId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"transactions": transactions})
}

// GetTransactionsByUser --> GET /api/order-transactions/user/:userId
func (h *OrderHandler) GetTransactionsByUser(c echo.Context) error {
	userID, err := intParam(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	transactions, err := h.orderService.GetTransactionsByUser(c.Request().Context(), sessionFrom(c), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"transactions": transactions})
}
