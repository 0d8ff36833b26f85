package api

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth       *AuthHandler
	Books      *BookHandler
	Categories *CategoryHandler
	Cart       *CartHandler
	Checkout   *CheckoutHandler
	Orders     *OrderHandler
	Payments   *PaymentHandler
	Contact    *ContactHandler
	Analysis   *AnalysisHandler
	Admin      *AdminHandler
}

// RegisterRoutes mounts every endpoint under /api. auth verifies the bearer token and
// the session check makes sure it has not been revoked; admin routes additionally
// require the admin role.
func RegisterRoutes(e *echo.Echo, h Handlers, auth echo.MiddlewareFunc) {
	user := []echo.MiddlewareFunc{auth, h.Auth.RequireLiveSession}
	admin := []echo.MiddlewareFunc{auth, h.Auth.RequireLiveSession, RequireAdmin}

	g := e.Group("/api")
	g.GET("/health", Health)

	g.POST("/auth/register", h.Auth.Register)
	g.POST("/auth/login", h.Auth.Login)
	g.POST("/auth/validate-token", h.Auth.ValidateToken)
	g.POST("/auth/change-password", h.Auth.ChangePassword, user...)
	g.GET("/auth/users", h.Auth.GetUsers, admin...)
	g.PUT("/auth/users/:id", h.Auth.UpdateUser, admin...)
	g.DELETE("/auth/users/:id", h.Auth.DeleteUser, admin...)

	g.GET("/books", h.Books.GetBooks)
	g.GET("/books/:id", h.Books.GetBook)
	g.GET("/admin/books", h.Books.GetAllBooks, admin...)
	g.POST("/books", h.Books.CreateBook, admin...)
	g.PUT("/books/:id", h.Books.UpdateBook, admin...)
	g.DELETE("/books/:id", h.Books.DeleteBook, admin...)

	g.GET("/categories", h.Categories.GetCategories)
	g.POST("/categories", h.Categories.CreateCategory, admin...)
	g.PUT("/categories/:id", h.Categories.UpdateCategory, admin...)
	g.DELETE("/categories/:id", h.Categories.DeleteCategory, admin...)

	g.GET("/cart/:userId", h.Cart.GetCart, user...)
	g.POST("/cart/add", h.Cart.AddToCart, user...)
	g.PUT("/cart/:cartId", h.Cart.UpdateQuantity, user...)
	g.DELETE("/cart/:cartId", h.Cart.RemoveItem, user...)
	g.DELETE("/cart/clear/:userId", h.Cart.ClearCart, user...)

	g.POST("/checkout", h.Checkout.Checkout, user...)

	g.POST("/orders/add", h.Orders.AddOrder, user...)
	g.GET("/orders", h.Orders.GetOrders, admin...)
	g.GET("/orders/user/:userId", h.Orders.GetOrdersByUser, user...)
	g.GET("/orders/:orderId", h.Orders.GetOrder, user...)
	g.PUT("/orders/:orderId", h.Orders.UpdateStatus, admin...)

	g.POST("/order-transactions/add", h.Orders.AddTransaction, user...)
	g.GET("/order-transactions", h.Orders.GetTransactions, admin...)
	g.GET("/order-transactions/user/:userId", h.Orders.GetTransactionsByUser, user...)
	g.GET("/order-transactions/:orderId", h.Orders.GetTransactionsByOrder, user...)

	g.POST("/payments/add", h.Payments.AddPayment, user...)
	g.GET("/payments", h.Payments.GetPayments, admin...)
	g.PUT("/payments/:id", h.Payments.UpdateStatus, admin...)

	g.POST("/contact", h.Contact.Submit)
	g.GET("/contact", h.Contact.GetContacts, admin...)
	g.PUT("/contact/:id/read", h.Contact.MarkRead, admin...)

	g.GET("/emotion-results", h.Analysis.GetEmotionResults, admin...)
	g.GET("/audio-results", h.Analysis.GetAudioResults, admin...)
	g.GET("/analysis-results", h.Analysis.GetAnalysisResults, admin...)
	g.GET("/analysis/:service/reports", h.Analysis.Reports, user...)

	g.GET("/admin/summary", h.Admin.Summary, admin...)
}
