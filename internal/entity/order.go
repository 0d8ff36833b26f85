package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusApproved   = "Approved"
	OrderStatusDispatched = "Dispatched"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// OrderStatuses lists every status an admin may set. Any status may follow any other.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusDispatched,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	OrderID      string             `json:"order_id"`
	Date         time.Time          `json:"date"`
	UserID       int                `json:"user_id"`
	UserName     string             `json:"user_name,omitempty"`
	NetTotal     decimal.Decimal    `json:"net_total"`
	Status       string             `json:"status"`
	Books        []OrderBook        `json:"books,omitempty"`
	Transactions []OrderTransaction `json:"transactions,omitempty"`
}

type OrderBook struct {
	BookID   int    `json:"book_id"`
	BookName string `json:"book_name"`
}

// OrderTransaction is one purchased line of an order.
type OrderTransaction struct {
	ID          int             `json:"id"`
	OrderID     string          `json:"order_id"`
	UserID      int             `json:"user_id"`
	UserName    string          `json:"username,omitempty"`
	BookID      int             `json:"book_id"`
	BookName    string          `json:"book_name,omitempty"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Date        *time.Time      `json:"date,omitempty"`
}

type CreateOrderRequest struct {
	OrderID  string             `json:"order_id" validate:"required"`
	Date     string             `json:"date"`
	UserID   int                `json:"user_id" validate:"required"`
	NetTotal decimal.Decimal    `json:"net_total"`
	Books    []OrderLineRequest `json:"books" validate:"required,min=1,dive"`
}

type OrderLineRequest struct {
	BookID      int             `json:"book_id" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

type CreateTransactionRequest struct {
	OrderID     string          `json:"order_id" validate:"required"`
	UserID      int             `json:"user_id" validate:"required"`
	BookID      int             `json:"book_id" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

/*
Mysql Schema:
CREATE TABLE orders (
	order_id VARCHAR(40) PRIMARY KEY,
	date DATE NOT NULL,
	user_id INT NOT NULL,
	net_total DECIMAL(10,2) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'Pending'
);

CREATE TABLE order_transactions (
	id INT AUTO_INCREMENT PRIMARY KEY,
	order_id VARCHAR(40) NOT NULL REFERENCES orders(order_id),
	user_id INT NOT NULL,
	book_id INT NOT NULL,
	description VARCHAR(255),
	price DECIMAL(10,2) NOT NULL,
	quantity INT NOT NULL DEFAULT 1
);
*/
