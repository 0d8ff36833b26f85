package entity

import "github.com/shopspring/decimal"

// CheckoutRequest places one order. BuyNow set means a single book at quantity 1,
// otherwise the whole cart of the session user is bought.
type CheckoutRequest struct {
	BuyNow   *BuyNowRequest `json:"buy_now"`
	Shipping ShippingInfo   `json:"shipping"`
	Payment  PaymentDetails `json:"payment"`
}

type BuyNowRequest struct {
	BookID int `json:"book_id"`
}

type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

type PaymentDetails struct {
	Method        string `json:"method"`
	CardHolder    string `json:"card_holder"`
	CardNumber    string `json:"card_number"`
	ExpiryMonth   string `json:"expiry_month"`
	ExpiryYear    string `json:"expiry_year"`
	CVV           string `json:"cvv"`
	UPIID         string `json:"upi_id"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

// LineItem is one (book, quantity, price) tuple being bought.
type LineItem struct {
	BookID   int             `json:"book_id"`
	BookName string          `json:"book_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type CheckoutResult struct {
	OrderID       string          `json:"order_id"`
	PaymentID     int             `json:"payment_id"`
	PaymentNumber string          `json:"payment_number"`
	NetTotal      decimal.Decimal `json:"net_total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Items         []LineItem      `json:"items"`
}
