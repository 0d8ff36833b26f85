package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodCOD        = "cod"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusSuccess = "Success"
)

// Payment is the recorded outcome of one checkout. CardNumber only ever holds the
// masked form, the cvv is never stored.
type Payment struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	UserName        string          `json:"username,omitempty"`
	BookID          *int            `json:"book_id"`
	BookName        string          `json:"book_name,omitempty"`
	PaymentNumber   string          `json:"payment_number"`
	Status          string          `json:"status"`
	Date            time.Time       `json:"date"`
	Price           decimal.Decimal `json:"price"`
	PaymentMethod   string          `json:"payment_method"`
	FullName        string          `json:"full_name"`
	PhoneNumber     string          `json:"phone_number"`
	BillingAddress  string          `json:"billing_address"`
	Pincode         string          `json:"pincode"`
	CardNumber      string          `json:"card_number,omitempty"`
	CardHolderName  string          `json:"card_holder_name,omitempty"`
	CardExpiryMonth string          `json:"card_expiry_month,omitempty"`
	CardExpiryYear  string          `json:"card_expiry_year,omitempty"`
	UPIID           string          `json:"upi_id,omitempty"`
	BankName        string          `json:"bank_name,omitempty"`
	AccountNumber   string          `json:"account_number,omitempty"`
	IFSCCode        string          `json:"ifsc_code,omitempty"`
}

// PaymentRequest is the body of the standalone payment endpoint.
type PaymentRequest struct {
	UserID          int             `json:"user_id" validate:"required"`
	BookID          *int            `json:"book_id"`
	PaymentNumber   string          `json:"payment_number"`
	Status          string          `json:"status"`
	Date            string          `json:"date"`
	Price           decimal.Decimal `json:"price"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=credit_card upi netbanking cod"`
	FullName        string          `json:"full_name" validate:"required"`
	PhoneNumber     string          `json:"phone_number" validate:"required"`
	BillingAddress  string          `json:"billing_address" validate:"required"`
	Pincode         string          `json:"pincode" validate:"required"`
	CardNumber      string          `json:"card_number"`
	CardHolderName  string          `json:"card_holder_name"`
	CardExpiryMonth string          `json:"card_expiry_month"`
	CardExpiryYear  string          `json:"card_expiry_year"`
	CVV             string          `json:"cvv"`
	UPIID           string          `json:"upi_id"`
	BankName        string          `json:"bank_name"`
	AccountNumber   string          `json:"account_number"`
	IFSCCode        string          `json:"ifsc_code"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
