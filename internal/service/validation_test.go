package service

import (
	"sort"
	"testing"

	"confidencevoice/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func checkoutFields(t *testing.T, req *entity.CheckoutRequest) map[string]string {
	t.Helper()
	err := NewValidator().Checkout(req)
	if err == nil {
		return nil
	}
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.ErrorIs(t, err, ErrValidation)
	return verr.Fields
}

func TestCheckoutValidationAcceptsEveryMethod(t *testing.T) {
	cases := []entity.PaymentDetails{
		{Method: entity.PaymentMethodCOD},
		{Method: entity.PaymentMethodUPI, UPIID: "alice.k_1@okbank"},
		{Method: entity.PaymentMethodNetbanking, BankName: "State Bank", AccountNumber: "123456789012", IFSC: "SBIN0001234"},
		{Method: entity.PaymentMethodCreditCard, CardHolder: "Jane Doe", CardNumber: "4111111111111111", ExpiryMonth: "12", ExpiryYear: "2030", CVV: "999"},
	}
	for _, p := range cases {
		t.Run(p.Method, func(t *testing.T) {
			require.Nil(t, checkoutFields(t, &entity.CheckoutRequest{Shipping: shipping(), Payment: p}))
		})
	}
}

func TestCheckoutValidationShipping(t *testing.T) {
	fields := checkoutFields(t, &entity.CheckoutRequest{
		Shipping: entity.ShippingInfo{Name: "J4ne", Address: "   ", Pincode: "56001"},
		Payment:  entity.PaymentDetails{Method: entity.PaymentMethodCOD},
	})
	require.Equal(t, map[string]string{
		"name":    "Name should contain only letters and spaces (2-50 characters)",
		"address": "Billing address is required",
		"pincode": "Pincode should be exactly 6 digits",
	}, fields)
}

func TestCheckoutValidationCreditCard(t *testing.T) {
	fields := checkoutFields(t, &entity.CheckoutRequest{
		Shipping: shipping(),
		Payment: entity.PaymentDetails{
			Method: entity.PaymentMethodCreditCard, CardHolder: "Jane Doe", CardNumber: "4111 1111 1111 1111",
			ExpiryMonth: "13", ExpiryYear: "2019",
		},
	})
	require.Len(t, fields, 4)
	require.Contains(t, fields, "card_number")
	require.Contains(t, fields, "expiry_month")
	require.Contains(t, fields, "expiry_year")
	require.Equal(t, "CVV should be exactly 3 digits", fields["cvv"])
}

func TestCheckoutValidationNetbanking(t *testing.T) {
	fields := checkoutFields(t, &entity.CheckoutRequest{
		Shipping: shipping(),
		Payment:  entity.PaymentDetails{Method: entity.PaymentMethodNetbanking, AccountNumber: "12345678", IFSC: "sbin0001234"},
	})
	require.Equal(t, []string{"account_number", "bank_name", "ifsc"}, sortedKeys(fields))
}

func TestCheckoutValidationUnknownMethod(t *testing.T) {
	fields := checkoutFields(t, &entity.CheckoutRequest{Shipping: shipping(), Payment: entity.PaymentDetails{Method: "paypal"}})
	require.Contains(t, fields["payment_method"], "paypal")

	fields = checkoutFields(t, &entity.CheckoutRequest{Shipping: shipping()})
	require.Equal(t, "Please select a payment method", fields["payment_method"])
}

func TestValidateNamesFirstMissingJSONField(t *testing.T) {
	err := NewValidator().Validate(&entity.PaymentRequest{UserID: 4, PaymentMethod: "cod", Price: decimal.NewFromInt(1)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "full_name is required", verr.Message)
	require.Contains(t, verr.Fields, "billing_address")
}

func TestValidateCustomTagOnStruct(t *testing.T) {
	err := NewValidator().Validate(&entity.RegisterRequest{Name: "R2D2", Email: "r2@example.com", Password: "secret1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, patternMessages["person_name"], verr.Fields["name"])

	require.NoError(t, NewValidator().Validate(&entity.RegisterRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "secret1"}))
}

func TestNetTotal(t *testing.T) {
	items := []entity.LineItem{
		{BookID: 1, Quantity: 2, Price: decimal.RequireFromString("100.10")},
		{BookID: 2, Quantity: 3, Price: decimal.RequireFromString("0.10")},
	}
	require.Equal(t, "200.5", NetTotal(items).String())
	require.True(t, NetTotal(nil).IsZero())
}

func TestMaskCardNumber(t *testing.T) {
	require.Equal(t, "************1111", maskCardNumber("4111111111111111"))
	require.Equal(t, "", maskCardNumber(""))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
