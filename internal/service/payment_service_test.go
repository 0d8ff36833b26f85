package service

import (
	"context"
	"testing"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func paymentRequest(method string) *entity.PaymentRequest {
	return &entity.PaymentRequest{
		UserID: 4, Price: decimal.NewFromInt(300), PaymentMethod: method,
		FullName: "Jane Doe", PhoneNumber: "9876543210", BillingAddress: "12 Lake Road", Pincode: "560001",
	}
}

func TestAddPaymentPerMethodChecks(t *testing.T) {
	db, mock := newMock(t)
	svc := NewPaymentService(repository.NewPaymentRepository(db), NewValidator())

	card := paymentRequest(entity.PaymentMethodCreditCard)
	card.CardNumber, card.CardHolderName, card.CardExpiryMonth, card.CardExpiryYear = "4111111111111111", "Jane Doe", "01", "2030"
	_, err := svc.AddPayment(context.Background(), userSession, card)
	require.EqualError(t, err, "All card details are required")

	_, err = svc.AddPayment(context.Background(), userSession, paymentRequest(entity.PaymentMethodUPI))
	require.EqualError(t, err, "UPI ID is required")

	_, err = svc.AddPayment(context.Background(), userSession, paymentRequest(entity.PaymentMethodNetbanking))
	require.EqualError(t, err, "All netbanking details are required")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPaymentStoresMaskedCard(t *testing.T) {
	db, mock := newMock(t)
	svc := NewPaymentService(repository.NewPaymentRepository(db), NewValidator())

	req := paymentRequest(entity.PaymentMethodCreditCard)
	req.PaymentNumber = "ORDER-77"
	req.CardNumber, req.CardHolderName, req.CardExpiryMonth, req.CardExpiryYear, req.CVV = "4111111111111111", "Jane Doe", "01", "2030", "123"
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(4, nil, "ORDER-77", "Success", sqlmock.AnyArg(), "300", "credit_card",
			"Jane Doe", "9876543210", "12 Lake Road", "560001",
			"************1111", "Jane Doe", "01", "2030", nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := svc.AddPayment(context.Background(), userSession, req)
	require.NoError(t, err)
	require.Equal(t, 5, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPaymentForAnotherUserIsForbidden(t *testing.T) {
	db, _ := newMock(t)
	svc := NewPaymentService(repository.NewPaymentRepository(db), NewValidator())

	req := paymentRequest(entity.PaymentMethodCOD)
	req.UserID = 5
	_, err := svc.AddPayment(context.Background(), userSession, req)
	require.ErrorIs(t, err, ErrForbidden)
}
