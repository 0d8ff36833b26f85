package service

import (
	"context"
	"testing"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/events"
	"confidencevoice/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock, *fakePublisher) {
	db, mock := newMock(t)
	publisher := &fakePublisher{}
	return NewOrderService(repository.NewStore(db), repository.NewOrderRepository(db), publisher, NewValidator()), mock, publisher
}

func TestUpdateStatusPublishesEvent(t *testing.T) {
	svc, mock, publisher := newOrderService(t)
	mock.ExpectExec("UPDATE orders SET status").WithArgs("Dispatched", "ORDER-1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpdateStatus(context.Background(), "ORDER-1", entity.OrderStatusDispatched))
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, publisher.events, 1)
	require.Equal(t, events.KindStatusChanged, publisher.events[0].Kind)
	require.Equal(t, "Dispatched", publisher.events[0].Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, mock, publisher := newOrderService(t)

	err := svc.UpdateStatus(context.Background(), "ORDER-1", "Shipped")
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.ErrorIs(t, err, ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Empty(t, publisher.events)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, mock, publisher := newOrderService(t)
	mock.ExpectExec("UPDATE orders SET status").WithArgs("Cancelled", "ORDER-404").WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, svc.UpdateStatus(context.Background(), "ORDER-404", entity.OrderStatusCancelled), ErrNotFound)
	require.Empty(t, publisher.events)
}

func TestAddOrderDefaultsQuantity(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs("ORDER-9", sqlmock.AnyArg(), 4, "300", "Pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_transactions").
		WithArgs("ORDER-9", 4, 7, "Purchase", "300", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := svc.AddOrder(context.Background(), userSession, &entity.CreateOrderRequest{
		OrderID:  "ORDER-9",
		Date:     "2026-10-16",
		UserID:   4,
		NetTotal: decimal.NewFromInt(300),
		Books:    []entity.OrderLineRequest{{BookID: 7, Price: decimal.NewFromInt(300), Description: "Purchase"}},
	})
	require.NoError(t, err)
	require.Equal(t, "ORDER-9", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddOrderForAnotherUserIsForbidden(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	_, err := svc.AddOrder(context.Background(), userSession, &entity.CreateOrderRequest{
		OrderID: "ORDER-9", UserID: 5, NetTotal: decimal.NewFromInt(1),
		Books: []entity.OrderLineRequest{{BookID: 7}},
	})
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddTransactionRequiresPrice(t *testing.T) {
	svc, _, _ := newOrderService(t)
	_, err := svc.AddTransaction(context.Background(), userSession, &entity.CreateTransactionRequest{OrderID: "ORDER-9", UserID: 4, BookID: 7})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddTransactionToAnotherUsersOrderIsForbidden(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	mock.ExpectQuery("SELECT user_id FROM orders WHERE order_id").WithArgs("ORDER-5").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(5))

	_, err := svc.AddTransaction(context.Background(), userSession, &entity.CreateTransactionRequest{
		OrderID: "ORDER-5", UserID: 4, BookID: 7, Price: decimal.NewFromInt(300),
	})
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddTransactionToMissingOrder(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	mock.ExpectQuery("SELECT user_id FROM orders WHERE order_id").WithArgs("ORDER-404").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := svc.AddTransaction(context.Background(), userSession, &entity.CreateTransactionRequest{
		OrderID: "ORDER-404", UserID: 4, BookID: 7, Price: decimal.NewFromInt(300),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdminAddTransactionMustMatchOwner(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	mock.ExpectQuery("SELECT user_id FROM orders WHERE order_id").WithArgs("ORDER-5").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(5))

	_, err := svc.AddTransaction(context.Background(), adminSession, &entity.CreateTransactionRequest{
		OrderID: "ORDER-5", UserID: 4, BookID: 7, Price: decimal.NewFromInt(300),
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddTransactionToOwnOrder(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	mock.ExpectQuery("SELECT user_id FROM orders WHERE order_id").WithArgs("ORDER-9").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(4))
	mock.ExpectExec("INSERT INTO order_transactions").
		WithArgs("ORDER-9", 4, 7, "Purchase", "300", 2).
		WillReturnResult(sqlmock.NewResult(21, 1))

	id, err := svc.AddTransaction(context.Background(), userSession, &entity.CreateTransactionRequest{
		OrderID: "ORDER-9", UserID: 4, BookID: 7, Price: decimal.NewFromInt(300), Description: "Purchase", Quantity: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 21, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderOfAnotherUserIsForbidden(t *testing.T) {
	svc, mock, _ := newOrderService(t)
	mock.ExpectQuery("FROM orders WHERE order_id").WithArgs("ORDER-1").WillReturnRows(
		sqlmock.NewRows([]string{"order_id", "date", "user_id", "net_total", "status"}).
			AddRow("ORDER-1", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), 5, "100.00", "Pending"))
	mock.ExpectQuery("FROM order_transactions ot").WithArgs("ORDER-1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "user_id", "book_id", "book_name", "description", "price", "quantity"}))

	_, err := svc.GetOrder(context.Background(), userSession, "ORDER-1")
	require.ErrorIs(t, err, ErrForbidden)
}
