package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/events"
	"confidencevoice/internal/repository"
	"github.com/samber/lo"
)

// OrderEventPublisher writes order events to the broker.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event events.OrderEvent) error
}

const dateLayout = "2006-01-02"

type OrderService struct {
	store     *repository.Store
	orderRepo *repository.OrderRepository
	publisher OrderEventPublisher
	validator *Validator
}

func NewOrderService(store *repository.Store, orderRepo *repository.OrderRepository, publisher OrderEventPublisher, validator *Validator) *OrderService {
	return &OrderService{store: store, orderRepo: orderRepo, publisher: publisher, validator: validator}
}

// AddOrder stores an order with status Pending and one transaction row per book, all
// in one database transaction.
func (s *OrderService) AddOrder(ctx context.Context, sess Session, req *entity.CreateOrderRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}
	if err := sess.authorize(req.UserID); err != nil {
		return "", err
	}
	if !req.NetTotal.IsPositive() {
		return "", invalid("net_total", "net_total is required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return "", err
	}

	order := &entity.Order{
		OrderID:  req.OrderID,
		Date:     date,
		UserID:   req.UserID,
		NetTotal: req.NetTotal,
		Status:   entity.OrderStatusPending,
		Transactions: lo.Map(req.Books, func(line entity.OrderLineRequest, _ int) entity.OrderTransaction {
			return entity.OrderTransaction{
				BookID:      line.BookID,
				Description: line.Description,
				Price:       line.Price,
				Quantity:    lo.Ternary(line.Quantity > 0, line.Quantity, 1),
			}
		}),
	}

	err = s.store.WithTx(ctx, func(tx *sql.Tx) error {
		return repository.NewOrderRepository(tx).CreateOrder(ctx, order)
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating order %s", req.OrderID)
		return "", translate(err, "order "+req.OrderID)
	}
	return order.OrderID, nil
}

// AddTransaction appends one line to an existing order. Only the order's owner or an
// admin may add to it, and the line must carry the owner's user id.
func (s *OrderService) AddTransaction(ctx context.Context, sess Session, req *entity.CreateTransactionRequest) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}
	if err := sess.authorize(req.UserID); err != nil {
		return 0, err
	}
	if !req.Price.IsPositive() {
		return 0, invalid("price", "price is required")
	}

	owner, err := s.orderRepo.GetOrderOwner(ctx, req.OrderID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error looking up order %s", req.OrderID)
		}
		return 0, err
	}
	if err := sess.authorize(owner); err != nil {
		logger.Warn().Msgf("User %d tried to add to order %s of user %d", sess.UserID, req.OrderID, owner)
		return 0, err
	}
	if req.UserID != owner {
		return 0, invalid("user_id", "user_id does not match the order")
	}

	id, err := s.orderRepo.CreateTransaction(ctx, &entity.OrderTransaction{
		OrderID:     req.OrderID,
		UserID:      req.UserID,
		BookID:      req.BookID,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    lo.Ternary(req.Quantity > 0, req.Quantity, 1),
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding transaction to order %s", req.OrderID)
		return 0, translate(err, "order transaction")
	}
	return id, nil
}

// UpdateStatus sets the order status. Any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !lo.Contains(entity.OrderStatuses, status) {
		logger.Warn().Msgf("Rejected status %q for order %s", status, orderID)
		return ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn().Msgf("Order %s not found", orderID)
		} else {
			logger.Error().Err(err).Msgf("Error updating status of order %s", orderID)
		}
		return err
	}
	logger.Info().Msgf("Order %s status set to %s", orderID, status)

	event := events.NewOrderEvent(events.KindStatusChanged, orderID, 0)
	event.Status = status
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Error().Err(err).Msgf("Error publishing status event for order %s", orderID)
	}
	return nil
}

func (s *OrderService) GetOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting orders")
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, sess Session, userID int) ([]entity.Order, error) {
	if err := sess.authorize(userID); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetOrdersByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting orders of user %d", userID)
		return nil, err
	}
	return orders, nil
}

// GetOrder returns the order header with its transactions.
func (s *OrderService) GetOrder(ctx context.Context, sess Session, orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error getting order %s", orderID)
		}
		return nil, err
	}
	if err := sess.authorize(order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetTransactions(ctx context.Context) ([]entity.OrderTransaction, error) {
	transactions, err := s.orderRepo.GetTransactions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting order transactions")
		return nil, err
	}
	return transactions, nil
}

func (s *OrderService) GetTransactionsByOrder(ctx context.Context, sess Session, orderID string) ([]entity.OrderTransaction, error) {
	order, err := s.GetOrder(ctx, sess, orderID)
	if err != nil {
		return nil, err
	}
	return order.Transactions, nil
}

func (s *OrderService) GetTransactionsByUser(ctx context.Context, sess Session, userID int) ([]entity.OrderTransaction, error) {
	if err := sess.authorize(userID); err != nil {
		return nil, err
	}
	transactions, err := s.orderRepo.GetTransactionsByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting transactions of user %d", userID)
		return nil, err
	}
	return transactions, nil
}

// parseDate accepts YYYY-MM-DD and defaults to today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return today(time.Now()), nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, invalid("date", "date must be formatted as YYYY-MM-DD")
	}
	return date, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
