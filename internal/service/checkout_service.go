package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/events"
	"confidencevoice/internal/repository"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CheckoutService turns a cart or a single Buy Now book into an order, its transaction
// rows and a payment. The three writes and the removal of the bought cart lines share
// one database transaction.
type CheckoutService struct {
	store       *repository.Store
	idempotency IdempotencyStore
	publisher   OrderEventPublisher
	validator   *Validator
	now         func() time.Time
}

func NewCheckoutService(store *repository.Store, idempotency IdempotencyStore, publisher OrderEventPublisher, validator *Validator) *CheckoutService {
	return &CheckoutService{
		store:       store,
		idempotency: idempotency,
		publisher:   publisher,
		validator:   validator,
		now:         time.Now,
	}
}

// Checkout places the order for the session user. key is the client supplied
// idempotency key; an empty key disables the duplicate check.
func (s *CheckoutService) Checkout(ctx context.Context, sess Session, key string, req *entity.CheckoutRequest) (*entity.CheckoutResult, error) {
	if err := sess.authorize(sess.UserID); err != nil {
		return nil, err
	}
	if err := s.validator.Checkout(req); err != nil {
		return nil, err
	}

	if key != "" {
		reserved, orderID, err := s.idempotency.Reserve(ctx, sess.UserID, key)
		if err != nil {
			logger.Error().Err(err).Msg("Error reserving idempotency key")
			return nil, err
		}
		if !reserved {
			logger.Warn().Msgf("Duplicate checkout for key %s", key)
			return nil, &DuplicateCheckoutError{OrderID: orderID}
		}
	}

	result, fromCart, err := s.placeOrder(ctx, sess.UserID, req)
	if err != nil {
		if key != "" {
			if relErr := s.idempotency.Release(ctx, sess.UserID, key); relErr != nil {
				logger.Error().Err(relErr).Msgf("Error releasing idempotency key %s", key)
			}
		}
		if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Checkout failed for user %d", sess.UserID)
		}
		return nil, err
	}
	logger.Info().Msgf("Order %s placed by user %d for %s", result.OrderID, sess.UserID, result.NetTotal)

	if key != "" {
		if err := s.idempotency.Complete(ctx, sess.UserID, key, result.OrderID); err != nil {
			logger.Error().Err(err).Msgf("Error completing idempotency key %s", key)
		}
	}

	event := events.NewOrderEvent(events.KindCreated, result.OrderID, sess.UserID)
	event.FromCart = fromCart
	event.NetTotal = result.NetTotal
	event.Status = result.Status
	event.Items = result.Items
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order event for %s", result.OrderID)
	}

	return result, nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, userID int, req *entity.CheckoutRequest) (*entity.CheckoutResult, bool, error) {
	now := s.now()
	orderID := newOrderID(now)
	fromCart := req.BuyNow == nil
	var result *entity.CheckoutResult

	err := s.store.WithTx(ctx, func(tx *sql.Tx) error {
		items, cartIDs, err := s.resolveItems(ctx, tx, userID, req.BuyNow)
		if err != nil {
			return err
		}

		netTotal := NetTotal(items)
		prefix := lo.Ternary(fromCart, "Purchase: ", "Direct purchase: ")
		order := &entity.Order{
			OrderID:  orderID,
			Date:     today(now),
			UserID:   userID,
			NetTotal: netTotal,
			Status:   entity.OrderStatusPending,
			Transactions: lo.Map(items, func(item entity.LineItem, _ int) entity.OrderTransaction {
				return entity.OrderTransaction{
					BookID:      item.BookID,
					Description: prefix + item.BookName,
					Price:       item.Price,
					Quantity:    item.Quantity,
				}
			}),
		}
		if err := repository.NewOrderRepository(tx).CreateOrder(ctx, order); err != nil {
			return err
		}

		payment := buildPayment(userID, order, items[0].BookID, req)
		paymentID, err := repository.NewPaymentRepository(tx).CreatePayment(ctx, payment)
		if err != nil {
			return err
		}

		if fromCart {
			n, err := repository.NewCartRepository(tx).RemoveLines(ctx, userID, cartIDs)
			if err != nil {
				return err
			}
			logger.Info().Msgf("Removed %d bought cart lines of user %d", n, userID)
		}

		result = &entity.CheckoutResult{
			OrderID:       orderID,
			PaymentID:     paymentID,
			PaymentNumber: payment.PaymentNumber,
			NetTotal:      netTotal,
			Status:        order.Status,
			PaymentStatus: payment.Status,
			Items:         items,
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, fromCart, nil
}

// resolveItems reads what is being bought inside the checkout transaction, along with
// the ids of the cart lines it came from. Cart rows are locked so the charged
// quantities cannot change before commit.
func (s *CheckoutService) resolveItems(ctx context.Context, tx *sql.Tx, userID int, buyNow *entity.BuyNowRequest) ([]entity.LineItem, []int, error) {
	if buyNow != nil {
		book, err := repository.NewBookRepository(tx).GetBookByID(ctx, buyNow.BookID)
		if err != nil {
			return nil, nil, err
		}
		if book.Status != entity.BookStatusActive {
			return nil, nil, fmt.Errorf("book %d is not available: %w", book.ID, ErrNotFound)
		}
		return []entity.LineItem{{BookID: book.ID, BookName: book.Name, Quantity: 1, Price: book.Price}}, nil, nil
	}

	lines, err := repository.NewCartRepository(tx).GetCartForUpdate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, ErrEmptyCart
	}
	items := lo.Map(lines, func(line entity.CartLine, _ int) entity.LineItem {
		return entity.LineItem{BookID: line.BookID, BookName: line.BookName, Quantity: line.Quantity, Price: line.Price}
	})
	cartIDs := lo.Map(lines, func(line entity.CartLine, _ int) int { return line.ID })
	return items, cartIDs, nil
}

func buildPayment(userID int, order *entity.Order, bookID int, req *entity.CheckoutRequest) *entity.Payment {
	p := req.Payment
	payment := &entity.Payment{
		UserID:         userID,
		BookID:         &bookID,
		PaymentNumber:  order.OrderID,
		Status:         lo.Ternary(p.Method == entity.PaymentMethodCOD, entity.PaymentStatusPending, entity.PaymentStatusSuccess),
		Date:           order.Date,
		Price:          order.NetTotal,
		PaymentMethod:  p.Method,
		FullName:       req.Shipping.Name,
		PhoneNumber:    req.Shipping.Phone,
		BillingAddress: req.Shipping.Address,
		Pincode:        req.Shipping.Pincode,
	}

	switch p.Method {
	case entity.PaymentMethodCreditCard:
		payment.CardNumber = maskCardNumber(p.CardNumber)
		payment.CardHolderName = p.CardHolder
		payment.CardExpiryMonth = p.ExpiryMonth
		payment.CardExpiryYear = p.ExpiryYear
	case entity.PaymentMethodUPI:
		payment.UPIID = p.UPIID
	case entity.PaymentMethodNetbanking:
		payment.BankName = p.BankName
		payment.AccountNumber = p.AccountNumber
		payment.IFSCCode = p.IFSC
	}
	return payment
}

// newOrderID renders ORDER-YYYYMMDDHHMMSS-XXXXXX. The random suffix keeps two orders
// placed in the same second apart.
func newOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORDER-%s-%s", now.Format("20060102150405"), suffix)
}

