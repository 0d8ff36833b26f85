package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
)

type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	validator   *Validator
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, validator *Validator) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, validator: validator}
}

// methodFields lists, per payment method, the fields that must be present together.
var methodFields = map[string]struct {
	fields func(*entity.PaymentRequest) []string
	msg    string
}{
	entity.PaymentMethodCreditCard: {
		fields: func(r *entity.PaymentRequest) []string {
			return []string{r.CardNumber, r.CardHolderName, r.CardExpiryMonth, r.CardExpiryYear, r.CVV}
		},
		msg: "All card details are required",
	},
	entity.PaymentMethodUPI: {
		fields: func(r *entity.PaymentRequest) []string { return []string{r.UPIID} },
		msg:    "UPI ID is required",
	},
	entity.PaymentMethodNetbanking: {
		fields: func(r *entity.PaymentRequest) []string {
			return []string{r.BankName, r.AccountNumber, r.IFSCCode}
		},
		msg: "All netbanking details are required",
	},
}

// AddPayment records a standalone payment. Card numbers are stored masked and the cvv
// is dropped after the presence check.
func (s *PaymentService) AddPayment(ctx context.Context, sess Session, req *entity.PaymentRequest) (int, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, err
	}
	if err := sess.authorize(req.UserID); err != nil {
		return 0, err
	}
	if !req.Price.IsPositive() {
		return 0, invalid("price", "price is required")
	}
	if check, ok := methodFields[req.PaymentMethod]; ok {
		for _, v := range check.fields(req) {
			if strings.TrimSpace(v) == "" {
				return 0, invalid(req.PaymentMethod, check.msg)
			}
		}
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	payment := &entity.Payment{
		UserID:          req.UserID,
		BookID:          req.BookID,
		PaymentNumber:   req.PaymentNumber,
		Status:          req.Status,
		Date:            date,
		Price:           req.Price,
		PaymentMethod:   req.PaymentMethod,
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		BillingAddress:  req.BillingAddress,
		Pincode:         req.Pincode,
		CardNumber:      maskCardNumber(req.CardNumber),
		CardHolderName:  req.CardHolderName,
		CardExpiryMonth: req.CardExpiryMonth,
		CardExpiryYear:  req.CardExpiryYear,
		UPIID:           req.UPIID,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		IFSCCode:        req.IFSCCode,
	}
	if payment.PaymentNumber == "" {
		payment.PaymentNumber = fmt.Sprintf("ORDER-%d", now.UnixMilli())
	}
	if payment.Status == "" {
		payment.Status = entity.PaymentStatusSuccess
	}

	id, err := s.paymentRepo.CreatePayment(ctx, payment)
	if err != nil {
		logger.Error().Err(err).Msgf("Error recording payment %s", payment.PaymentNumber)
		return 0, translate(err, "payment")
	}
	return id, nil
}

func (s *PaymentService) GetPayments(ctx context.Context) ([]entity.Payment, error) {
	payments, err := s.paymentRepo.GetPayments(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting payments")
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) UpdateStatus(ctx context.Context, id int, req *entity.UpdatePaymentStatusRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, id, req.Status); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error updating payment %d", id)
		}
		return err
	}
	return nil
}
