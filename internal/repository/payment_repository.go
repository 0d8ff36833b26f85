package repository

import (
	"context"

	"confidencevoice/internal/entity"
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *entity.Payment) (int, error) {
	query := `
		INSERT INTO payments (
			user_id, book_id, payment_number, status, date, price, payment_method,
			full_name, phone_number, billing_address, pincode,
			card_number, card_holder_name, card_expiry_month, card_expiry_year,
			upi_id, bank_name, account_number, ifsc_code
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.UserID, p.BookID, p.PaymentNumber, p.Status, p.Date, p.Price, p.PaymentMethod,
		p.FullName, p.PhoneNumber, p.BillingAddress, p.Pincode,
		nullIfEmpty(p.CardNumber), nullIfEmpty(p.CardHolderName), nullIfEmpty(p.CardExpiryMonth), nullIfEmpty(p.CardExpiryYear),
		nullIfEmpty(p.UPIID), nullIfEmpty(p.BankName), nullIfEmpty(p.AccountNumber), nullIfEmpty(p.IFSCCode),
	)
	if err != nil {
		return 0, wrap("INSERT", "payments", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("INSERT", "payments", err)
	}
	p.ID = int(id)
	return p.ID, nil
}

func (r *PaymentRepository) GetPayments(ctx context.Context) ([]entity.Payment, error) {
	query := `
		SELECT p.id, p.user_id, u.name, p.book_id, COALESCE(b.book_name, ''), p.payment_number, p.status, p.date, p.price,
		       p.payment_method, p.full_name, p.billing_address, p.pincode, COALESCE(p.card_number, ''), COALESCE(p.upi_id, ''),
		       COALESCE(p.bank_name, '')
		FROM payments p
		JOIN users u ON p.user_id = u.id
		LEFT JOIN books b ON p.book_id = b.book_id
		ORDER BY p.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("SELECT", "payments", err)
	}
	defer rows.Close()

	payments := []entity.Payment{}
	for rows.Next() {
		var p entity.Payment
		err := rows.Scan(&p.ID, &p.UserID, &p.UserName, &p.BookID, &p.BookName, &p.PaymentNumber, &p.Status, &p.Date, &p.Price,
			&p.PaymentMethod, &p.FullName, &p.BillingAddress, &p.Pincode, &p.CardNumber, &p.UPIID, &p.BankName)
		if err != nil {
			return nil, wrap("SELECT", "payments", err)
		}
		payments = append(payments, p)
	}
	return payments, wrap("SELECT", "payments", rows.Err())
}

func (r *PaymentRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return wrap("UPDATE", "payments", err)
	}
	return affected(res, "UPDATE", "payments")
}
