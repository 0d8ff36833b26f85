package repository

import (
	"context"
	"strings"

	"confidencevoice/internal/entity"
	"github.com/shopspring/decimal"
)

// CartRepository addresses single lines by their surrogate cart_id only, always
// scoped to the owning user.
type CartRepository struct {
	db DBTX
}

func NewCartRepository(db DBTX) *CartRepository {
	return &CartRepository{db}
}

const cartSelect = `
	SELECT c.cart_id, c.user_id, c.book_id, c.quantity, c.price, b.book_name, COALESCE(b.cover_image, ''), b.author
	FROM cart c
	JOIN books b ON c.book_id = b.book_id
	WHERE c.user_id = ?
	ORDER BY c.cart_id`

func (r *CartRepository) GetCart(ctx context.Context, userID int) ([]entity.CartLine, error) {
	return r.queryCart(ctx, cartSelect, userID)
}

// GetCartForUpdate locks the user's cart rows until the surrounding transaction ends,
// so a concurrent quantity change cannot alter what is being charged.
func (r *CartRepository) GetCartForUpdate(ctx context.Context, userID int) ([]entity.CartLine, error) {
	return r.queryCart(ctx, cartSelect+` FOR UPDATE`, userID)
}

func (r *CartRepository) queryCart(ctx context.Context, query string, userID int) ([]entity.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrap("SELECT", "cart", err)
	}
	defer rows.Close()

	lines := []entity.CartLine{}
	for rows.Next() {
		var line entity.CartLine
		err := rows.Scan(&line.ID, &line.UserID, &line.BookID, &line.Quantity, &line.Price, &line.BookName, &line.CoverImage, &line.Author)
		if err != nil {
			return nil, wrap("SELECT", "cart", err)
		}
		lines = append(lines, line)
	}
	return lines, wrap("SELECT", "cart", rows.Err())
}

// AddOrIncrement inserts a line at quantity 1, or bumps the existing (user, book) line by one.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, bookID int, price decimal.Decimal) error {
	query := `INSERT INTO cart (user_id, book_id, quantity, price) VALUES (?, ?, 1, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + 1`
	_, err := r.db.ExecContext(ctx, query, userID, bookID, price)
	return wrap("INSERT", "cart", err)
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, cartID, quantity int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cart SET quantity = ? WHERE cart_id = ? AND user_id = ?`, quantity, cartID, userID)
	if err != nil {
		return wrap("UPDATE", "cart", err)
	}
	return affected(res, "UPDATE", "cart")
}

func (r *CartRepository) RemoveLine(ctx context.Context, userID, cartID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE cart_id = ? AND user_id = ?`, cartID, userID)
	if err != nil {
		return wrap("DELETE", "cart", err)
	}
	return affected(res, "DELETE", "cart")
}

// ClearCart deletes every line of the user. Clearing an empty cart is not an error.
func (r *CartRepository) ClearCart(ctx context.Context, userID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE user_id = ?`, userID)
	if err != nil {
		return 0, wrap("DELETE", "cart", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap("DELETE", "cart", err)
	}
	return n, nil
}

// RemoveLines deletes the given lines of the user, leaving anything added later alone.
func (r *CartRepository) RemoveLines(ctx context.Context, userID int, cartIDs []int) (int64, error) {
	if len(cartIDs) == 0 {
		return 0, nil
	}
	query := `DELETE FROM cart WHERE user_id = ? AND cart_id IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(cartIDs)), ", ") + `)`
	args := make([]interface{}, 0, len(cartIDs)+1)
	args = append(args, userID)
	for _, id := range cartIDs {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrap("DELETE", "cart", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap("DELETE", "cart", err)
	}
	return n, nil
}
