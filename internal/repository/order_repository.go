package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"confidencevoice/internal/entity"
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db}
}

// CreateOrder inserts the order header and all its transaction rows. It does not open a
// transaction itself; callers run it inside Store.WithTx.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderQuery := `INSERT INTO orders (order_id, date, user_id, net_total, status) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, orderQuery, order.OrderID, order.Date, order.UserID, order.NetTotal, order.Status)
	if err != nil {
		return wrap("INSERT", "orders", err)
	}

	if len(order.Transactions) == 0 {
		return nil
	}

	// Insert order transactions with batch
	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_transactions (order_id, user_id, book_id, description, price, quantity) VALUES `)
	values := make([]interface{}, 0, len(order.Transactions)*6)
	for i, t := range order.Transactions {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")
		values = append(values, order.OrderID, order.UserID, t.BookID, t.Description, t.Price, t.Quantity)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), values...); err != nil {
		return wrap("INSERT", "order_transactions", err)
	}
	return nil
}

func (r *OrderRepository) CreateTransaction(ctx context.Context, t *entity.OrderTransaction) (int, error) {
	query := `INSERT INTO order_transactions (order_id, user_id, book_id, description, price, quantity) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, t.OrderID, t.UserID, t.BookID, t.Description, t.Price, t.Quantity)
	if err != nil {
		return 0, wrap("INSERT", "order_transactions", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("INSERT", "order_transactions", err)
	}
	return int(id), nil
}

// orderListSelect keeps orders whose books or transaction rows are gone: orders are
// never deleted, books may be.
const orderListSelect = `
	SELECT o.order_id, o.date, o.user_id, COALESCE(u.name, ''), o.net_total, o.status, ot.book_id, COALESCE(b.book_name, '')
	FROM orders o
	LEFT JOIN users u ON o.user_id = u.id
	LEFT JOIN order_transactions ot ON o.order_id = ot.order_id
	LEFT JOIN books b ON ot.book_id = b.book_id`

// GetOrders lists every order, newest first, each with the books it contains.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]entity.Order, error) {
	return r.queryOrders(ctx, orderListSelect+` ORDER BY o.date DESC, o.order_id DESC`)
}

func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error) {
	return r.queryOrders(ctx, orderListSelect+` WHERE o.user_id = ? ORDER BY o.date DESC, o.order_id DESC`, userID)
}

// queryOrders folds the one-row-per-book join back into orders, keeping row order.
func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("SELECT", "orders", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	index := map[string]int{}
	for rows.Next() {
		var o entity.Order
		var bookID sql.NullInt64
		var bookName string
		if err := rows.Scan(&o.OrderID, &o.Date, &o.UserID, &o.UserName, &o.NetTotal, &o.Status, &bookID, &bookName); err != nil {
			return nil, wrap("SELECT", "orders", err)
		}
		i, ok := index[o.OrderID]
		if !ok {
			i = len(orders)
			index[o.OrderID] = i
			o.Books = []entity.OrderBook{}
			orders = append(orders, o)
		}
		if bookID.Valid {
			orders[i].Books = append(orders[i].Books, entity.OrderBook{BookID: int(bookID.Int64), BookName: bookName})
		}
	}
	return orders, wrap("SELECT", "orders", rows.Err())
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID string) (*entity.Order, error) {
	orderQuery := `SELECT order_id, date, user_id, net_total, status FROM orders WHERE order_id = ?`

	order := &entity.Order{}
	err := r.db.QueryRowContext(ctx, orderQuery, orderID).Scan(&order.OrderID, &order.Date, &order.UserID, &order.NetTotal, &order.Status)
	if err != nil {
		return nil, wrap("SELECT", "orders", err)
	}

	transactions, err := r.GetTransactionsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Transactions = transactions
	return order, nil
}

// GetOrderOwner returns the user an order belongs to.
func (r *OrderRepository) GetOrderOwner(ctx context.Context, orderID string) (int, error) {
	var userID int
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM orders WHERE order_id = ?`, orderID).Scan(&userID)
	if err != nil {
		return 0, wrap("SELECT", "orders", err)
	}
	return userID, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE order_id = ?`, status, orderID)
	if err != nil {
		return wrap("UPDATE", "orders", err)
	}
	return affected(res, "UPDATE", "orders")
}

func (r *OrderRepository) CountOrders(ctx context.Context) (int, error) {
	return count(ctx, r.db, "orders", `SELECT COUNT(*) FROM orders`)
}

func (r *OrderRepository) GetTransactions(ctx context.Context) ([]entity.OrderTransaction, error) {
	query := `
		SELECT ot.id, ot.order_id, ot.user_id, u.name, ot.book_id, COALESCE(b.book_name, ''), COALESCE(ot.description, ''), ot.price, ot.quantity
		FROM order_transactions ot
		JOIN users u ON ot.user_id = u.id
		LEFT JOIN books b ON ot.book_id = b.book_id
		ORDER BY ot.order_id, ot.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("SELECT", "order_transactions", err)
	}
	defer rows.Close()

	transactions := []entity.OrderTransaction{}
	for rows.Next() {
		var t entity.OrderTransaction
		if err := rows.Scan(&t.ID, &t.OrderID, &t.UserID, &t.UserName, &t.BookID, &t.BookName, &t.Description, &t.Price, &t.Quantity); err != nil {
			return nil, wrap("SELECT", "order_transactions", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, wrap("SELECT", "order_transactions", rows.Err())
}

func (r *OrderRepository) GetTransactionsByOrder(ctx context.Context, orderID string) ([]entity.OrderTransaction, error) {
	query := `
		SELECT ot.id, ot.order_id, ot.user_id, ot.book_id, COALESCE(b.book_name, ''), COALESCE(ot.description, ''), ot.price, ot.quantity
		FROM order_transactions ot
		LEFT JOIN books b ON ot.book_id = b.book_id
		WHERE ot.order_id = ?
		ORDER BY ot.id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, wrap("SELECT", "order_transactions", err)
	}
	defer rows.Close()

	transactions := []entity.OrderTransaction{}
	for rows.Next() {
		var t entity.OrderTransaction
		if err := rows.Scan(&t.ID, &t.OrderID, &t.UserID, &t.BookID, &t.BookName, &t.Description, &t.Price, &t.Quantity); err != nil {
			return nil, wrap("SELECT", "order_transactions", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, wrap("SELECT", "order_transactions", rows.Err())
}

func (r *OrderRepository) GetTransactionsByUser(ctx context.Context, userID int) ([]entity.OrderTransaction, error) {
	query := `
		SELECT ot.id, ot.order_id, ot.user_id, ot.book_id, COALESCE(b.book_name, ''), COALESCE(ot.description, ''), ot.price, ot.quantity, o.date
		FROM order_transactions ot
		JOIN orders o ON ot.order_id = o.order_id
		LEFT JOIN books b ON ot.book_id = b.book_id
		WHERE ot.user_id = ?
		ORDER BY o.date DESC, ot.order_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrap("SELECT", "order_transactions", err)
	}
	defer rows.Close()

	transactions := []entity.OrderTransaction{}
	for rows.Next() {
		var t entity.OrderTransaction
		var date time.Time
		if err := rows.Scan(&t.ID, &t.OrderID, &t.UserID, &t.BookID, &t.BookName, &t.Description, &t.Price, &t.Quantity, &date); err != nil {
			return nil, wrap("SELECT", "order_transactions", err)
		}
		t.Date = &date
		transactions = append(transactions, t)
	}
	return transactions, wrap("SELECT", "order_transactions", rows.Err())
}
