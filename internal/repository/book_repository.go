package repository

import (
	"context"

	"confidencevoice/internal/entity"
)

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db}
}

const bookSelect = `
	SELECT b.book_id, b.book_name, b.category_id, COALESCE(c.category_name, ''), COALESCE(b.description, ''),
	       b.author, COALESCE(b.publisher, ''), b.price, b.status, COALESCE(b.isbn, ''), COALESCE(b.cover_image, '')
	FROM books b
	LEFT JOIN categories c ON b.category_id = c.cat_id`

func scanBook(s interface{ Scan(...interface{}) error }, book *entity.Book) error {
	return s.Scan(&book.ID, &book.Name, &book.CategoryID, &book.CategoryName, &book.Description,
		&book.Author, &book.Publisher, &book.Price, &book.Status, &book.ISBN, &book.CoverImage)
}

func (r *BookRepository) GetBooks(ctx context.Context, activeOnly bool) ([]entity.Book, error) {
	query := bookSelect
	var args []interface{}
	if activeOnly {
		query += ` WHERE b.status = ?`
		args = append(args, entity.BookStatusActive)
	}
	query += ` ORDER BY b.book_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("SELECT", "books", err)
	}
	defer rows.Close()

	books := []entity.Book{}
	for rows.Next() {
		var book entity.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, wrap("SELECT", "books", err)
		}
		books = append(books, book)
	}
	return books, wrap("SELECT", "books", rows.Err())
}

func (r *BookRepository) GetBookByID(ctx context.Context, id int) (*entity.Book, error) {
	book := &entity.Book{}
	if err := scanBook(r.db.QueryRowContext(ctx, bookSelect+` WHERE b.book_id = ?`, id), book); err != nil {
		return nil, wrap("SELECT", "books", err)
	}
	return book, nil
}

func (r *BookRepository) CreateBook(ctx context.Context, book *entity.Book) (*entity.Book, error) {
	query := `INSERT INTO books (book_name, category_id, description, author, publisher, price, status, isbn, cover_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, book.Name, book.CategoryID, book.Description, book.Author,
		book.Publisher, book.Price, book.Status, book.ISBN, book.CoverImage)
	if err != nil {
		return nil, wrap("INSERT", "books", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrap("INSERT", "books", err)
	}
	book.ID = int(id)
	return book, nil
}

// UpdateBook rewrites every column; the cover only changes when a new one was uploaded.
func (r *BookRepository) UpdateBook(ctx context.Context, book *entity.Book) error {
	query := `UPDATE books SET book_name = ?, category_id = ?, description = ?, author = ?, publisher = ?, price = ?, status = ?, isbn = ?`
	args := []interface{}{book.Name, book.CategoryID, book.Description, book.Author, book.Publisher, book.Price, book.Status, book.ISBN}
	if book.CoverImage != "" {
		query += `, cover_image = ?`
		args = append(args, book.CoverImage)
	}
	query += ` WHERE book_id = ?`
	args = append(args, book.ID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrap("UPDATE", "books", err)
	}
	return affected(res, "UPDATE", "books")
}

func (r *BookRepository) DeleteBook(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE book_id = ?`, id)
	if err != nil {
		return wrap("DELETE", "books", err)
	}
	return affected(res, "DELETE", "books")
}

func (r *BookRepository) CountBooks(ctx context.Context) (int, error) {
	return count(ctx, r.db, "books", `SELECT COUNT(*) FROM books`)
}
