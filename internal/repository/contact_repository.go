package repository

import (
	"context"

	"confidencevoice/internal/entity"
)

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db}
}

func (r *ContactRepository) CreateContact(ctx context.Context, c *entity.Contact) error {
	query := `INSERT INTO contacts (name, email, subject, message) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Subject, c.Message)
	if err != nil {
		return wrap("INSERT", "contacts", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wrap("INSERT", "contacts", err)
	}
	c.ID = int(id)
	return nil
}

func (r *ContactRepository) GetContacts(ctx context.Context) ([]entity.Contact, error) {
	query := `SELECT id, name, email, subject, message, is_read, created_at FROM contacts ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("SELECT", "contacts", err)
	}
	defer rows.Close()

	contacts := []entity.Contact{}
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt); err != nil {
			return nil, wrap("SELECT", "contacts", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, wrap("SELECT", "contacts", rows.Err())
}

func (r *ContactRepository) MarkRead(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET is_read = TRUE WHERE id = ?`, id)
	if err != nil {
		return wrap("UPDATE", "contacts", err)
	}
	return affected(res, "UPDATE", "contacts")
}

func (r *ContactRepository) CountUnread(ctx context.Context) (int, error) {
	return count(ctx, r.db, "contacts", `SELECT COUNT(*) FROM contacts WHERE is_read = FALSE`)
}
