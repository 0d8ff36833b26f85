package repository

import (
	"context"

	"confidencevoice/internal/entity"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db}
}

const userColumns = `id, name, email, password_hash, role, created_at`

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return nil, wrap("INSERT", "users", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrap("INSERT", "users", err)
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user := &entity.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, wrap("SELECT", "users", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	user := &entity.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, wrap("SELECT", "users", err)
	}
	return user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, wrap("SELECT", "users", err)
	}
	defer rows.Close()

	users := []entity.User{}
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, wrap("SELECT", "users", err)
		}
		users = append(users, user)
	}
	return users, wrap("SELECT", "users", rows.Err())
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Role, user.ID)
	if err != nil {
		return wrap("UPDATE", "users", err)
	}
	return affected(res, "UPDATE", "users")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return wrap("UPDATE", "users", err)
	}
	return affected(res, "UPDATE", "users")
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return wrap("DELETE", "users", err)
	}
	return affected(res, "DELETE", "users")
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	return count(ctx, r.db, "users", `SELECT COUNT(*) FROM users`)
}
