package repository

import (
	"context"

	"confidencevoice/internal/entity"
)

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db}
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cat_id, category_name, COALESCE(description, ''), status FROM categories ORDER BY cat_id`)
	if err != nil {
		return nil, wrap("SELECT", "categories", err)
	}
	defer rows.Close()

	categories := []entity.Category{}
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.Status); err != nil {
			return nil, wrap("SELECT", "categories", err)
		}
		categories = append(categories, category)
	}
	return categories, wrap("SELECT", "categories", rows.Err())
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	query := `INSERT INTO categories (category_name, description, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.Status)
	if err != nil {
		return nil, wrap("INSERT", "categories", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, wrap("INSERT", "categories", err)
	}
	category.ID = int(id)
	return category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET category_name = ?, description = ?, status = ? WHERE cat_id = ?`
	res, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.Status, category.ID)
	if err != nil {
		return wrap("UPDATE", "categories", err)
	}
	return affected(res, "UPDATE", "categories")
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE cat_id = ?`, id)
	if err != nil {
		return wrap("DELETE", "categories", err)
	}
	return affected(res, "DELETE", "categories")
}

func (r *CategoryRepository) CountCategories(ctx context.Context) (int, error) {
	return count(ctx, r.db, "categories", `SELECT COUNT(*) FROM categories`)
}
