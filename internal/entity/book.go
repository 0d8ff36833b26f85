package entity

import "github.com/shopspring/decimal"

const (
	BookStatusActive   = "Active"
	BookStatusInactive = "Inactive"
)

type Book struct {
	ID           int             `json:"book_id"`
	Name         string          `json:"book_name"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Author       string          `json:"author"`
	Publisher    string          `json:"publisher"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	ISBN         string          `json:"isbn"`
	CoverImage   string          `json:"cover_image"`
}

// BookRequest is the admin form; it arrives as multipart so the cover can ride along.
type BookRequest struct {
	Name        string          `json:"book_name" form:"book_name" validate:"required"`
	CategoryID  int             `json:"category_id" form:"category_id" validate:"required"`
	Description string          `json:"description" form:"description"`
	Author      string          `json:"author" form:"author" validate:"required"`
	Publisher   string          `json:"publisher" form:"publisher"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Status      string          `json:"status" form:"status" validate:"required,oneof=Active Inactive"`
	ISBN        string          `json:"isbn" form:"isbn"`
}

type Category struct {
	ID          int    `json:"cat_id"`
	Name        string `json:"category_name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type CategoryRequest struct {
	Name        string `json:"category_name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof=Active Inactive"`
}
