package entity

import "github.com/shopspring/decimal"

// CartLine is one row of the cart joined with the book it points at.
type CartLine struct {
	ID         int             `json:"cart_id"`
	UserID     int             `json:"user_id"`
	BookID     int             `json:"book_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	BookName   string          `json:"book_name"`
	CoverImage string          `json:"cover_image"`
	Author     string          `json:"author"`
}

type AddToCartRequest struct {
	BookID int `json:"book_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

/*
Mysql Schema:
CREATE TABLE cart (
	cart_id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	book_id INT NOT NULL,
	quantity INT NOT NULL DEFAULT 1,
	price DECIMAL(10,2) NOT NULL,
	UNIQUE KEY cart_user_book (user_id, book_id)
);
*/
