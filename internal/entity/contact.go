package entity

import "time"

type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Summary backs the admin dashboard tiles.
type Summary struct {
	Users          int `json:"users"`
	Books          int `json:"books"`
	Categories     int `json:"categories"`
	Orders         int `json:"orders"`
	UnreadMessages int `json:"unread_messages"`
}
