package service

import (
	"confidencevoice/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Session identifies the caller of a service operation. It is built from the verified
// token by the API layer and passed explicitly into every call that acts for a user.
type Session struct {
	UserID int
	Name   string
	Role   string
}

func SessionFromClaims(c *Claims) Session {
	return Session{UserID: c.UserID, Name: c.Name, Role: c.Role}
}

func (s Session) IsAdmin() bool {
	return s.Role == entity.RoleAdmin
}

// authorize allows admins everywhere and users only on their own records.
func (s Session) authorize(userID int) error {
	if s.UserID == 0 {
		return ErrUnauthorized
	}
	if s.IsAdmin() || s.UserID == userID {
		return nil
	}
	return ErrForbidden
}
