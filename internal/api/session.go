package api

import (
	"errors"
	"net/http"
	"strings"

	"confidencevoice/internal/service"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWT verifies the bearer token and stores it under the "user" context key.
func JWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return failMessage(c, http.StatusUnauthorized, "Authentication required")
		},
	})
}

// sessionFrom reads the caller from the verified token. Routes without the JWT
// middleware get the zero Session.
func sessionFrom(c echo.Context) service.Session {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return service.Session{}
	}
	claims, ok := token.Claims.(*service.Claims)
	if !ok {
		return service.Session{}
	}
	return service.SessionFromClaims(claims)
}

// RequireLiveSession must run after JWT. It rejects tokens whose session has ended,
// so a revoked token or one carrying a role the user no longer has stops working.
func (h *AuthHandler) RequireLiveSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return failMessage(c, http.StatusUnauthorized, "Authentication required")
		}
		sess := sessionFrom(c)
		if err := h.userService.CheckSession(c.Request().Context(), sess.UserID, token.Raw); err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return failMessage(c, http.StatusUnauthorized, "Session expired, please log in again")
			}
			return fail(c, err)
		}
		return next(c)
	}
}

// RequireAdmin must run after JWT.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !sessionFrom(c).IsAdmin() {
			return failMessage(c, http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return token
	}
	return header
}
