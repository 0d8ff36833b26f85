package api

import (
	"net/http"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register --> POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	req := entity.RegisterRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	user, err := h.userService.Register(c.Request().Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, "Registration successful", echo.Map{"user": user})
}

// Login --> POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	req := entity.LoginRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	res, err := h.userService.Login(c.Request().Context(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Login successful", echo.Map{"token": res.Token, "user_id": res.UserID, "role": res.Role})
}

// ChangePassword --> POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	req := entity.ChangePasswordRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.userService.ChangePassword(c.Request().Context(), sessionFrom(c), &req); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Password updated successfully", nil)
}

// ValidateToken --> POST /api/auth/validate-token, called by the analysis services
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		body := struct {
			Token string `json:"token"`
		}{}
		if err := c.Bind(&body); err == nil {
			token = body.Token
		}
	}
	if token == "" {
		return failMessage(c, http.StatusUnauthorized, "No token provided")
	}

	user, err := h.userService.ValidateToken(c.Request().Context(), token)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "Token is valid", echo.Map{"user": user})
}

// GetUsers --> GET /api/auth/users
func (h *AuthHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.GetUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"users": users})
}

// UpdateUser --> PUT /api/auth/users/:id
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	req := entity.UpdateUserRequest{}
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}
	if err := h.userService.UpdateUser(c.Request().Context(), id, &req); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "User updated successfully", nil)
}

// DeleteUser --> DELETE /api/auth/users/:id
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.userService.DeleteUser(c.Request().Context(), sessionFrom(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "User deleted successfully", nil)
}
