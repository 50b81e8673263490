package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/api/metrics"
	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

// TokenRevoker puts a token id on the denylist; wired to the Redis store.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string) error
}

type AuthHandler struct {
	authService ports.AuthService
	revoker     TokenRevoker
}

func NewAuthHandler(authService ports.AuthService, revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{authService: authService, revoker: revoker}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
	if req.Role != "" {
		role, err := domain.ParseRole(req.Role)
		if err != nil {
			return err
		}
		input.Role = role
	}

	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a signed bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the identity behind the presented token. Clients call it on
// startup to restore a persisted session.
func (h *AuthHandler) Me(c echo.Context) error {
	user := &domain.User{
		ID:    stringFromCtx(c, "user_id"),
		Name:  stringFromCtx(c, "name"),
		Email: stringFromCtx(c, "email"),
	}
	if role, ok := c.Get("role").(domain.Role); ok {
		user.Role = role
	}
	return c.JSON(http.StatusOK, user)
}

// Logout revokes the presented token so it cannot be replayed.
func (h *AuthHandler) Logout(c echo.Context) error {
	jti := stringFromCtx(c, "jti")
	if jti != "" && h.revoker != nil {
		if err := h.revoker.Revoke(c.Request().Context(), jti); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func stringFromCtx(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}
