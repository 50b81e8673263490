package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// Revoker answers whether a token id has been revoked by a logout.
type Revoker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the bearer JWT, rejects revoked tokens, and injects the
// identity claims into the request context.
func Auth(jwtSecret string, revoker Revoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return domain.ErrTokenExpired
				}
				return domain.ErrInvalidCredentials
			}
			if !tkn.Valid {
				return domain.ErrInvalidCredentials
			}

			role, err := domain.ParseRole(stringClaim(claims, "role"))
			if err != nil {
				return domain.ErrInvalidCredentials
			}

			jti := stringClaim(claims, "jti")
			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					// Revocation store down: fail closed.
					return echo.NewHTTPError(http.StatusServiceUnavailable, "revocation check unavailable")
				}
				if revoked {
					return domain.ErrTokenRevoked
				}
			}

			c.Set("jti", jti)
			c.Set("user_id", stringClaim(claims, "sub"))
			c.Set("email", stringClaim(claims, "email"))
			c.Set("name", stringClaim(claims, "name"))
			c.Set("role", role)

			return next(c)
		}
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
