package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated identity is stored.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// The scheme is matched literally: "bearer x" is rejected.
const bearerPrefix = "Bearer "

// Auth validates the bearer token and injects the caller's identity into the
// request context. Any missing, malformed, expired, or tampered token yields
// 401; the server-side role claim is the only role ever trusted.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, func(reason string) error {
		return echo.NewHTTPError(http.StatusUnauthorized, reason)
	})
}

// AdminAuth authenticates like Auth but renders every failure as the same
// 403 body, so a caller probing the admin surface cannot tell a missing or
// bad token apart from an insufficient role.
func AdminAuth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, func(string) error {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Admin access required")
	})
}

func authenticate(jwtSecret string, fail func(reason string) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return fail("missing authorization header")
			}
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				return fail("invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(strings.TrimSpace(authHeader[len(bearerPrefix):]), claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return fail("invalid token")
			}

			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" || role == "" {
				return fail("invalid token")
			}

			c.Set(CtxUserID, sub)
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}
