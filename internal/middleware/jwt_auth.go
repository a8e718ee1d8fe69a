package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// UserResolver loads the user record a token's claims point at.
type UserResolver interface {
	GetUserByID(id uint) (*models.User, error)
}

// JWTAuthMiddleware checks for a valid bearer token and resolves it to a
// full User record stored on the request context. Handlers read it back via
// CurrentUser and pass it into services explicitly.
func JWTAuthMiddleware(resolver UserResolver, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperrors.ErrNotAuthenticated
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return apperrors.ErrNotAuthenticated
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return apperrors.ErrNotAuthenticated
			}

			user, err := resolver.GetUserByID(claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrNotAuthenticated
				}
				return err
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user resolved by the middleware,
// or nil outside an authenticated route.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}
