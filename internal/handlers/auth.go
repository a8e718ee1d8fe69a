package handlers

import (
	"errors"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles registration and authentication
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when Firebase login is not configured.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register handles local account registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.userRepository.GetUserByEmail(req.Email)
	if err == nil {
		return apperrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Bio:         req.Bio,
		DateOfBirth: req.DateOfBirth,
		Hometown:    req.Hometown,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		// Backstop for a concurrent registration with the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUserAlreadyExists
		}
		return err
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

// Login handles local authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return apperrors.ErrWrongPassword
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// FirebaseLogin verifies a Firebase ID token, upserts the matching local
// user and issues a local JWT.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return apperrors.ErrNotAuthenticated
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = h.userRepository.GetUserByEmail(email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &models.User{Name: name, Email: email, FirebaseUID: &token.UID}
			if err := h.userRepository.CreateUser(user); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			user.FirebaseUID = &token.UID
			if err := h.userRepository.UpdateUser(user); err != nil {
				return err
			}
		}
	} else if err != nil {
		return err
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": localJWT})
}

// generateJWT generates a signed token carrying the user's identity
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
