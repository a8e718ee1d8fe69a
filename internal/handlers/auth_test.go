package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/validators"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users     map[uint]*models.User
	nextID    uint
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *stubUserRepo) CreateUser(user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetUsers(search string, excludeIDs []uint) ([]models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	return nil, nil
}

func (r *stubUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterCreatesUserWithToken(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, nil, "test-secret")

	c, rec := newAuthTestContext(t, `{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token in the response")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	stored, err := repo.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	// The stored password is a hash, never the plaintext.
	if stored.Password == "supersecret" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, nil, "test-secret")

	c, _ := newAuthTestContext(t, `{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	if err := h.Register(c); err != nil {
		t.Fatal(err)
	}

	c, _ = newAuthTestContext(t, `{"name":"Other Alice","email":"alice@example.com","password":"different1"}`)
	err := h.Register(c)
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Code != http.StatusConflict {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}
}

func TestRegisterInsertConflictMapsToConflict(t *testing.T) {
	// A concurrent registration can slip past the email pre-check and fail
	// on the unique index instead; that still has to surface as 409.
	repo := newStubUserRepo()
	repo.createErr = gorm.ErrDuplicatedKey
	h := NewAuthHandler(repo, nil, "test-secret")

	c, _ := newAuthTestContext(t, `{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	err := h.Register(c)
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Code != http.StatusConflict {
		t.Errorf("expected conflict for duplicate-key insert, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, nil, "test-secret")

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Alice","password":"supersecret"}`},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"supersecret"}`},
		{"short password", `{"name":"Alice","email":"alice@example.com","password":"short"}`},
		{"missing name", `{"email":"alice@example.com","password":"supersecret"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthTestContext(t, tt.body)
			err := h.Register(c)
			appErr, ok := apperrors.As(err)
			if !ok || appErr.Code != http.StatusBadRequest {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, nil, "test-secret")

	c, _ := newAuthTestContext(t, `{"name":"Alice","email":"alice@example.com","password":"supersecret"}`)
	if err := h.Register(c); err != nil {
		t.Fatal(err)
	}

	t.Run("success", func(t *testing.T) {
		c, rec := newAuthTestContext(t, `{"email":"alice@example.com","password":"supersecret"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a signed token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		c, _ := newAuthTestContext(t, `{"email":"alice@example.com","password":"wrongwrong"}`)
		err := h.Login(c)
		appErr, ok := apperrors.As(err)
		if !ok || appErr.Code != http.StatusBadRequest || appErr.Message != "Wrong password" {
			t.Errorf("expected wrong password error, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		c, _ := newAuthTestContext(t, `{"email":"nobody@example.com","password":"supersecret"}`)
		err := h.Login(c)
		appErr, ok := apperrors.As(err)
		if !ok || appErr.Code != http.StatusNotFound {
			t.Errorf("expected user not found, got %v", err)
		}
	})
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	repo := newStubUserRepo()
	h := NewAuthHandler(repo, nil, "test-secret")

	c, _ := newAuthTestContext(t, `{"idToken":"whatever"}`)
	err := h.FirebaseLogin(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when Firebase is not configured, got %v", err)
	}
}
