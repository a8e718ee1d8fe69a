package validators

import (
	"net/http"
	"testing"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr bool
	}{
		{"valid", models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "supersecret"}, false},
		{"missing name", models.RegisterRequest{Email: "alice@example.com", Password: "supersecret"}, true},
		{"invalid email", models.RegisterRequest{Name: "Alice", Email: "nope", Password: "supersecret"}, true},
		{"short password", models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "short"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				appErr, ok := apperrors.As(err)
				if !ok || appErr.Code != http.StatusBadRequest {
					t.Errorf("validation failure must be a 400 domain error, got %v", err)
				}
			}
		})
	}
}

func TestValidateOneOfConstraint(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&models.RespondFriendRequestBody{SenderID: 1, Action: "accept"}); err != nil {
		t.Errorf("accept should validate: %v", err)
	}
	if err := v.Validate(&models.RespondFriendRequestBody{SenderID: 1, Action: "maybe"}); err == nil {
		t.Error("unexpected action must fail validation")
	}
}
