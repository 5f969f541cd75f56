package auth

import (
	"context"
	"errors"
	"testing"

	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/security"
	"stayhub/internal/infra/storage/memory"
)

func testService() *Service {
	return &Service{
		Users:     memory.NewUserRepository(),
		Passwords: security.BcryptHasher{},
		Tokens:    security.JWTManager{Secret: []byte("test-secret")},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{Email: "Ada@Example.com", Name: "Ada", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.User.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", registered.User.Email)
	}
	if registered.Tokens.Access == "" || registered.Tokens.Refresh == "" {
		t.Error("expected both tokens issued")
	}
	if registered.User.PasswordHash == "correct horse" {
		t.Error("password stored in plain text")
	}

	logged, err := svc.Login(ctx, LoginParams{Email: "ada@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.User.ID != registered.User.ID {
		t.Error("login resolved a different user")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	cases := []struct {
		name    string
		params  RegisterParams
		wantErr error
	}{
		{"missing email", RegisterParams{Name: "Ada", Password: "long enough"}, domainuser.ErrEmailRequired},
		{"missing name", RegisterParams{Email: "a@b.c", Password: "long enough"}, domainuser.ErrNameRequired},
		{"short password", RegisterParams{Email: "a@b.c", Name: "Ada", Password: "short"}, ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.params); !errors.Is(err, tc.wantErr) {
				t.Errorf("Register = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := testService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterParams{Email: "ada@example.com", Name: "Ada", Password: "long enough"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterParams{Email: "ADA@example.com", Name: "Other", Password: "long enough"}); !errors.Is(err, domainuser.ErrEmailAlreadyUsed) {
		t.Errorf("Register = %v, want ErrEmailAlreadyUsed", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := testService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterParams{Email: "ada@example.com", Name: "Ada", Password: "long enough"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "ada@example.com", Password: "wrong password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginParams{Email: "nobody@example.com", Password: "long enough"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login unknown user = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshAndResolve(t *testing.T) {
	svc := testService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterParams{Email: "ada@example.com", Name: "Ada", Password: "long enough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, registered.Tokens.Refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.User.ID != registered.User.ID {
		t.Error("refresh resolved a different user")
	}

	user, err := svc.ResolveAccess(ctx, registered.Tokens.Access)
	if err != nil {
		t.Fatalf("ResolveAccess: %v", err)
	}
	if user.ID != registered.User.ID {
		t.Error("access token resolved a different user")
	}

	if _, err := svc.Refresh(ctx, registered.Tokens.Access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh with access token = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.ResolveAccess(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ResolveAccess garbage = %v, want ErrInvalidToken", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := testService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, RegisterParams{Email: "ada@example.com", Name: "Ada", Password: "long enough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, registered.User.ID, "travels a lot")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Description != "travels a lot" {
		t.Errorf("description = %q", updated.Description)
	}

	stored, err := svc.Users.ByID(ctx, registered.User.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Description != "travels a lot" {
		t.Error("description not persisted")
	}
}
