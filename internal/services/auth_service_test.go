package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/yungbote/cablehouse-backend/internal/domain"
)

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, " Worker1 ", "s3cret!", domain.RoleWorker)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "worker1" || u.Role != domain.RoleWorker {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "s3cret!" || u.PasswordHash == "" {
		t.Fatalf("password must be hashed")
	}

	res, err := f.auth.Login(ctx, "worker1", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" || res.User.ID != u.ID {
		t.Fatalf("unexpected login result: %+v", res)
	}

	rd, err := f.auth.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if rd.UserID != u.ID || rd.Role != domain.RoleWorker || rd.Username != "worker1" {
		t.Fatalf("unexpected request data: %+v", rd)
	}
}

func TestAuthServiceLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, "ops", "s3cret!", domain.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := f.auth.Login(ctx, "ops", "wrong")
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = f.auth.Login(ctx, "nobody", "s3cret!")
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")

	_, err = f.auth.Login(ctx, "", "")
	requireAPIError(t, err, http.StatusBadRequest, "validation_error")
}

func TestAuthServiceRegisterRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, "ops", "s3cret!", domain.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := f.auth.Register(ctx, "OPS", "another", domain.RoleAdmin)
	requireAPIError(t, err, http.StatusConflict, "username_taken")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, err = f.auth.Register(ctx, "x", "s3cret!", domain.Role("root"))
	requireAPIError(t, err, http.StatusBadRequest, "validation_error")
}

func TestAuthServiceParseTokenRejectsExpiredAndForeign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, "ops", "s3cret!", domain.RoleAdmin); err != nil {
		t.Fatalf("Register: %v", err)
	}
	res, err := f.auth.Login(ctx, "ops", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc := f.auth.(*authService)
	svc.now = func() time.Time { return time.Now().Add(DefaultAccessTTL + time.Minute) }
	_, err = f.auth.ParseToken(res.Token)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
	svc.now = time.Now

	other := NewAuthService(f.db, svc.log, f.userRepo, "other-secret", time.Hour)
	_, err = other.ParseToken(res.Token)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	_, err = f.auth.ParseToken("")
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestAuthServiceEnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := f.auth.EnsureAdmin(ctx, "admin", "bootstrap"); err != nil {
			t.Fatalf("EnsureAdmin #%d: %v", i, err)
		}
	}
	n, err := f.userRepo.CountByRole(ctx, nil, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("CountByRole: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one admin, got %d", n)
	}

	users, err := f.users.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 || users[0].Username != "admin" {
		t.Fatalf("unexpected users: %+v", users)
	}

	if err := f.auth.EnsureAdmin(ctx, "", ""); err != nil {
		t.Fatalf("EnsureAdmin with no credentials should be a no-op: %v", err)
	}
}
