package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/recipebox/recipebox-backend/internal/repos/testutil"
	"github.com/recipebox/recipebox-backend/internal/requestdata"
)

func newAuthServiceForTest(t *testing.T, env *serviceEnv) AuthService {
	t.Helper()
	return NewAuthService(env.db, testutil.Logger(t), env.userRepo, env.userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	env := newServiceEnv(t)
	svc := newAuthServiceForTest(t, env)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{
		Email:    "  Cook@Example.COM ",
		Password: "supersafe",
		Name:     "Cook",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "cook@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "supersafe" {
		t.Fatalf("password stored in plaintext")
	}

	var vErr *ValidationError
	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "cook@example.com", Password: "supersafe", Name: "Dup"}); !errors.As(err, &vErr) {
		t.Fatalf("duplicate register: expected ValidationError, got %v", err)
	}
	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "no-at-sign", Password: "pw", Name: ""}); !errors.As(err, &vErr) {
		t.Fatalf("invalid register: expected ValidationError, got %v", err)
	}

	pair, err := svc.LoginUser(ctx, "cook@example.com", "supersafe")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("LoginUser: incomplete token pair: %+v", pair)
	}
	if _, err := svc.LoginUser(ctx, "cook@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("LoginUser (bad password): expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.LoginUser(ctx, "nobody@example.com", "supersafe"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("LoginUser (unknown email): expected ErrUnauthorized, got %v", err)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("SetContextFromToken: wrong request data: %+v", rd)
	}
	if _, err := svc.SetContextFromToken(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("SetContextFromToken (garbage): expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthServiceRefreshRotation(t *testing.T) {
	env := newServiceEnv(t)
	svc := newAuthServiceForTest(t, env)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{Email: "rotate@example.com", Password: "supersafe", Name: "R"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	pair, err := svc.LoginUser(ctx, "rotate@example.com", "supersafe")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	rotated, err := svc.RefreshUser(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}
	// The replaced token is dead.
	if _, err := svc.RefreshUser(ctx, pair.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("RefreshUser (stale): expected ErrUnauthorized, got %v", err)
	}

	authedCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: user.ID})
	if err := svc.LogoutUser(authedCtx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	if _, err := svc.RefreshUser(ctx, rotated.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("RefreshUser (after logout): expected ErrUnauthorized, got %v", err)
	}
	if err := svc.LogoutUser(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("LogoutUser (anonymous): expected ErrUnauthorized, got %v", err)
	}
}
