package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginDistinguishesBadCredentialsFromFailures(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	uow := newFakeUow()
	uow.users["ana@example.com"] = &entity.User{
		Id:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	svc := NewAuthService(uow, time.Hour)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "correct horse"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if res.Token == "" {
			t.Error("expected a signed token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "nope"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "correct horse"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("database failure is not a 401", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		uow.userFindErr = dbErr
		defer func() { uow.userFindErr = nil }()

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "correct horse"})
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected the raw database error, got %v", err)
		}
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			t.Errorf("database error must not carry an HTTP status, got %d", fiberErr.Code)
		}
	})
}
