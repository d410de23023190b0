package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/domain/entity"
)

type fakeVerifier struct {
	user *adapter.TelegramUser
	err  error
}

func (f *fakeVerifier) Verify(initData string) (*adapter.TelegramUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.users[u.TelegramID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	return f.users[telegramID], nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	f.users[u.TelegramID] = u
	return nil
}

type fakeTokenService struct {
	token string
}

func (f *fakeTokenService) GenerateToken(ctx context.Context, userID uuid.UUID, telegramID int64) (string, error) {
	return f.token, nil
}

func (f *fakeTokenService) ValidateToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func TestAuthenticateUseCase_Execute(t *testing.T) {
	identity := &adapter.TelegramUser{
		ID:           123456,
		Username:     "piggybank",
		FirstName:    "Piet",
		LanguageCode: "nl",
	}

	t.Run("should create a new user on first login", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		uc := NewAuthenticateUseCase(&fakeVerifier{user: identity}, userRepo, &fakeTokenService{token: "jwt-token"})

		output, err := uc.Execute(context.Background(), AuthenticateInput{InitData: "query_id=abc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.IsNew {
			t.Errorf("expected new user")
		}
		if output.Token != "jwt-token" {
			t.Errorf("expected minted token, got %q", output.Token)
		}
		if stored := userRepo.users[123456]; stored == nil || stored.FirstName != "Piet" {
			t.Errorf("expected stored user, got %+v", stored)
		}
	})

	t.Run("should reuse an existing user and refresh the profile", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		existing := entity.NewUser(123456, "oldname", "Piet", "nl")
		userRepo.users[123456] = existing
		uc := NewAuthenticateUseCase(&fakeVerifier{user: identity}, userRepo, &fakeTokenService{token: "jwt-token"})

		output, err := uc.Execute(context.Background(), AuthenticateInput{InitData: "query_id=abc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.IsNew {
			t.Errorf("expected existing user")
		}
		if output.User.ID != existing.ID {
			t.Errorf("expected same user ID")
		}
		if userRepo.users[123456].Username != "piggybank" {
			t.Errorf("expected refreshed username, got %q", userRepo.users[123456].Username)
		}
	})

	t.Run("should reject missing init data", func(t *testing.T) {
		uc := NewAuthenticateUseCase(&fakeVerifier{user: identity}, newFakeUserRepo(), &fakeTokenService{})

		_, err := uc.Execute(context.Background(), AuthenticateInput{})

		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Code != domainerror.ErrCodeMissingInitData {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingInitData, authErr.Code)
		}
	})

	t.Run("should reject a bad signature", func(t *testing.T) {
		uc := NewAuthenticateUseCase(&fakeVerifier{err: domainerror.ErrInvalidInitData}, newFakeUserRepo(), &fakeTokenService{})

		_, err := uc.Execute(context.Background(), AuthenticateInput{InitData: "tampered"})

		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Code != domainerror.ErrCodeInvalidInitData {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidInitData, authErr.Code)
		}
	})

	t.Run("should flag expired init data distinctly", func(t *testing.T) {
		uc := NewAuthenticateUseCase(&fakeVerifier{err: domainerror.ErrExpiredInitData}, newFakeUserRepo(), &fakeTokenService{})

		_, err := uc.Execute(context.Background(), AuthenticateInput{InitData: "stale"})

		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Code != domainerror.ErrCodeExpiredInitData {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeExpiredInitData, authErr.Code)
		}
	})
}
