// Package auth contains authentication use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// AuthenticateInput represents the input for authentication.
type AuthenticateInput struct {
	InitData string // raw Telegram Mini App init data
}

// AuthenticateOutput represents the output of authentication.
type AuthenticateOutput struct {
	Token string
	User  *entity.User
	IsNew bool
}

// AuthenticateUseCase verifies Telegram init data, upserts the user and
// mints a session token.
type AuthenticateUseCase struct {
	verifier     adapter.TelegramVerifier
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewAuthenticateUseCase creates a new AuthenticateUseCase instance.
func NewAuthenticateUseCase(
	verifier adapter.TelegramVerifier,
	userRepo adapter.UserRepository,
	tokenService adapter.TokenService,
) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		verifier:     verifier,
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute performs the authentication.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, input AuthenticateInput) (*AuthenticateOutput, error) {
	if input.InitData == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingInitData,
			"init data is required",
			domainerror.ErrMissingInitData,
		)
	}

	identity, err := uc.verifier.Verify(input.InitData)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpiredInitData) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeExpiredInitData,
				"init data has expired",
				err,
			)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidInitData,
			"init data signature is invalid",
			err,
		)
	}

	user, err := uc.userRepo.FindByTelegramID(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	isNew := user == nil
	if isNew {
		user = entity.NewUser(identity.ID, identity.Username, identity.FirstName, identity.LanguageCode)
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if profileChanged(user, identity) {
		user.Username = identity.Username
		user.FirstName = identity.FirstName
		user.LanguageCode = identity.LanguageCode
		user.UpdatedAt = time.Now().UTC()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	token, err := uc.tokenService.GenerateToken(ctx, user.ID, user.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthenticateOutput{
		Token: token,
		User:  user,
		IsNew: isNew,
	}, nil
}

func profileChanged(user *entity.User, identity *adapter.TelegramUser) bool {
	return user.Username != identity.Username ||
		user.FirstName != identity.FirstName ||
		user.LanguageCode != identity.LanguageCode
}
