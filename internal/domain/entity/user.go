// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a SpaarBot user. Identity comes from Telegram: TelegramID
// is the stable identifier, everything else is profile data refreshed on login.
type User struct {
	ID           uuid.UUID
	TelegramID   int64
	Username     string
	FirstName    string
	LanguageCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User entity from a verified Telegram identity.
func NewUser(telegramID int64, username, firstName, languageCode string) *User {
	now := time.Now().UTC()

	return &User{
		ID:           uuid.New(),
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LanguageCode: languageCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
