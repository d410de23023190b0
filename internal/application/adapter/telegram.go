// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TelegramUser is the identity extracted from verified Mini App init data.
type TelegramUser struct {
	ID           int64
	Username     string
	FirstName    string
	LanguageCode string
}

// TelegramVerifier verifies Telegram Mini App init data. The init data string
// is treated as opaque by everything above this interface; its signature
// scheme belongs to the integration layer.
type TelegramVerifier interface {
	// Verify checks the init data signature and freshness and returns the
	// embedded user identity.
	Verify(initData string) (*TelegramUser, error)
}

// TelegramNotifier sends messages to users through the Telegram Bot API.
type TelegramNotifier interface {
	// SendMessage delivers a plain-text message to the given Telegram chat.
	SendMessage(ctx context.Context, chatID int64, text string) error
}
