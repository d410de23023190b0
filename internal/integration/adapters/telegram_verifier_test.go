package adapters

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

const testBotToken = "12345:test-bot-token"

// signInitData produces a signed init data query string the way the Telegram
// client would, so Verify can be exercised against a known-good signature.
func signInitData(botToken string, values url.Values) string {
	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secretMAC.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func newTestVerifier(now time.Time) *telegramVerifier {
	verifier := NewTelegramVerifier(testBotToken, time.Hour).(*telegramVerifier)
	verifier.now = func() time.Time { return now }
	return verifier
}

func TestTelegramVerifier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	freshValues := func() url.Values {
		return url.Values{
			"auth_date": {strconv.FormatInt(now.Add(-time.Minute).Unix(), 10)},
			"query_id":  {"AAH9mQEAAAAAAP2ZAQtz"},
			"user":      {`{"id":987654321,"username":"piggybank","first_name":"Piet","language_code":"nl"}`},
		}
	}

	t.Run("should accept correctly signed init data and return the user", func(t *testing.T) {
		verifier := newTestVerifier(now)

		user, err := verifier.Verify(signInitData(testBotToken, freshValues()))
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if user.ID != 987654321 {
			t.Errorf("expected telegram ID 987654321, got %d", user.ID)
		}
		if user.Username != "piggybank" {
			t.Errorf("expected username piggybank, got %q", user.Username)
		}
		if user.LanguageCode != "nl" {
			t.Errorf("expected language code nl, got %q", user.LanguageCode)
		}
	})

	t.Run("should reject init data signed with a different bot token", func(t *testing.T) {
		verifier := newTestVerifier(now)

		_, err := verifier.Verify(signInitData("99999:other-token", freshValues()))
		if !errors.Is(err, domainerror.ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})

	t.Run("should reject init data with a tampered field", func(t *testing.T) {
		verifier := newTestVerifier(now)

		signed := signInitData(testBotToken, freshValues())
		tampered := strings.Replace(signed, "987654321", "111111111", 1)

		_, err := verifier.Verify(tampered)
		if !errors.Is(err, domainerror.ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})

	t.Run("should reject init data without a hash", func(t *testing.T) {
		verifier := newTestVerifier(now)

		_, err := verifier.Verify(freshValues().Encode())
		if !errors.Is(err, domainerror.ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})

	t.Run("should reject stale init data as expired", func(t *testing.T) {
		verifier := newTestVerifier(now)

		values := freshValues()
		values.Set("auth_date", strconv.FormatInt(now.Add(-2*time.Hour).Unix(), 10))

		_, err := verifier.Verify(signInitData(testBotToken, values))
		if !errors.Is(err, domainerror.ErrExpiredInitData) {
			t.Errorf("expected ErrExpiredInitData, got %v", err)
		}
	})

	t.Run("should reject init data without a user object", func(t *testing.T) {
		verifier := newTestVerifier(now)

		values := freshValues()
		values.Del("user")

		_, err := verifier.Verify(signInitData(testBotToken, values))
		if !errors.Is(err, domainerror.ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})
}
