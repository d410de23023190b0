package adapters

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spaarbot/backend/internal/application/adapter"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// DefaultInitDataMaxAge bounds how old init data may be before it is
// rejected as stale.
const DefaultInitDataMaxAge = 24 * time.Hour

// initDataUser mirrors the JSON user object embedded in init data.
type initDataUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LanguageCode string `json:"language_code"`
}

// telegramVerifier implements adapter.TelegramVerifier for Telegram Mini App
// init data: the data-check-string is every key=value pair except "hash",
// sorted and joined with newlines, signed with
// HMAC-SHA256(key=HMAC-SHA256("WebAppData", botToken)).
type telegramVerifier struct {
	secret []byte // HMAC-SHA256("WebAppData", botToken)
	maxAge time.Duration
	now    func() time.Time
}

// NewTelegramVerifier creates a new Telegram init data verifier.
func NewTelegramVerifier(botToken string, maxAge time.Duration) adapter.TelegramVerifier {
	if maxAge <= 0 {
		maxAge = DefaultInitDataMaxAge
	}

	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))

	return &telegramVerifier{
		secret: mac.Sum(nil),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Verify checks the init data signature and freshness and returns the
// embedded user identity.
func (v *telegramVerifier) Verify(initData string) (*adapter.TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, domainerror.ErrInvalidInitData
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, domainerror.ErrInvalidInitData
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(hash)) {
		return nil, domainerror.ErrInvalidInitData
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, domainerror.ErrInvalidInitData
	}
	if v.now().UTC().Sub(time.Unix(authDate, 0)) > v.maxAge {
		return nil, domainerror.ErrExpiredInitData
	}

	var user initDataUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil || user.ID == 0 {
		return nil, domainerror.ErrInvalidInitData
	}

	return &adapter.TelegramUser{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LanguageCode: user.LanguageCode,
	}, nil
}
