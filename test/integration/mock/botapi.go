package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// SentMessage is one sendMessage call captured by the Bot API stub.
type SentMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// BotApi fakes the Telegram Bot API so reminder delivery can be observed
// without touching the network.
type BotApi struct {
	mu     sync.Mutex
	server *httptest.Server
	sent   []SentMessage
}

// NewBotApi starts the stub. Every POST to .../sendMessage is recorded and
// answered with a success envelope.
func NewBotApi() *BotApi {
	b := &BotApi{}

	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			http.NotFound(w, r)
			return
		}

		var msg SentMessage
		_ = json.NewDecoder(r.Body).Decode(&msg)

		b.mu.Lock()
		b.sent = append(b.sent, msg)
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))

	return b
}

// URL returns the stub's base URL, suitable as a Bot API base URL.
func (b *BotApi) URL() string {
	return b.server.URL
}

// Sent returns a copy of all captured messages in delivery order.
func (b *BotApi) Sent() []SentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]SentMessage, len(b.sent))
	copy(out, b.sent)
	return out
}

// Close shuts the stub down.
func (b *BotApi) Close() {
	b.server.Close()
}
