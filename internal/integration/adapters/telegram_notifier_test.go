package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegramNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("should post the message to the bot sendMessage endpoint", func(t *testing.T) {
		var gotPath string
		var gotReq sendMessageRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
		}))
		defer server.Close()

		notifier := NewTelegramNotifierWithBaseURL("12345:token", server.URL)

		if err := notifier.SendMessage(ctx, 987654321, "Netflix renews in 3 days"); err != nil {
			t.Fatalf("SendMessage returned error: %v", err)
		}
		if gotPath != "/bot12345:token/sendMessage" {
			t.Errorf("unexpected request path %q", gotPath)
		}
		if gotReq.ChatID != 987654321 {
			t.Errorf("expected chat ID 987654321, got %d", gotReq.ChatID)
		}
		if gotReq.Text != "Netflix renews in 3 days" {
			t.Errorf("unexpected message text %q", gotReq.Text)
		}
	})

	t.Run("should surface the API error description on rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "Forbidden: bot was blocked by the user"})
		}))
		defer server.Close()

		notifier := NewTelegramNotifierWithBaseURL("12345:token", server.URL)

		err := notifier.SendMessage(ctx, 1, "hello")
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "bot was blocked by the user") {
			t.Errorf("expected the API description in the error, got %v", err)
		}
	})

	t.Run("should fail when the endpoint is unreachable", func(t *testing.T) {
		notifier := NewTelegramNotifierWithBaseURL("12345:token", "http://127.0.0.1:1")

		if err := notifier.SendMessage(ctx, 1, "hello"); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})
}
