package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cvsite/internal/config"
)

// sentEmail 是 Resend /emails 请求体中测试关心的字段。
type sentEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func TestResendSend(t *testing.T) {
	var got sentEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Header.Get("Authorization") != "Bearer re_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	client := NewResendClient(config.ResendConfig{APIKey: "re_test", FromEmail: "noreply@example.com"}).WithBaseURL(srv.URL)
	id, err := client.Send(context.Background(), Message{
		To:      []string{"owner@example.com"},
		ReplyTo: "visitor@example.com",
		Subject: "Hello",
		Text:    "Hi there",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "msg_123" {
		t.Fatalf("unexpected id %q", id)
	}
	if got.From != "noreply@example.com" || got.ReplyTo != "visitor@example.com" || got.To[0] != "owner@example.com" || got.Subject != "Hello" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestResendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"Invalid from address"}`))
	}))
	defer srv.Close()

	client := NewResendClient(config.ResendConfig{APIKey: "re_test", FromEmail: "bad"}).WithBaseURL(srv.URL)
	_, err := client.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "x", Text: "y"})
	if err == nil || !strings.Contains(err.Error(), "Invalid from address") {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestResendNotConfigured(t *testing.T) {
	_, err := NewResendClient(config.ResendConfig{}).Send(context.Background(), Message{To: []string{"a@example.com"}})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
