package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"cvsite/internal/database"
	"cvsite/internal/email"
	"cvsite/internal/ratelimit"
)

func validContact() map[string]string {
	return map[string]string{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"subject": "Hello",
		"message": "I enjoyed your portfolio <b>a lot</b>.",
	}
}

func submitContact(t *testing.T, h *ContactHandler, payload map[string]string) (int, string) {
	t.Helper()
	c, w := newJSONContext(t, http.MethodPost, "/api/contact", payload, 0)
	h.Submit(c)
	return w.Code, w.Body.String()
}

func countMessages(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&database.ContactMessage{}).Count(&n).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	return n
}

func TestContactStoresAndSends(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	h := NewContactHandler(db, mailer, nil, "owner@example.com")

	code, body := submitContact(t, h, validContact())
	if code != http.StatusOK || !strings.Contains(body, `"success":true`) {
		t.Fatalf("expected success, got %d body=%s", code, body)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To[0] != "owner@example.com" || msg.ReplyTo != "grace@example.com" {
		t.Fatalf("unexpected routing %+v", msg)
	}
	if strings.Contains(msg.HTML, "<b>") || !strings.Contains(msg.HTML, "&lt;b&gt;") {
		t.Fatalf("html body must be escaped: %s", msg.HTML)
	}

	var stored database.ContactMessage
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load message: %v", err)
	}
	if !stored.Delivered || stored.ClientIP == "" {
		t.Fatalf("unexpected stored message %+v", stored)
	}
}

func TestContactRateLimitsPerIP(t *testing.T) {
	db := newTestDB(t)
	counter := newMemoryCounter()
	h := NewContactHandler(db, &fakeMailer{}, ratelimit.New(counter, "contact", 5, time.Hour), "owner@example.com")

	for i := 0; i < 5; i++ {
		if code, body := submitContact(t, h, validContact()); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d body=%s", i+1, code, body)
		}
	}

	c, w := newJSONContext(t, http.MethodPost, "/api/contact", validContact(), 0)
	h.Submit(c)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "Too many requests. Please try again later." {
		t.Fatalf("unexpected message %q", got)
	}
	if w.Header().Get("Retry-After") != "3600" {
		t.Fatalf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
	for key, ttl := range counter.ttls {
		if ttl != time.Hour {
			t.Fatalf("key %s ttl = %s", key, ttl)
		}
	}
	if n := countMessages(t, db); n != 5 {
		t.Fatalf("expected 5 stored messages, got %d", n)
	}
}

func TestContactHoneypotSkipsDelivery(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	h := NewContactHandler(db, mailer, nil, "owner@example.com")

	payload := validContact()
	payload["website"] = "http://spam.example.com"
	code, body := submitContact(t, h, payload)
	if code != http.StatusOK || !strings.Contains(body, `"success":true`) {
		t.Fatalf("honeypot should look successful, got %d body=%s", code, body)
	}
	if len(mailer.sent) != 0 || countMessages(t, db) != 0 {
		t.Fatalf("honeypot submissions must be dropped")
	}
}

func TestContactValidation(t *testing.T) {
	h := NewContactHandler(newTestDB(t), &fakeMailer{}, nil, "owner@example.com")

	payload := validContact()
	payload["email"] = "not-an-email"
	code, body := submitContact(t, h, payload)
	if code != http.StatusBadRequest || !strings.Contains(body, `"details"`) || !strings.Contains(body, `"Email"`) {
		t.Fatalf("expected validation details, got %d body=%s", code, body)
	}
}

func TestContactWithoutMailerStoresOnly(t *testing.T) {
	db := newTestDB(t)
	h := NewContactHandler(db, &fakeMailer{err: email.ErrNotConfigured}, nil, "owner@example.com")

	if code, body := submitContact(t, h, validContact()); code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", code, body)
	}
	var stored database.ContactMessage
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load message: %v", err)
	}
	if stored.Delivered {
		t.Fatalf("message should not be marked delivered")
	}
}

func TestContactSendFailure(t *testing.T) {
	h := NewContactHandler(newTestDB(t), &fakeMailer{err: errors.New("resend: 502")}, nil, "owner@example.com")

	code, body := submitContact(t, h, validContact())
	if code != http.StatusInternalServerError || !strings.Contains(body, "failed to send message") {
		t.Fatalf("expected 500, got %d body=%s", code, body)
	}
}
