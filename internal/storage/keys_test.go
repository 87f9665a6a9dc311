package storage

import (
	"testing"
	"time"
)

func TestObjectKeys(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	if got := PortfolioKey(7, at, "png"); got != "users/7/portfolio/portfolio-1700000000123.png" {
		t.Fatalf("portfolio key %q", got)
	}
	if got := ProfilePhotoKey(7, at, "jpg"); got != "users/7/profile/profile-photo-1700000000123.jpg" {
		t.Fatalf("profile key %q", got)
	}
	if got := SiteObjectKey(7, 42, SiteHTML); got != "users/7/site/42/index.html" {
		t.Fatalf("site key %q", got)
	}
}

func TestExtensionForMIME(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/webp": "webp",
		"image/gif":  "",
		"text/html":  "",
	}
	for mime, want := range cases {
		if got := ExtensionForMIME(mime); got != want {
			t.Fatalf("ExtensionForMIME(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	base := "https://cdn.example.com/"
	key := "users/1/portfolio/portfolio-1.jpg"

	url := PublicURL(base, key)
	if url != "https://cdn.example.com/users/1/portfolio/portfolio-1.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	got, ok := KeyFromPublicURL(base, url+"?v=2")
	if !ok || got != key {
		t.Fatalf("KeyFromPublicURL = %q %v", got, ok)
	}
	if _, ok := KeyFromPublicURL(base, "https://evil.example.com/users/1/x.jpg"); ok {
		t.Fatalf("foreign url must not resolve")
	}
	if _, ok := KeyFromPublicURL(base, "https://cdn.example.com/users/1/../2/x.jpg"); ok {
		t.Fatalf("traversal must not resolve")
	}
}

func TestOwnedBy(t *testing.T) {
	if !OwnedBy("users/1/portfolio/a.jpg", 1) || OwnedBy("users/12/portfolio/a.jpg", 1) {
		t.Fatalf("ownership check is wrong")
	}
}
