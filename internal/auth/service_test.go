package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryRevocations struct {
	keys map[string]time.Duration
}

func (m *memoryRevocations) Set(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.keys == nil {
		m.keys = map[string]time.Duration{}
	}
	m.keys[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRevocations) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func newTestService(t *testing.T, store RevocationStore) *Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	svc, err := NewService(privatePEM, publicPEM, 15*time.Minute, time.Hour, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestIssueAndParse(t *testing.T) {
	svc := newTestService(t, nil)
	pair, err := svc.Issue(42, "ada@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" || claims.Subject != "42" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := svc.ParseAccess(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token must not pass as access, got %v", err)
	}
	refresh, err := svc.ParseRefresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.ID == "" {
		t.Fatal("refresh token must carry a jti")
	}
}

func TestParseRejectsGarbageAndForeignKeys(t *testing.T) {
	svc := newTestService(t, nil)
	if _, err := svc.ParseAccess(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.ParseAccess("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other := newTestService(t, nil)
	pair, _ := other.Issue(1, "")
	if _, err := svc.ParseAccess(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed by another key must fail, got %v", err)
	}
}

func TestRotateRevokesOldRefreshToken(t *testing.T) {
	store := &memoryRevocations{}
	svc := newTestService(t, store)
	pair, _ := svc.Issue(7, "")
	ctx := context.Background()

	claims, err := svc.Rotate(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("unexpected claims %+v", claims)
	}
	ttl := store.keys[revokedKeyPrefix+claims.ID]
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected revocation ttl %v", ttl)
	}

	if _, err := svc.Rotate(ctx, pair.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked on reuse, got %v", err)
	}
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("correct horse", hash) || CheckPasswordHash("wrong", hash) {
		t.Fatal("password check mismatch")
	}
	if got := NormalizeEmail("  Ada@Example.COM "); got != "ada@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
}
