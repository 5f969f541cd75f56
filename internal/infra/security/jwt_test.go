package security

import (
	"errors"
	"testing"
	"time"
)

func testManager() JWTManager {
	return JWTManager{Secret: []byte("test-secret"), Issuer: "stayhub-test"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()
	token, err := m.IssueAccess("u-1", time.Now())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	subject, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if subject != "u-1" {
		t.Errorf("subject = %q, want u-1", subject)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := testManager()
	now := time.Now()
	access, err := m.IssueAccess("u-1", now)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, err := m.IssueRefresh("u-1", now)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	if _, err := m.ParseRefresh(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
	if _, err := m.ParseAccess(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := testManager()
	token, err := m.IssueAccess("u-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := m.ParseAccess(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted: %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := testManager().IssueAccess("u-1", time.Now())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	other := JWTManager{Secret: []byte("different-secret")}
	if _, err := other.ParseAccess(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token signed with another secret accepted: %v", err)
	}
}

func TestIssueRequiresSecret(t *testing.T) {
	if _, err := (JWTManager{}).IssueAccess("u-1", time.Now()); err == nil {
		t.Error("issuing without a secret should fail")
	}
}
