package credential

import (
	"testing"

	"github.com/99designs/keyring"
)

func TestTokenRoundTrip(t *testing.T) {
	s := &Store{ring: keyring.NewArrayKeyring(nil)}

	if _, err := s.Token("api-token"); err == nil {
		t.Error("Token on empty keyring returned no error")
	}

	if err := s.StoreToken("api-token", "secret-value"); err != nil {
		t.Fatalf("StoreToken: %v", err)
	}

	got, err := s.Token("api-token")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "secret-value" {
		t.Errorf("Token = %q, want secret-value", got)
	}
}

func TestStoreTokenReplaces(t *testing.T) {
	s := &Store{ring: keyring.NewArrayKeyring(nil)}

	if err := s.StoreToken("api-token", "old"); err != nil {
		t.Fatalf("StoreToken: %v", err)
	}
	if err := s.StoreToken("api-token", "new"); err != nil {
		t.Fatalf("StoreToken replace: %v", err)
	}

	got, err := s.Token("api-token")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "new" {
		t.Errorf("Token = %q, want new", got)
	}
}
