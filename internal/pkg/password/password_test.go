package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	defer func() { Cost = DefaultCost }()

	hash, err := Hash("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "admin123" {
		t.Fatalf("expected hash to differ from plain text")
	}
	if !Verify("admin123", hash) {
		t.Fatalf("expected password to verify")
	}
	if Verify("admin124", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"12345":   false,
		"123456":  true,
		"longer1": true,
	}
	for in, want := range cases {
		if got := ValidatePassword(in); got != want {
			t.Fatalf("ValidatePassword(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(32)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	b, _ := RandomToken(32)
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
	// 32 bytes, unpadded base64url
	if len(a) != 43 {
		t.Fatalf("expected 43 chars, got %d", len(a))
	}
}
