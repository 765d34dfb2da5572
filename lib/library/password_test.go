package library

import (
	"errors"
	"testing"
)

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Passw0rd", true},
		{"valid long", "CorrectHorse1", true},
		{"too short", "Pw1a", false},
		{"no uppercase", "passw0rd", false},
		{"no lowercase", "PASSW0RD", false},
		{"no digit", "Password", false},
		{"whitespace", "Pass w0rd", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPasswordPolicy(tt.password)
			if tt.ok && err != nil {
				t.Errorf("expected %q to pass, got %v", tt.password, err)
			}
			if !tt.ok && !errors.Is(err, ErrWeakPassword) {
				t.Errorf("expected ErrWeakPassword for %q, got %v", tt.password, err)
			}
		})
	}
}

func TestSaltedHash(t *testing.T) {
	h1 := SaltedHash("alice@example.com", "Passw0rd")
	h2 := SaltedHash("alice@example.com", "Passw0rd")
	if h1 != h2 {
		t.Error("hashing is not deterministic")
	}

	// The email is the salt: same password, different account, different hash.
	if h1 == SaltedHash("bob@example.com", "Passw0rd") {
		t.Error("expected different hashes for different emails")
	}
	if h1 == SaltedHash("alice@example.com", "Other1pw") {
		t.Error("expected different hashes for different passwords")
	}
}
