package auth

import (
	"strings"
	"testing"
)

// cheapParams keeps the suite fast; production cost is checked separately.
var cheapParams = Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHasher_Format(t *testing.T) {
	t.Parallel()

	hash, err := NewHasher(DefaultParams).Hash("Aa1!aaaa")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[1] != "argon2id" {
		t.Errorf("Expected argon2id algorithm, got: %s", parts[1])
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestHasher_Uniqueness(t *testing.T) {
	t.Parallel()

	h := NewHasher(cheapParams)
	hash1, _ := h.Hash("same-password")
	hash2, _ := h.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}
}

func TestHasher_Verify(t *testing.T) {
	t.Parallel()

	h := NewHasher(cheapParams)
	hash, err := h.Hash("비밀번호1234")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "비밀번호1234", true},
		{"wrong", "비밀번호1235", false},
		{"empty", "", false},
		{"case differs", "비밀번호1234 ", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Verify(tt.password, hash)
			if err != nil {
				t.Fatalf("Verify returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestHasher_VerifyUsesStoredParams(t *testing.T) {
	t.Parallel()

	hash, err := NewHasher(cheapParams).Hash("pw")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// A hasher configured differently still verifies older hashes.
	ok, err := NewHasher(DefaultParams).Verify("pw", hash)
	if err != nil || !ok {
		t.Errorf("Verify with different params = %v, %v; want true, nil", ok, err)
	}
}

func TestHasher_VerifyInvalidHash(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
		"$argon2id$vx$m=65536,t=3,p=4$c2FsdA$aGFzaA",
	}

	h := NewHasher(cheapParams)
	for _, hash := range invalid {
		if _, err := h.Verify("pw", hash); err != ErrInvalidHash {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidHash", hash, err)
		}
	}

	if _, err := h.Verify("pw", "$argon2id$v=16$m=65536,t=3,p=4$c2FsdA$aGFzaA"); err != ErrIncompatibleVersion {
		t.Errorf("expected ErrIncompatibleVersion, got %v", err)
	}
}
