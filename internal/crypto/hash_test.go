package crypto

import (
	"strings"
	"testing"
)

// cheapParams keeps the memory-hard KDF fast enough for unit tests.
func cheapParams() HashParams {
	return HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestPasswordHasher_HashDefaultParams(t *testing.T) {
	hash, err := NewPasswordHasher(DefaultHashParams()).Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash() expected 6 parts, got %d: %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("algorithm = %q, want %q", parts[1], "argon2id")
	}
	if parts[2] != "v=19" {
		t.Errorf("version = %q, want %q", parts[2], "v=19")
	}
	if parts[3] != "m=65536,t=3,p=2" {
		t.Errorf("params = %q, want %q", parts[3], "m=65536,t=3,p=2")
	}
	if strings.Contains(hash, "pw1") {
		t.Error("hash must not contain the plaintext password")
	}
}

func TestPasswordHasher_Verify(t *testing.T) {
	h := NewPasswordHasher(cheapParams())

	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "correct-password", want: true},
		{name: "wrong password", password: "wrong-password", want: false},
		{name: "empty password", password: "", want: false},
		{name: "case differs", password: "Correct-Password", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := h.Verify(tt.password, hash)
			if err != nil {
				t.Fatalf("Verify() unexpected error: %v", err)
			}
			if match != tt.want {
				t.Errorf("Verify() = %v, want %v", match, tt.want)
			}
		})
	}
}

func TestPasswordHasher_SaltDiffers(t *testing.T) {
	h := NewPasswordHasher(cheapParams())

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
}

func TestPasswordHasher_VerifyUsesEncodedParams(t *testing.T) {
	hash, err := NewPasswordHasher(cheapParams()).Hash("pw")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	// A hasher configured with other params must still verify older hashes.
	match, err := NewPasswordHasher(DefaultHashParams()).Verify("pw", hash)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if !match {
		t.Error("Verify() returned false for hash created with different params")
	}
}

func TestPasswordHasher_VerifyInvalidHash(t *testing.T) {
	h := NewPasswordHasher(DefaultHashParams())

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "garbage", hash: "invalid-hash-format", wantErr: ErrInvalidHashFormat},
		{name: "legacy sha256 hex", hash: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", wantErr: ErrInvalidHashFormat},
		{name: "wrong algorithm", hash: "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5", wantErr: ErrInvalidHashFormat},
		{name: "wrong version", hash: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5", wantErr: ErrIncompatibleVersion},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5", wantErr: ErrInvalidHashFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify("password", tt.hash)
			if err != tt.wantErr {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
