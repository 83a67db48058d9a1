package bankcrypt

import (
	"strings"
	"testing"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := New("unit-test-secret")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return c
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t)

	for _, plain := range []string{
		"12345678",
		"021000021",
		"a",
		"exactly-16-bytes",
		strings.Repeat("9", 64),
	} {
		tok, err := c.Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plain, err)
		}
		if !strings.Contains(tok, ":") {
			t.Fatalf("Encrypt(%q) = %q, want iv:ciphertext shape", plain, tok)
		}
		got, err := c.Decrypt(tok)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != plain {
			t.Fatalf("roundtrip mismatch: got %q want %q", got, plain)
		}
	}
}

func TestEncrypt_FreshIVPerCall(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t)

	a, err := c.Encrypt("4111111111111111")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b, err := c.Encrypt("4111111111111111")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if a == b {
		t.Fatalf("two encryptions of the same input produced identical output")
	}
}

func TestDecrypt_PlaintextPassthrough(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t)

	// Legacy values stored before field encryption have no colon.
	got, err := c.Decrypt("12345678")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if got != "12345678" {
		t.Fatalf("passthrough mismatch: got %q", got)
	}
}

func TestDecrypt_MalformedToken(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t)

	for _, tok := range []string{
		"nothex:deadbeef",
		"deadbeef:nothex",
		"dead:beef", // iv too short
		"00000000000000000000000000000000:",
	} {
		if _, err := c.Decrypt(tok); err == nil {
			t.Fatalf("Decrypt(%q): expected error, got nil", tok)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()
	c := newTestCipher(t)
	other, err := New("different-secret")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	tok, err := c.Encrypt("987654321")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if got, err := other.Decrypt(tok); err == nil && got == "987654321" {
		t.Fatalf("decrypt with wrong key recovered plaintext")
	}
}

func TestIsEncrypted(t *testing.T) {
	t.Parallel()
	if IsEncrypted("12345678") {
		t.Fatalf("plain value reported as encrypted")
	}
	if !IsEncrypted("aa:bb") {
		t.Fatalf("iv:ct value not reported as encrypted")
	}
}

func TestNew_EmptySecret(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
