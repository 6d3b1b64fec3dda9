package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/dshemin/lockbox/models"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	engine := NewCipherEngine()

	plaintext := "hello world"
	envelope, err := engine.Encrypt(plaintext, "pw1")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if envelope == "" {
		t.Fatalf("expected non-empty envelope")
	}

	recovered, err := engine.Decrypt(envelope, "pw1")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if recovered != plaintext {
		t.Fatalf("recovered = %q, want %q", recovered, plaintext)
	}
}

func TestEncrypt_EmptyPasswordRejected(t *testing.T) {
	engine := NewCipherEngine()

	if _, err := engine.Encrypt("some text", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEncrypt_EmptyPlaintextRejected(t *testing.T) {
	engine := NewCipherEngine()

	if _, err := engine.Encrypt("", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEncrypt_EnvelopesDiffer(t *testing.T) {
	engine := NewCipherEngine()

	e1, err := engine.Encrypt("same text", "same password")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	e2, err := engine.Encrypt("same text", "same password")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// Fresh salt and nonce per envelope.
	if e1 == e2 {
		t.Fatalf("expected different envelopes for repeated encryption")
	}
}

func TestDecrypt_WrongPassword(t *testing.T) {
	engine := NewCipherEngine()

	envelope, err := engine.Encrypt("hello world", "pw1")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := engine.Decrypt(envelope, "pw2"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestDecrypt_CorruptedCiphertext(t *testing.T) {
	engine := NewCipherEngine()

	envelope, err := engine.Encrypt("payload", "pw")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	blob[len(blob)-1] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(blob)

	if _, err := engine.Decrypt(tampered, "pw"); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed for tampered envelope, got %v", err)
	}
}

func TestDecrypt_MalformedEnvelope(t *testing.T) {
	engine := NewCipherEngine()

	cases := map[string]string{
		"not base64": "%%% definitely not base64 %%%",
		"too short":  base64.StdEncoding.EncodeToString([]byte("short")),
		"empty":      "",
	}

	for name, envelope := range cases {
		if _, err := engine.Decrypt(envelope, "pw"); !errors.Is(err, ErrInvalidEnvelope) {
			t.Fatalf("%s: expected ErrInvalidEnvelope, got %v", name, err)
		}
	}
}

func TestDecrypt_BinaryMarkerSurvivesRoundTrip(t *testing.T) {
	engine := NewCipherEngine()

	framed := models.EncodeBinary([]byte{0x25, 0x50, 0x44, 0x46, 0x00, 0x01})
	envelope, err := engine.Encrypt(framed, "doc password")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	recovered, err := engine.Decrypt(envelope, "doc password")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !strings.HasPrefix(recovered, models.BinaryMarker) {
		t.Fatalf("expected binary marker to survive the round trip")
	}
	if recovered != framed {
		t.Fatalf("recovered framed content differs from original")
	}
}

func TestDecrypt_UnicodeRoundTrip(t *testing.T) {
	engine := NewCipherEngine()

	plaintext := "пароль 密码 🔐 multi-byte content\nwith newlines\tand tabs"
	envelope, err := engine.Encrypt(plaintext, "пароль-пароль")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	recovered, err := engine.Decrypt(envelope, "пароль-пароль")
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if recovered != plaintext {
		t.Fatalf("recovered = %q, want %q", recovered, plaintext)
	}
}
