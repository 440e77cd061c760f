package bfe

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"
)

func TestIdentify(t *testing.T) {
	content := []byte(`{"type":"post","text":"hello"}`)
	sum := sha256.Sum256(content)
	want := "%" + base64.StdEncoding.EncodeToString(sum[:]) + ".sha256"

	got, err := Default().Identify("message", "classic", content)
	if err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	if got != want {
		t.Errorf("Identify() = %q, want %q", got, want)
	}

	// Identifiers round trip through the codec.
	encoded, err := Encode(String(got))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if encoded.(Tagged).Tag() != (Tag{1, 0}) {
		t.Errorf("Tag() = %v, want [1 0]", encoded.(Tagged).Tag())
	}
}

func TestIdentify_DigestLengths(t *testing.T) {
	tests := []struct {
		typ, format string
		length      int
	}{
		{"blob", "classic", 32},
		{"message", "bamboo", 64},
		{"message", "buttwoo-v1", 32},
		{"message", "bendybutt-v1", 32},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.format, func(t *testing.T) {
			id, err := Default().Identify(tt.typ, tt.format, []byte("content"))
			if err != nil {
				t.Fatalf("Identify() error: %v", err)
			}
			encoded, err := Encode(String(id))
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if got := len(encoded.(Tagged).Payload()); got != tt.length {
				t.Errorf("payload length = %d, want %d", got, tt.length)
			}
		})
	}
}

func TestIdentify_Errors(t *testing.T) {
	r := Default()

	if _, err := r.Identify("nope", "classic", nil); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Identify(nope) error = %v, want ErrUnknownType", err)
	}
	if _, err := r.Identify("message", "nope", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Identify(message, nope) error = %v, want ErrUnknownFormat", err)
	}
	_, err := r.Identify("feed", "classic", nil)
	if !errors.Is(err, ErrNoDigest) {
		t.Errorf("Identify(feed) error = %v, want ErrNoDigest", err)
	}
	if errors.Is(err, ErrNoDecoder) {
		t.Errorf("Identify(feed) error = %v, should not match ErrNoDecoder", err)
	}

	fixture, err := NewRegistry([]TypeDef{
		{Name: "opaque", Code: 0, Formats: []FormatDef{{Name: "v1", Code: 0, Digest: DigestSHA256}}},
		{Name: GenericType, Code: 9, Formats: genericFormats()},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	if _, err := fixture.Identify("opaque", "v1", nil); !errors.Is(err, ErrNoDecoder) {
		t.Errorf("Identify(opaque) error = %v, want ErrNoDecoder", err)
	}
}

func TestDigesters(t *testing.T) {
	tests := []struct {
		algo DigestAlgo
		size int
	}{
		{DigestSHA256, 32},
		{DigestBlake2b256, 32},
		{DigestBlake2b512, 64},
		{DigestBlake3, 32},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			if !IsValidDigestAlgo(tt.algo) {
				t.Fatalf("IsValidDigestAlgo(%q) = false", tt.algo)
			}
			d, _ := DigesterFor(tt.algo)
			a, b := d.Digest([]byte("x")), d.Digest([]byte("x"))
			if len(a) != tt.size {
				t.Errorf("Digest() length = %d, want %d", len(a), tt.size)
			}
			if string(a) != string(b) {
				t.Error("Digest() should be deterministic")
			}
		})
	}

	if IsValidDigestAlgo("md5") {
		t.Error("IsValidDigestAlgo(md5) = true, want false")
	}
}
