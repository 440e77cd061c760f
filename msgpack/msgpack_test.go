package msgpack

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/bfe"
)

const testMessageKey = "%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.sha256"

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/msgpack")
	}
}

func TestMarshalBinary(t *testing.T) {
	c := New()

	data, err := c.Marshal(map[string]any{"a": []byte{1, 0}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// MessagePack is binary, should not be valid UTF-8 JSON
	if data[0] == '{' {
		t.Error("MessagePack output should be binary, not JSON")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v any
	err := c.Unmarshal([]byte{0xc1}, &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestPackUnpack(t *testing.T) {
	p := bfe.NewPacker(New())
	ctx := context.Background()

	original := map[string]any{
		"type":     "vote",
		"link":     testMessageKey,
		"value":    int64(1),
		"expired":  false,
		"reason":   nil,
		"mentions": []any{testMessageKey, "plain text", int64(-7)},
		"raw":      []byte{0xde, 0xad},
	}

	data, err := p.Pack(ctx, original)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if bytes.Contains(data, []byte(".sha256")) {
		t.Error("packed data should carry the message key as a tag, not text")
	}

	got, err := p.Unpack(ctx, data)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if diff := cmp.Diff(original, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnpackRejectsText(t *testing.T) {
	p := bfe.NewPacker(New())

	data, err := New().Marshal(map[string]any{"type": "vote"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	if _, err := p.Unpack(context.Background(), data); err == nil {
		t.Error("Unpack() should reject untagged text")
	}
}
