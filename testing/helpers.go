// Package testing provides test utilities for bfe.
package testing

import (
	"testing"

	"github.com/zoobzio/bfe"
)

// Sample identifiers for the default registry.
const (
	FeedID        = "@FCX/tsDLpubCPKKfIrw4gc+SQkHcaD17s7GI6i/ziWY=.ed25519"
	MessageKey    = "%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.sha256"
	BendyButtKey  = "%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.bbmsg-v1"
	BlobID        = "&S7+CwHM6dZ9si5Vn4ftpk/l/ldbRMqzzJos+spZbWf4=.sha256"
	BoxedContent  = "siZEm0JOnhPBpMmcJvRsjcwDd4pGU0QEZOcAtT6eDB8=.box"
	UnknownFormat = "%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.md5"
	PlainText     = "hello world"
)

// FixtureDefs returns a small registry definition: a sigil type with two
// formats, a suffix-only type, a type with neither, and the generic type.
func FixtureDefs() []bfe.TypeDef {
	return []bfe.TypeDef{
		{Name: "key", Code: 0, Sigil: "!", Formats: []bfe.FormatDef{
			{Name: "long", Code: 0, Suffix: ".long"},
			{Name: "short", Code: 1, Suffix: ".s", Length: 3},
		}},
		{Name: "sealed", Code: 1, Formats: []bfe.FormatDef{
			{Name: "v1", Code: 0, Suffix: ".sealed"},
		}},
		{Name: "opaque", Code: 2, Formats: []bfe.FormatDef{
			{Name: "v1", Code: 0},
		}},
		{Name: bfe.GenericType, Code: 9, Formats: []bfe.FormatDef{
			{Name: bfe.FormatString, Code: 0},
			{Name: bfe.FormatBoolean, Code: 1},
			{Name: bfe.FormatNil, Code: 2},
		}},
	}
}

// Registry returns a registry built from FixtureDefs.
func Registry(t testing.TB) *bfe.Registry {
	t.Helper()
	r, err := bfe.NewRegistry(FixtureDefs())
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	return r
}

// MustEncode encodes v with r and fails the test on error.
func MustEncode(t testing.TB, r *bfe.Registry, v bfe.Value) bfe.Value {
	t.Helper()
	out, err := r.Encode(v)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	return out
}

// MustDecode decodes v with r and fails the test on error.
func MustDecode(t testing.TB, r *bfe.Registry, v bfe.Value) bfe.Value {
	t.Helper()
	out, err := r.Decode(v)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return out
}
