package testing

import (
	"testing"

	"github.com/zoobzio/bfe"
)

func TestRegistry(t *testing.T) {
	r := Registry(t)
	if got := len(r.Types()); got != 4 {
		t.Errorf("Types() length = %d, want 4", got)
	}
	if got := r.NilTag(); got != (bfe.Tag{9, 2}) {
		t.Errorf("NilTag() = %v, want [9 2]", got)
	}
}

func TestSampleIdentifiersEncode(t *testing.T) {
	r := bfe.Default()
	for _, s := range []string{FeedID, MessageKey, BendyButtKey, BlobID, BoxedContent, PlainText} {
		encoded := MustEncode(t, r, bfe.String(s))
		if got := MustDecode(t, r, encoded); got != bfe.String(s) {
			t.Errorf("round trip of %q = %v", s, got)
		}
	}
}

func TestUnknownFormatFails(t *testing.T) {
	if _, err := bfe.Encode(bfe.String(UnknownFormat)); err == nil {
		t.Error("Encode() should fail for an unknown suffix")
	}
}
