package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/bfe"
	"github.com/zoobzio/bfe/cbor"
	"github.com/zoobzio/bfe/msgpack"
	bfetest "github.com/zoobzio/bfe/testing"
)

// Post is a typical message content carrying identifiers.
type Post struct {
	Type     string   `bfe:"type"`
	Text     string   `bfe:"text"`
	Root     string   `bfe:"root,omitempty"`
	Branch   []string `bfe:"branch"`
	Mentions []string `bfe:"mentions"`
	Channel  *string  `bfe:"channel"`
	Likes    int      `bfe:"likes"`
	Private  bool     `bfe:"private"`
	Draft    string   `bfe:"-"`
}

func TestPacker_Struct_MessagePack(t *testing.T) {
	testStructRoundTrip(t, msgpack.New())
}

func TestPacker_Struct_CBOR(t *testing.T) {
	testStructRoundTrip(t, cbor.New())
}

func testStructRoundTrip(t *testing.T, c bfe.Codec) {
	t.Helper()

	original := Post{
		Type:     "post",
		Text:     "look at this " + bfetest.BlobID,
		Branch:   []string{bfetest.MessageKey, bfetest.BendyButtKey},
		Mentions: []string{bfetest.FeedID, bfetest.BlobID},
		Likes:    3,
		Private:  true,
		Draft:    "never sent",
	}

	v, err := bfe.ValueOf(original)
	if err != nil {
		t.Fatalf("ValueOf error: %v", err)
	}

	p := bfe.NewPacker(c)
	data, err := p.PackValue(context.Background(), v)
	if err != nil {
		t.Fatalf("PackValue error: %v", err)
	}

	decoded, err := p.UnpackValue(context.Background(), data)
	if err != nil {
		t.Fatalf("UnpackValue error: %v", err)
	}

	if got := decoded.(bfe.Mapping).Get("root"); got != (bfe.Absent{}) {
		t.Errorf("root = %v, want it dropped", got)
	}

	var restored Post
	if err := bfe.Assign(decoded, &restored); err != nil {
		t.Fatalf("Assign error: %v", err)
	}

	want := original
	want.Draft = ""
	if diff := cmp.Diff(want, restored); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPacker_CustomRegistry(t *testing.T) {
	r := bfetest.Registry(t)
	p := bfe.NewPacker(msgpack.New(), bfe.WithRegistry(r))

	original := map[string]any{
		"key":    "!AQID.s",
		"sealed": []any{"!AQIDBA==.long", "text", nil},
	}

	data, err := p.Pack(context.Background(), original)
	if err != nil {
		t.Fatalf("Pack error: %v", err)
	}

	got, err := p.Unpack(context.Background(), data)
	if err != nil {
		t.Fatalf("Unpack error: %v", err)
	}
	if diff := cmp.Diff(original, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPacker_CustomRegistry_RejectsRawBytes(t *testing.T) {
	p := bfe.NewPacker(msgpack.New(), bfe.WithRegistry(bfetest.Registry(t)))

	_, err := p.Pack(context.Background(), map[string]any{"b": []byte{9, 0, 'x'}})
	if !errors.Is(err, bfe.ErrUnencodableValue) {
		t.Errorf("Pack error = %v, want ErrUnencodableValue", err)
	}
}

func TestUse_SharesPackerPerContentType(t *testing.T) {
	bfe.Reset()
	defer bfe.Reset()

	if bfe.Use(msgpack.New()) != bfe.Use(msgpack.New()) {
		t.Error("Use() should return the cached packer for the same content type")
	}
	if bfe.Use(msgpack.New()) == bfe.Use(cbor.New()) {
		t.Error("Use() should build separate packers per content type")
	}
}
