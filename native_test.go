package bfe

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromAny(t *testing.T) {
	got, err := FromAny(map[string]any{
		"z":     "text",
		"a":     []any{nil, true, int8(-1), uint32(7), []byte{1}},
		"m":     map[any]any{"k": uint64(9)},
		"tags":  []string{"x", "y"},
		"value": Integer(3),
	})
	if err != nil {
		t.Fatalf("FromAny() error: %v", err)
	}

	want := Mapping{
		{Key: "a", Value: Sequence{Null{}, Boolean(true), Integer(-1), Integer(7), Bytes{1}}},
		{Key: "m", Value: Mapping{{Key: "k", Value: Integer(9)}}},
		{Key: "tags", Value: Sequence{String("x"), String("y")}},
		{Key: "value", Value: Integer(3)},
		{Key: "z", Value: String("text")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromAny() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAny_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  error
	}{
		{"float", 1.5, ErrUnencodableValue},
		{"struct", struct{}{}, ErrUnencodableValue},
		{"huge unsigned", uint64(math.MaxUint64), ErrUnencodableValue},
		{"non-string key", map[any]any{1: "x"}, ErrUnencodableValue},
		{"nested float", []any{"ok", float32(2)}, ErrUnencodableValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAny(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("FromAny() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromAny_Cycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	_, err := FromAny(m)
	if !errors.Is(err, ErrCyclicValue) {
		t.Errorf("FromAny() error = %v, want ErrCyclicValue", err)
	}
}

func TestToAny(t *testing.T) {
	got, err := ToAny(Mapping{
		{Key: "s", Value: String("x")},
		{Key: "n", Value: Integer(2)},
		{Key: "b", Value: Boolean(true)},
		{Key: "null", Value: Null{}},
		{Key: "gone", Value: Absent{}},
		{Key: "raw", Value: Bytes{1}},
		{Key: "tag", Value: Tagged{6, 2}},
		{Key: "list", Value: Sequence{Absent{}, Integer(1)}},
	})
	if err != nil {
		t.Fatalf("ToAny() error: %v", err)
	}

	want := map[string]any{
		"s":    "x",
		"n":    int64(2),
		"b":    true,
		"null": nil,
		"raw":  []byte{1},
		"tag":  []byte{6, 2},
		"list": []any{nil, int64(1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny() mismatch (-want +got):\n%s", diff)
	}
}

func TestToAny_Errors(t *testing.T) {
	if _, err := ToAny(nil); !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("ToAny(nil) error = %v, want ErrUnencodableValue", err)
	}

	s := make(Sequence, 1)
	s[0] = s
	if _, err := ToAny(s); !errors.Is(err, ErrCyclicValue) {
		t.Errorf("ToAny(cycle) error = %v, want ErrCyclicValue", err)
	}
}

func TestWireExport_WrapsBytes(t *testing.T) {
	tag := Tag{6, 3}
	e := exporter{wire: true, bytesTag: &tag}

	got, err := e.to(Sequence{Bytes{0xaa}, Tagged{6, 2}})
	if err != nil {
		t.Fatalf("to() error: %v", err)
	}
	want := []any{[]byte{6, 3, 0xaa}, []byte{6, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("to() mismatch (-want +got):\n%s", diff)
	}

	if _, err := e.to(String("x")); !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("to(String) error = %v, want ErrUnencodableValue", err)
	}
}

func TestWireImport_BinaryIsTagged(t *testing.T) {
	c := converter{wire: true}
	got, err := c.from([]any{[]byte{6, 2}, "text"})
	if err != nil {
		t.Fatalf("from() error: %v", err)
	}
	want := Sequence{Tagged{6, 2}, String("text")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("from() mismatch (-want +got):\n%s", diff)
	}
}

func TestWireExport_RejectsBytesWithoutTag(t *testing.T) {
	e := exporter{wire: true}

	_, err := e.to(Mapping{{Key: "b", Value: Bytes{9, 0, 'x'}}})
	if !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("to() error = %v, want ErrUnencodableValue", err)
	}
	var pe *PathError
	if !errors.As(err, &pe) || pe.Path != "b" {
		t.Errorf("to() error = %v, want path %q", err, "b")
	}
}
