package bfe

import "bytes"

// Decode decodes v with the default registry.
func Decode(v Value) (Value, error) {
	return Default().Decode(v)
}

// Decode reverses Encode. Tagged leaves are reconstructed from the registry;
// Null, Integer, Bytes and Absent pass through unchanged. String and Boolean
// never appear in encoded trees and fail with ErrUndecodableValue.
func (r *Registry) Decode(v Value) (Value, error) {
	w := walker{leaf: r.decodeLeaf}
	return w.walk(v)
}

func (r *Registry) decodeLeaf(v Value) (Value, error) {
	switch v := v.(type) {
	case Absent, Null, Integer, Bytes:
		return v, nil
	case Tagged:
		return r.decodeTagged(v)
	default:
		return nil, newValueError(ErrUndecodableValue, v)
	}
}

func (r *Registry) decodeTagged(b Tagged) (Value, error) {
	if len(b) < 2 {
		return nil, newTagError(ErrMalformedTag, b)
	}
	tag, payload := b.Tag(), b.Payload()

	switch {
	case bytes.Equal(b, r.nilTag[:]):
		return Null{}, nil
	case tag == r.boolTag:
		if len(payload) != 1 || payload[0] > 1 {
			return nil, newTagError(ErrInvalidBoolean, b)
		}
		return Boolean(payload[0] == 1), nil
	case tag == r.stringTag:
		return String(payload), nil
	case r.hasBytes && tag == r.bytesTag:
		return Bytes(append([]byte(nil), payload...)), nil
	}

	t, ok := r.byCode[tag.Type()]
	if !ok {
		return nil, newTagError(ErrUnknownTag, b)
	}
	f, ok := t.byCode[tag.Format()]
	if !ok {
		return nil, newTagError(ErrUnknownFormat, b)
	}
	if t.sigil == "" && f.suffix == "" {
		return nil, newTagError(ErrNoDecoder, b)
	}
	return String(t.sigil + payloadEncoding.EncodeToString(payload) + f.suffix), nil
}
