package bfe

import (
	"encoding/base64"
	"fmt"
)

// payloadEncoding is standard padded base64. Strict decoding rejects
// non-zero padding bits so that decoding reproduces the input exactly.
var payloadEncoding = base64.StdEncoding.Strict()

// Encode encodes v with the default registry.
func Encode(v Value) (Value, error) {
	return Default().Encode(v)
}

// Encode converts v into an encoded tree. Strings, booleans and nulls become
// Tagged leaves; bytes, integers and Absent pass through unchanged.
// Sequences replace Absent elements with the nil tag, and mappings drop keys
// whose encoded value is Absent.
func (r *Registry) Encode(v Value) (Value, error) {
	w := walker{leaf: r.encodeLeaf, encoding: true, nilTag: r.nilTag}
	return w.walk(v)
}

func (r *Registry) encodeLeaf(v Value) (Value, error) {
	switch v := v.(type) {
	case Absent, Bytes, Integer:
		return v, nil
	case String:
		return r.encodeString(string(v))
	case Boolean:
		var b byte
		if v {
			b = 1
		}
		return r.boolTag.With([]byte{b}), nil
	case Null:
		return r.nilTag.With(nil), nil
	default:
		return nil, newValueError(ErrUnencodableValue, v)
	}
}

func (r *Registry) encodeString(s string) (Value, error) {
	m, err := r.Match(s)
	if err != nil {
		return nil, err
	}
	if m.Type == nil {
		return r.stringTag.With([]byte(s)), nil
	}

	payload, err := payloadEncoding.DecodeString(m.Payload)
	if err != nil {
		return nil, newMatchError(ErrInvalidPayload, s, m.Type.name, err)
	}
	if n := m.Format.length; n > 0 && len(payload) != n {
		return nil, newMatchError(ErrInvalidPayload, s, m.Type.name,
			fmt.Errorf("%s payload is %d bytes, want %d", m.Format.name, len(payload), n))
	}
	return m.Format.tag.With(payload), nil
}
