package bfe

// Value is the tree type flowing through Encode and Decode.
//
// The set of implementations is closed: Absent, Bytes, Integer, String,
// Boolean, Null, Sequence, Mapping and Tagged. Tagged only appears in
// encoded trees, and String and Boolean never do.
type Value interface {
	isValue()
}

// Absent marks a missing value. Encoding a Sequence replaces Absent elements
// with the nil tag; encoding a Mapping drops keys whose value is Absent.
type Absent struct{}

// Bytes is a raw byte string. It passes through Encode and Decode unchanged.
type Bytes []byte

// Integer passes through Encode and Decode unchanged.
type Integer int64

// String is a text value. Strings recognized by the registry become
// identifier tags; all others become generic UTF-8 string tags.
type String string

// Boolean encodes to a three byte generic boolean tag.
type Boolean bool

// Null encodes to the two byte generic nil tag.
type Null struct{}

// Sequence is an ordered list of values.
type Sequence []Value

// Entry is a key-value pair in a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered list of key-value pairs. Keys are expected to be
// unique; order is preserved by Encode and Decode.
type Mapping []Entry

// Tagged is an encoded leaf: a two byte tag followed by the payload.
type Tagged []byte

func (Absent) isValue()   {}
func (Bytes) isValue()    {}
func (Integer) isValue()  {}
func (String) isValue()   {}
func (Boolean) isValue()  {}
func (Null) isValue()     {}
func (Sequence) isValue() {}
func (Mapping) isValue()  {}
func (Tagged) isValue()   {}

// Get returns the value stored under key, or Absent.
func (m Mapping) Get(key string) Value {
	for _, e := range m {
		if e.Key == key {
			return e.Value
		}
	}
	return Absent{}
}

// Tag returns the tag header of t. It panics if t is shorter than two bytes.
func (t Tagged) Tag() Tag {
	return Tag{t[0], t[1]}
}

// Payload returns the bytes following the tag header.
func (t Tagged) Payload() []byte {
	if len(t) < 2 {
		return nil
	}
	return t[2:]
}

func kindOf(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case Absent:
		return "absent"
	case Bytes:
		return "bytes"
	case Integer:
		return "integer"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	case Tagged:
		return "tagged"
	default:
		return "unknown"
	}
}
