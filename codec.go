package bfe

// Codec provides content-type aware marshaling of the outer message format
// that carries encoded trees. The codec must represent binary strings
// natively: every binary string on the wire is read back as a tag.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/msgpack").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
