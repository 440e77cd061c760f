// Package bfe implements Binary Field Encoding: a tagged binary
// representation for sigil-prefixed identifiers and primitive values nested
// inside JSON-like trees.
//
// # Tags
//
// Every encoded leaf starts with a two byte tag followed by its payload:
//
//	byte[0]   type code
//	byte[1]   format code
//	byte[2..] payload (may be empty)
//
// Type and format codes come from a Registry. The default registry holds
// the Secure Scuttlebutt identifier families:
//
//	%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.sha256   -> [1 0 <32 bytes>]
//	%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.bbmsg-v1 -> [1 4 <32 bytes>]
//	"hello"                                                -> [6 0 h e l l o]
//	true                                                   -> [6 1 1]
//	null                                                   -> [6 2]
//
// # Values
//
// Encode and Decode operate on Value trees. Value is a closed set of
// variants: Absent, Bytes, Integer, String, Boolean, Null, Sequence,
// Mapping and, in encoded trees, Tagged.
//
//	encoded, err := bfe.Encode(bfe.Mapping{
//	    {Key: "type", Value: bfe.String("vote")},
//	    {Key: "link", Value: bfe.String("%HZVnEzm0NgoSVfG0Hx4gMFbMMHhFvhJsG2zK/pijYII=.sha256")},
//	    {Key: "value", Value: bfe.Integer(1)},
//	})
//	decoded, err := bfe.Decode(encoded)
//
// Sequences keep their length: an Absent element encodes as the nil tag.
// Mappings drop keys whose value is Absent.
//
// # Errors
//
// Failures are reported as sentinel errors wrapped with context. Use
// errors.Is to discriminate:
//
//   - ErrUnknownFormat: sigil recognized, suffix or format byte not
//   - ErrUnknownTag: type byte not in the registry
//   - ErrMalformedTag: tagged buffer shorter than two bytes
//   - ErrInvalidBoolean: boolean payload is not a single 0 or 1
//   - ErrNoDecoder: tag is registered but has no reconstruction rule
//   - ErrUnencodableValue, ErrUndecodableValue: unsupported value kind
//   - ErrInvalidPayload: identifier payload is not canonical base64 or has
//     the wrong length
//   - ErrCyclicValue: a sequence or mapping contains itself
//   - ErrDuplicateCode, ErrDuplicateName, ErrMissingGeneric: invalid
//     registry definitions
//   - ErrNoDigest: Identify on a format without a digest
//
// Errors below the root are wrapped in a PathError naming the location.
//
// # Wire Formats
//
// A Packer combines the codec with an outer message format:
//
//	p := bfe.NewPacker(msgpack.New())
//	data, err := p.Pack(ctx, map[string]any{"author": "@...=.ed25519"})
//	msg, err := p.Unpack(ctx, data)
//
// The following codec implementations are available as subpackages:
//
//   - msgpack - MessagePack encoding (application/msgpack)
//   - cbor - CBOR encoding (application/cbor)
//
// # Registries
//
// Registries are immutable and safe for concurrent use. Custom tables are
// loaded from YAML with Load; see registry.yaml for the format.
package bfe
