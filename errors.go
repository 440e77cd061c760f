package bfe

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownFormat indicates a sigil was recognized but no format of its
	// type matched, or a format byte is absent from its type.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnknownTag indicates a type byte is absent from the registry.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrMalformedTag indicates a tagged buffer shorter than two bytes.
	ErrMalformedTag = errors.New("malformed tag")

	// ErrInvalidBoolean indicates a boolean payload of the wrong length or value.
	ErrInvalidBoolean = errors.New("invalid boolean")

	// ErrNoDecoder indicates a recognized tag with no reconstruction rule.
	ErrNoDecoder = errors.New("no decoder for tag")

	// ErrUnencodableValue indicates a value kind the encoder does not support.
	ErrUnencodableValue = errors.New("unencodable value")

	// ErrUndecodableValue indicates a value kind the decoder does not support.
	ErrUndecodableValue = errors.New("undecodable value")

	// ErrInvalidPayload indicates an identifier payload that is not canonical
	// base64 or does not have the length its format declares.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrCyclicValue indicates a sequence or mapping that contains itself.
	ErrCyclicValue = errors.New("cyclic value")

	// ErrDuplicateCode indicates two types, or two formats of one type,
	// share a code.
	ErrDuplicateCode = errors.New("duplicate code")

	// ErrDuplicateName indicates two types, or two formats of one type,
	// share a name.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrMissingGeneric indicates the registry lacks the generic type or one
	// of its canonical formats.
	ErrMissingGeneric = errors.New("missing generic format")

	// ErrInvalidRegistry indicates a registry definition is malformed.
	ErrInvalidRegistry = errors.New("invalid registry")

	// ErrNoDigest indicates a format that declares no digest algorithm.
	ErrNoDigest = errors.New("no digest declared")

	// ErrUnknownType indicates a named lookup for a type that is not registered.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnmarshal indicates the wire codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the wire codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents a registry construction error.
// It wraps a sentinel error with the type and format that caused it.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrDuplicateCode, etc.)
	Type   string // Type name that triggered the error
	Format string // Format name that triggered the error
}

func (e *ConfigError) Error() string {
	if e.Type != "" && e.Format != "" {
		return fmt.Sprintf("%s: type %q format %q", e.Err.Error(), e.Type, e.Format)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s: type %q", e.Err.Error(), e.Type)
	}
	if e.Format != "" {
		return fmt.Sprintf("%s: format %q", e.Err.Error(), e.Format)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MatchError represents a failure to encode an identifier string.
type MatchError struct {
	Err   error  // Underlying sentinel error (ErrUnknownFormat, ErrInvalidPayload)
	Input string // The string being encoded
	Type  string // Type whose sigil matched, if any
	Cause error  // Original error, e.g. from base64 decoding
}

func (e *MatchError) Error() string {
	msg := e.Err.Error()
	if e.Type != "" {
		msg = fmt.Sprintf("%s for type %q", msg, e.Type)
	}
	msg = fmt.Sprintf("%s: %q", msg, e.Input)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

// TagError represents a failure to decode a tagged buffer.
type TagError struct {
	Err error  // Underlying sentinel error (ErrMalformedTag, ErrUnknownTag, etc.)
	Tag []byte // The offending buffer
}

func (e *TagError) Error() string {
	if len(e.Tag) >= 2 {
		return fmt.Sprintf("%s: [%d %d] (%d bytes)", e.Err.Error(), e.Tag[0], e.Tag[1], len(e.Tag))
	}
	return fmt.Sprintf("%s: %x", e.Err.Error(), e.Tag)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// ValueError represents a value whose kind cannot be processed.
type ValueError struct {
	Err  error  // ErrUnencodableValue, ErrUndecodableValue or ErrCyclicValue
	Kind string // Kind of the offending value
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Kind)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// PathError locates a failure inside a Sequence or Mapping.
type PathError struct {
	Path string // Location of the failing element, e.g. "content.mentions[2]"
	Err  error  // The failure at that location
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// CodecError represents a wire marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newConfigError(sentinel error, typeName, format string) error {
	return &ConfigError{
		Err:    sentinel,
		Type:   typeName,
		Format: format,
	}
}

func newMatchError(sentinel error, input, typeName string, cause error) error {
	return &MatchError{
		Err:   sentinel,
		Input: input,
		Type:  typeName,
		Cause: cause,
	}
}

func newTagError(sentinel error, tag []byte) error {
	return &TagError{
		Err: sentinel,
		Tag: append([]byte(nil), tag...),
	}
}

func newValueError(sentinel error, v Value) error {
	return &ValueError{
		Err:  sentinel,
		Kind: kindOf(v),
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
