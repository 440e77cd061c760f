package bfe

import (
	"context"
	"time"
)

// Packer encodes Go values into a wire format and back, running every
// string, boolean and null through the registry on the way.
//
// On the wire every binary string is read back as a tag, so raw byte
// strings travel under the registry's generic any-bytes tag. With a
// registry that declares no any-bytes format, packing a raw byte string
// fails with ErrUnencodableValue.
//
// Packers hold no mutable state and are safe for concurrent use.
type Packer struct {
	codec    Codec
	registry *Registry
}

// PackerOption configures a Packer.
type PackerOption func(*Packer)

// WithRegistry sets the registry used by the packer. The default registry
// is used otherwise.
func WithRegistry(r *Registry) PackerOption {
	return func(p *Packer) {
		p.registry = r
	}
}

// NewPacker creates a Packer that marshals with codec.
func NewPacker(codec Codec, opts ...PackerOption) *Packer {
	p := &Packer{codec: codec}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = Default()
	}

	emitPackerCreated(context.Background(), codec.ContentType())
	return p
}

// Registry returns the registry the packer encodes with.
func (p *Packer) Registry() *Registry {
	return p.registry
}

// ContentType returns the content type of the underlying codec.
func (p *Packer) ContentType() string {
	return p.codec.ContentType()
}

// Pack converts v with FromAny, encodes it and marshals the result.
func (p *Packer) Pack(ctx context.Context, v any) ([]byte, error) {
	start := time.Now()
	contentType := p.codec.ContentType()
	emitPackStart(ctx, contentType)

	data, err := p.pack(v)
	emitPackComplete(ctx, contentType, len(data), time.Since(start), err)
	return data, err
}

// PackValue encodes v and marshals the result.
func (p *Packer) PackValue(ctx context.Context, v Value) ([]byte, error) {
	return p.Pack(ctx, v)
}

func (p *Packer) pack(v any) ([]byte, error) {
	tree, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	encoded, err := p.registry.Encode(tree)
	if err != nil {
		return nil, err
	}

	e := exporter{wire: true}
	if tag, ok := p.registry.BytesTag(); ok {
		e.bytesTag = &tag
	}
	wire, err := e.to(encoded)
	if err != nil {
		return nil, err
	}

	data, err := p.codec.Marshal(wire)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// Unpack unmarshals data, decodes every tag and returns plain Go values as
// produced by ToAny.
func (p *Packer) Unpack(ctx context.Context, data []byte) (any, error) {
	v, err := p.UnpackValue(ctx, data)
	if err != nil {
		return nil, err
	}
	return ToAny(v)
}

// UnpackValue unmarshals data and decodes every tag.
func (p *Packer) UnpackValue(ctx context.Context, data []byte) (Value, error) {
	start := time.Now()
	contentType := p.codec.ContentType()
	emitUnpackStart(ctx, contentType, len(data))

	v, err := p.unpack(data)
	emitUnpackComplete(ctx, contentType, len(data), time.Since(start), err)
	return v, err
}

func (p *Packer) unpack(data []byte) (Value, error) {
	var wire any
	if err := p.codec.Unmarshal(data, &wire); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}

	c := converter{wire: true}
	tree, err := c.from(wire)
	if err != nil {
		return nil, err
	}
	return p.registry.Decode(tree)
}
