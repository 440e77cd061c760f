package bfe

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalRegistryLoaded = capitan.NewSignal("bfe.registry.loaded", "Registry built from a document")
	SignalPackerCreated  = capitan.NewSignal("bfe.packer.created", "Packer instantiated")
	SignalPackStart      = capitan.NewSignal("bfe.pack.start", "Pack operation beginning")
	SignalPackComplete   = capitan.NewSignal("bfe.pack.complete", "Pack operation finished")
	SignalUnpackStart    = capitan.NewSignal("bfe.unpack.start", "Unpack operation beginning")
	SignalUnpackComplete = capitan.NewSignal("bfe.unpack.complete", "Unpack operation finished")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeCount   = capitan.NewIntKey("type_count")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

func emitRegistryLoaded(ctx context.Context, types int) {
	capitan.Emit(ctx, SignalRegistryLoaded,
		KeyTypeCount.Field(types),
	)
}

func emitPackerCreated(ctx context.Context, contentType string) {
	capitan.Emit(ctx, SignalPackerCreated,
		KeyContentType.Field(contentType),
	)
}

func emitPackStart(ctx context.Context, contentType string) {
	capitan.Emit(ctx, SignalPackStart,
		KeyContentType.Field(contentType),
	)
}

// emitPackComplete emits an event when pack finishes.
func emitPackComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalPackComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalPackComplete, fields...)
	}
}

func emitUnpackStart(ctx context.Context, contentType string, size int) {
	capitan.Emit(ctx, SignalUnpackStart,
		KeyContentType.Field(contentType),
		KeySize.Field(size),
	)
}

// emitUnpackComplete emits an event when unpack finishes.
func emitUnpackComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalUnpackComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalUnpackComplete, fields...)
	}
}
