package bfe

import (
	"context"
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultDocument []byte

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Load parses a YAML registry document and builds a registry from it.
//
// The document is a sequence of types:
//
//	- type: message
//	  code: 1
//	  sigil: "%"
//	  formats:
//	    - format: classic
//	      code: 0
//	      suffix: .sha256
//	      length: 32
func Load(data []byte) (*Registry, error) {
	var defs []TypeDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}
	r, err := NewRegistry(defs)
	if err != nil {
		return nil, err
	}
	emitRegistryLoaded(context.Background(), len(r.types))
	return r, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(data []byte) *Registry {
	r, err := Load(data)
	if err != nil {
		panic("bfe: registry initialization failed: " + err.Error())
	}
	return r
}

// Default returns the process-wide registry built from the embedded
// Secure Scuttlebutt type table.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = MustLoad(defaultDocument)
	})
	return defaultRegistry
}

// DefaultDocument returns a copy of the embedded registry document.
func DefaultDocument() []byte {
	return append([]byte(nil), defaultDocument...)
}
