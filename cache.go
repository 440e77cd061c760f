package bfe

import "sync"

var (
	packers   = make(map[string]*Packer)
	packersMu sync.RWMutex
)

// Use returns a cached Packer for the codec's content type, building one
// with the default registry on first use.
func Use(codec Codec) *Packer {
	key := codec.ContentType()

	// Fast path: read-lock cache check
	packersMu.RLock()
	if cached, ok := packers[key]; ok {
		packersMu.RUnlock()
		return cached
	}
	packersMu.RUnlock()

	packersMu.Lock()
	defer packersMu.Unlock()

	// Double-check pattern
	if cached, ok := packers[key]; ok {
		return cached
	}

	p := NewPacker(codec)
	packers[key] = p
	return p
}

// Reset clears the packer cache.
// This is primarily useful for test isolation.
func Reset() {
	packersMu.Lock()
	defer packersMu.Unlock()
	packers = make(map[string]*Packer)
}
