package bfe

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// DigestAlgo names the hash used to derive an identifier from content.
// Use these constants in the registry document: `digest: sha256`
type DigestAlgo string

const (
	// DigestSHA256 is SHA-256 (classic messages and blobs).
	DigestSHA256 DigestAlgo = "sha256"

	// DigestBlake2b256 is BLAKE2b with a 32 byte output.
	DigestBlake2b256 DigestAlgo = "blake2b-256"

	// DigestBlake2b512 is BLAKE2b with a 64 byte output (bamboo).
	DigestBlake2b512 DigestAlgo = "blake2b-512"

	// DigestBlake3 is BLAKE3 with a 32 byte output (buttwoo).
	DigestBlake3 DigestAlgo = "blake3"
)

// Digester computes a fixed-size digest.
type Digester interface {
	// Digest returns the digest of content.
	Digest(content []byte) []byte
}

type digestFunc func([]byte) []byte

func (f digestFunc) Digest(content []byte) []byte { return f(content) }

// builtinDigesters contains all supported algorithms.
var builtinDigesters = map[DigestAlgo]Digester{
	DigestSHA256: digestFunc(func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	}),
	DigestBlake2b256: digestFunc(func(b []byte) []byte {
		sum := blake2b.Sum256(b)
		return sum[:]
	}),
	DigestBlake2b512: digestFunc(func(b []byte) []byte {
		sum := blake2b.Sum512(b)
		return sum[:]
	}),
	DigestBlake3: digestFunc(func(b []byte) []byte {
		sum := blake3.Sum256(b)
		return sum[:]
	}),
}

// IsValidDigestAlgo returns true if the algorithm is a known digest algorithm.
func IsValidDigestAlgo(algo DigestAlgo) bool {
	_, ok := builtinDigesters[algo]
	return ok
}

// DigesterFor returns the digester for algo.
func DigesterFor(algo DigestAlgo) (Digester, bool) {
	d, ok := builtinDigesters[algo]
	return d, ok
}

// Identify derives the identifier of content for a type and format, e.g.
// the "%...=.sha256" key of a message or the "&...=.sha256" id of a blob.
// The format must declare a digest (ErrNoDigest otherwise), and the type a
// sigil or the format a suffix (ErrNoDecoder otherwise).
func (r *Registry) Identify(typeName, formatName string, content []byte) (string, error) {
	t, ok := r.byName[typeName]
	if !ok {
		return "", newConfigError(ErrUnknownType, typeName, "")
	}
	f, ok := t.byName[formatName]
	if !ok {
		return "", newConfigError(ErrUnknownFormat, typeName, formatName)
	}
	d, ok := builtinDigesters[f.digest]
	if !ok {
		return "", newConfigError(ErrNoDigest, typeName, formatName)
	}
	if t.sigil == "" && f.suffix == "" {
		return "", newConfigError(ErrNoDecoder, typeName, formatName)
	}
	return t.sigil + payloadEncoding.EncodeToString(d.Digest(content)) + f.suffix, nil
}
