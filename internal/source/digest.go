package source

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a content fingerprint (SHA-256 of the source text).
type Digest [32]byte

// Fingerprint hashes text.
func Fingerprint(text string) Digest {
	return sha256.Sum256([]byte(text))
}

// IsZero reports whether d is the zero digest, i.e. no content was hashed yet.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String returns the hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, enough for logs.
func (d Digest) Short() string {
	return d.String()[:12]
}
