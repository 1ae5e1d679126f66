package config

import (
	"crypto/rand"
	"fmt"
)

// SigningKeyLength is the minimum key material required by the cookie signing
// primitive. Generated keys are exactly this long; supplied material may be
// longer but is never padded or truncated.
const SigningKeyLength = 64

// SigningKey is opaque symmetric key material. Consumers must not derive
// alternate values from it.
type SigningKey []byte

func generateSigningKey() (SigningKey, error) {
	key := make([]byte, SigningKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return key, nil
}
