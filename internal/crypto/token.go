package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

type randomTokenGenerator struct {
	size int
}

// NewTokenGenerator returns a [TokenGenerator] producing 32 random bytes
// encoded as unpadded base64url.
func NewTokenGenerator() TokenGenerator {
	return &randomTokenGenerator{size: 32}
}

func (g *randomTokenGenerator) NewToken() (string, error) {
	buf := make([]byte, g.size)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
