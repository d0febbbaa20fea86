package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns 2*size hex characters built from size random bytes.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewObjectID returns a fresh 24-character hexadecimal identifier.
func NewObjectID() (string, error) {
	return MakeRandHexString(ObjectIDSize)
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Text returns a pointer to s. Used for update fields where nil means "keep".
func Text(s string) *string {
	return &s
}

// TextValue returns *p, or "" for nil.
func TextValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
