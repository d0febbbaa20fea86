// Package cryptox wraps the password and token hashing used by the
// reference server.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/dmitrijs2005/skillshare/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// ResetTokenSize is the number of random bytes in a password reset token.
const ResetTokenSize = 32

// ErrPasswordMismatch is returned by CheckPassword for a wrong password.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword returns a bcrypt hash of password at the default cost.
//
// Example:
//
//	hash, err := cryptox.HashPassword([]byte("secret1"))
//	if err != nil {
//	    return err
//	}
//	err = cryptox.CheckPassword(hash, []byte("secret1")) // nil
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

// CheckPassword compares password with a hash from HashPassword.
// A wrong password yields ErrPasswordMismatch; a corrupt hash yields the
// bcrypt error.
func CheckPassword(hash, password []byte) error {
	err := bcrypt.CompareHashAndPassword(hash, password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// NewResetToken returns a random token to hand to the user together with
// the digest to store. Only the digest is kept server side.
func NewResetToken() (token, digest string, err error) {
	token, err = common.MakeRandHexString(ResetTokenSize)
	if err != nil {
		return "", "", err
	}
	return token, HashToken(token), nil
}

// HashToken returns the hex sha256 digest of token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenMatches reports whether token hashes to digest, in constant time.
func TokenMatches(token, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(digest)) == 1
}
