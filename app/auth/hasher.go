// Package auth hashes and verifies the per-record passwords that gate
// mutation of posts and comments.
package auth

import (
	apperrors "bulletin/app/errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// MaxPasswordBytes is the longest password bcrypt takes into account.
const MaxPasswordBytes = 72

// ErrMalformedHash is returned by Verify when the stored value is not a bcrypt hash.
var ErrMalformedHash = apperrors.New("stored password hash is malformed")

// PasswordHasher is the credential hasher used by the services.
type PasswordHasher interface {
	// Hash returns a salted one-way hash suitable for storage.
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A mismatch is (false, nil).
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher with bcrypt. bcrypt draws a fresh
// random salt on every call and embeds it in the hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside bcrypt's
// accepted range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the work factor in use.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Verify never matches a password longer than MaxPasswordBytes, since bcrypt
// would compare only its prefix.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	if len(password) > MaxPasswordBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case apperrors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperrors.Wrap(ErrMalformedHash, err.Error())
	}
}
