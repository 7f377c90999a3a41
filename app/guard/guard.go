// Package guard gates mutation of a record behind verification of the
// password it was created with.
package guard

import (
	"context"

	"bulletin/app/auth"
	apperrors "bulletin/app/errors"
	"bulletin/app/repositories"
)

// Owned is a record protected by a stored password hash.
type Owned interface {
	PasswordHash() string
}

// Authorize runs the lookup and verify steps for a mutating request and
// returns the loaded record when the caller may proceed:
//
//	lookup: load fails with repositories.ErrNotFound -> NOT_FOUND
//	verify: password does not match the stored hash  -> UNAUTHORIZED
//	proceed: record returned, caller performs the mutation
//
// The mutation is a separate store call made by the caller, so a record can
// change between verification and mutation.
func Authorize[T Owned](ctx context.Context, hasher auth.PasswordHasher, load func(ctx context.Context) (T, error), password, resource string) (T, error) {
	var zero T

	record, err := load(ctx)
	if apperrors.Is(err, repositories.ErrNotFound) {
		return zero, apperrors.NotFound(resource + " not found")
	}
	if err != nil {
		return zero, apperrors.Internal(apperrors.Wrapf(err, "load %s", resource))
	}

	ok, err := hasher.Verify(password, record.PasswordHash())
	if err != nil {
		return zero, apperrors.Internal(apperrors.Wrapf(err, "verify %s password", resource))
	}
	if !ok {
		return zero, apperrors.Unauthorized("password does not match")
	}
	return record, nil
}
