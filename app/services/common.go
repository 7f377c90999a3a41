package services

import (
	apperrors "bulletin/app/errors"
	"bulletin/app/repositories"

	"github.com/google/uuid"
)

// checkID rejects identifiers that are not in the store's id shape: the
// canonical lowercase 36-character uuid form. uuid.Parse alone also accepts
// braced, urn and bare-hex spellings that would key a different record.
func checkID(id, name string) error {
	if parsed, err := uuid.Parse(id); err != nil || parsed.String() != id {
		return apperrors.BadIdentifier(name + " must be a valid id")
	}
	return nil
}

// storeError classifies a repository failure.
func storeError(err error, resource, op string) error {
	if apperrors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(resource + " not found")
	}
	return apperrors.Internal(apperrors.Wrapf(err, "%s %s", op, resource))
}
