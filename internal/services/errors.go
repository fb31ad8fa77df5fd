package services

import (
	"errors"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
)

// translate maps repository failures onto the application error kinds.
// what names the thing being accessed, e.g. "account".
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("%s not found", what)
	case errors.Is(err, repository.ErrDuplicateEntry):
		return apperrors.NewAppError(apperrors.ErrDuplicateEntry, err.Error(), apperrors.CodeDuplicateEntry)
	case errors.Is(err, repository.ErrInvalidInput):
		return apperrors.Validation("%s: %v", what, err)
	case apperrors.GetErrorCode(err) != apperrors.CodeInternalError:
		// already an application error
		return err
	default:
		return apperrors.Store(err, "failed to access "+what)
	}
}
