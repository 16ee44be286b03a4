package service

import (
	"errors"

	domainerrors "github.com/chatlabs/chat-api/internal/errors"
	"github.com/chatlabs/chat-api/internal/store"
)

// translateStoreError maps store sentinels to domain errors.
// Anything else is an infrastructure error and is returned unchanged.
func translateStoreError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}

	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		return err
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFoundMsg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict(storeErr.Message).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation(storeErr.Message).WithCause(err)
	default:
		return err
	}
}
