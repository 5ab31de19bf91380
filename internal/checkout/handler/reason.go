package handler

import (
	"errors"

	"github.com/fekuna/omnipos-pos-ledger/internal/model"
)

// reasonMessage picks the translated message for a failed commit and the data
// its template needs.
func reasonMessage(err error) (string, map[string]interface{}) {
	var lineErr *model.LineError
	hasLine := errors.As(err, &lineErr)

	switch {
	case errors.Is(err, model.ErrValidation):
		return "InvalidCart", map[string]interface{}{"Detail": err.Error()}
	case hasLine && errors.Is(err, model.ErrInsufficientStock):
		return "InsufficientStock", map[string]interface{}{"Product": lineErr.Product}
	case hasLine && errors.Is(err, model.ErrDuplicateIdentity):
		return "DuplicateProduct", map[string]interface{}{"Product": lineErr.Product}
	case hasLine && errors.Is(err, model.ErrNotFound):
		return "ProductNotFound", map[string]interface{}{"Line": lineErr.Line, "Product": lineErr.Product}
	case errors.Is(err, model.ErrStorageBusy):
		return "StorageBusy", nil
	}
	return "StorageError", map[string]interface{}{"Detail": err.Error()}
}
