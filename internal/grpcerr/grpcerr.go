// Package grpcerr maps domain errors onto gRPC status codes.
package grpcerr

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, model.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, model.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, model.ErrDuplicateIdentity):
		return codes.AlreadyExists
	case errors.Is(err, model.ErrInsufficientStock):
		return codes.FailedPrecondition
	case errors.Is(err, model.ErrStorageBusy):
		return codes.Unavailable
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}
	return codes.Internal
}

// Status converts err to a gRPC status error. Internal errors hide their detail.
func Status(err error) error {
	if err == nil {
		return nil
	}
	code := Code(err)
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
