package bookings_service_api

import (
	"context"
	"errors"

	"github.com/Domenick1991/skybook/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code maps a service error to a gRPC status code. The HTTP handlers reuse it
// so both surfaces agree on error classes.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return st.Code()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return codes.InvalidArgument
	case errors.Is(err, domain.ErrFlightNotFound):
		return codes.NotFound
	case errors.Is(err, domain.ErrDuplicateRequest):
		return codes.AlreadyExists
	case errors.Is(err, domain.ErrUnauthenticated):
		return codes.Unauthenticated
	case errors.Is(err, domain.ErrForbidden):
		return codes.PermissionDenied
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(Code(err), err.Error())
}
