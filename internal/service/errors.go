package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/friendsmeet/internal/lock"
	"github.com/mmynk/friendsmeet/internal/storage"
	"github.com/mmynk/friendsmeet/internal/suggest"
)

// ErrNotGroupCreator is returned when someone other than the creator tries to
// delete a group.
var ErrNotGroupCreator = errors.New("only the group creator can delete the group")

// errTryAgain replaces storage causes in responses; callers log the cause.
var errTryAgain = errors.New("storage temporarily unavailable, please retry")

// toConnectError maps domain errors to Connect status codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case suggest.IsPreconditionError(err):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, lock.ErrNotAcquired):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, suggest.ErrStoreUnavailable), errors.Is(err, suggest.ErrStoreWrite),
		errors.Is(err, storage.ErrUnavailable), errors.Is(err, lock.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, errTryAgain)
	case errors.Is(err, ErrNotGroupCreator):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// fromStore tags a store failure as an outage unless it is a missing or
// conflicting record or the request itself ended.
func fromStore(err error) error {
	switch {
	case err == nil,
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrConflict),
		errors.Is(err, storage.ErrUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
}

// validationError converts validator output into an InvalidArgument error that
// names every offending field.
func validationError(err error) *connect.Error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(msgs, "; ")))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s long", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "datetime":
		return fmt.Sprintf("%s %q does not match layout %s", field, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
