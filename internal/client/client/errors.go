package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/netx"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrUnavailable = errors.New("server unavailable")

// mapError converts a gRPC status into one of the common sentinels, keeping
// the server's message for display.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var base error
	switch st.Code() {
	case codes.InvalidArgument:
		base = common.ErrorValidation
	case codes.Unauthenticated:
		base = common.ErrorUnauthorized
	case codes.NotFound:
		base = common.ErrorNotFound
	case codes.ResourceExhausted:
		base = common.ErrorRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		base = ErrUnavailable
	default:
		base = common.ErrorInternal
	}
	return wrap(base, st.Message())
}

// mapHTTPError does the same for REST responses.
func mapHTTPError(err error) error {
	var se *netx.StatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var base error
	switch se.Code {
	case http.StatusBadRequest:
		base = common.ErrorValidation
	case http.StatusUnauthorized:
		base = common.ErrorUnauthorized
	case http.StatusNotFound:
		base = common.ErrorNotFound
	case http.StatusTooManyRequests:
		base = common.ErrorRateLimited
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		base = ErrUnavailable
	default:
		base = common.ErrorInternal
	}
	return wrap(base, se.Message)
}

func wrap(base error, msg string) error {
	if msg == "" || msg == base.Error() {
		return base
	}
	return fmt.Errorf("%w: %s", base, msg)
}
