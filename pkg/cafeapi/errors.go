package cafeapi

import (
	"context"
	"errors"
	"net"
)

var (
	ErrTimeout           = errors.New("backend request timed out")
	ErrConnection        = errors.New("backend unreachable")
	ErrMalformedResponse = errors.New("backend response is not valid JSON")
)

// Failure kinds reported by FailureKind.
const (
	KindTimeout    = "timeout"
	KindConnection = "connection"
	KindMalformed  = "malformed"
	KindInternal   = "internal"
)

// FailureKind classifies an error returned by Client.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrConnection):
		return KindConnection
	default:
		return KindInternal
	}
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrConnection
}
