// Package netx turns transport failures into short messages a user can act on.
package netx

import (
	"context"
	"errors"
	"net"
	"syscall"
)

const (
	MsgTimeout      = "the server did not answer in time"
	MsgRefused      = "the server refused the connection"
	MsgUnknownHost  = "the server host could not be resolved"
	MsgConnReset    = "the connection was interrupted"
	MsgNetworkError = "the server could not be reached"
)

// Describe classifies an error returned by an HTTP round trip.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.As(err, &dnsErr):
		return MsgUnknownHost
	case errors.Is(err, syscall.ECONNREFUSED):
		return MsgRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return MsgConnReset
	case errors.As(err, &netErr) && netErr.Timeout():
		return MsgTimeout
	default:
		return MsgNetworkError
	}
}
