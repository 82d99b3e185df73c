package gamestock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	ErrInvalidURL      = errors.New("invalid base url")
	ErrTradeNotAllowed = errors.New("trade not allowed")
)

type EncodingError struct {
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("can't encode request: %s", e.Cause)
}

func (e *EncodingError) Unwrap() error { return e.Cause }

type DecodingError struct {
	Cause error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("can't decode response: %s", e.Cause)
}

func (e *DecodingError) Unwrap() error { return e.Cause }

type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// FailureCategory is the user-facing bucket an API error falls into.
type FailureCategory string

const (
	FailureNoConnectivity  FailureCategory = "no-connectivity"
	FailureTimeout         FailureCategory = "timeout"
	FailureUnreachableHost FailureCategory = "unreachable-host"
	FailureNetwork         FailureCategory = "other-network"
	FailureDecode          FailureCategory = "decode-error"
	FailureInvalidURL      FailureCategory = "invalid-url"
	FailureEncode          FailureCategory = "encode-error"
	FailureServer          FailureCategory = "server-error"
)

func Classify(err error) FailureCategory {
	var (
		encErr *EncodingError
		decErr *DecodingError
		netErr *NetworkError
		srvErr *ServerError
	)
	switch {
	case errors.Is(err, ErrInvalidURL):
		return FailureInvalidURL
	case errors.As(err, &encErr):
		return FailureEncode
	case errors.As(err, &decErr):
		return FailureDecode
	case errors.As(err, &srvErr):
		return FailureServer
	case errors.As(err, &netErr):
		return classifyTransport(netErr.Cause)
	default:
		return FailureNetwork
	}
}

func classifyTransport(cause error) FailureCategory {
	var dnsErr *net.DNSError
	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		return FailureTimeout
	case errors.As(cause, &dnsErr),
		errors.Is(cause, syscall.ENETDOWN),
		errors.Is(cause, syscall.ENETUNREACH):
		return FailureNoConnectivity
	case errors.Is(cause, syscall.ECONNREFUSED),
		errors.Is(cause, syscall.EHOSTUNREACH),
		errors.Is(cause, syscall.ECONNRESET):
		return FailureUnreachableHost
	}

	var ne net.Error
	if errors.As(cause, &ne) && ne.Timeout() {
		return FailureTimeout
	}

	return FailureNetwork
}

// UserMessage turns an API error into the string surfaced to the user.
func UserMessage(err error) string {
	switch Classify(err) {
	case FailureNoConnectivity:
		return "network unavailable, check your connection"
	case FailureTimeout:
		return "request timed out, try again later"
	case FailureUnreachableHost:
		return "can't reach the server, try again later"
	case FailureDecode:
		return "can't parse the server response"
	case FailureInvalidURL:
		return "invalid server address"
	case FailureEncode:
		return "can't encode the request"
	case FailureServer:
		var srvErr *ServerError
		if errors.As(err, &srvErr) && srvErr.Message != "" {
			return "server error: " + srvErr.Message
		}
		return "server error"
	default:
		return "network error: " + err.Error()
	}
}

// wrapRequestErr sorts an error returned by the HTTP layer into the
// taxonomy. resty surfaces body-unmarshal failures through the same path as
// transport failures.
func wrapRequestErr(err error) error {
	var (
		synErr  *json.SyntaxError
		typeErr *json.UnmarshalTypeError
		marErr  *json.MarshalerError
		unsErr  *json.UnsupportedTypeError
	)
	switch {
	case errors.As(err, &synErr), errors.As(err, &typeErr):
		return &DecodingError{Cause: err}
	case errors.As(err, &marErr), errors.As(err, &unsErr):
		return &EncodingError{Cause: err}
	}
	return &NetworkError{Cause: err}
}
