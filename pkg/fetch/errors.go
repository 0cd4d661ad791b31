package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrInvalidJSON indicates a response body that is not valid JSON.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// Kind classifies a transient transport failure.
type Kind string

const (
	// KindTimeout means the transport signaled a deadline expiry.
	KindTimeout Kind = "timeout"

	// KindTransport means any other network-level failure (DNS, refused
	// connection, TLS, reset).
	KindTransport Kind = "transport"
)

// Error is a transient transport failure for one URL. It is tolerated by
// the engine: logged, counted against the failure budget, and the
// identifier skipped.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s failed (%s): %v", e.URL, e.Kind, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// PayloadError is a response the fetcher could not decode. It is outside
// the transport taxonomy and fatal: the engine never counts it against the
// failure budget.
type PayloadError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *PayloadError) Error() string {
	return fmt.Sprintf("undecodable payload from %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *PayloadError) Unwrap() error {
	return e.Err
}

// Classify wraps a transport error in an *Error with its Kind resolved.
// Deadline expiries (net.Error timeouts, context.DeadlineExceeded) become
// KindTimeout; everything else is KindTransport.
func Classify(url string, err error) *Error {
	kind := KindTransport

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = KindTimeout
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}

	return &Error{Kind: kind, URL: url, Err: err}
}

// IsTransient reports whether err is a tolerated transport failure.
func IsTransient(err error) bool {
	var fe *Error
	return errors.As(err, &fe)
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindTimeout
}
