package truenas

import "fmt"

// FetchError reports a request to the TrueNAS API that never produced a
// usable response: the connection failed, the request could not be built,
// or the server answered with a non-2xx status.
type FetchError struct {
	// Endpoint is the API path suffix that was requested, e.g. "jail".
	Endpoint string

	// StatusCode is the HTTP status of the response, or zero when no
	// response was received at all.
	StatusCode int

	// Err is the underlying transport error, nil for plain bad statuses.
	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a 2xx response whose body could not be decoded into
// the expected JSON collection.
type ParseError struct {
	// Endpoint is the API path suffix whose response failed to decode.
	Endpoint string

	// Err is the underlying decode error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
