package driven

import "fmt"

// RemoteError is a protocol-level failure: the remote store answered with a
// non-success status. Message carries the response body text when one could
// be read, else the status reason phrase.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("notion api error %d: %s", e.Status, e.Message)
}

// TransportError is a network-level failure (DNS, TLS, timeout) where no
// HTTP response was obtained. Kept distinct from RemoteError so callers can
// choose different retry policies, though this core retries neither.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("notion api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
