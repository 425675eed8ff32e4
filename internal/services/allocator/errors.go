package allocator

import "fmt"

// ServiceError is a failure reported by the allocator service itself: a
// non-2xx status or a 2xx response whose body could not be decoded.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("allocator service returned status %d", e.StatusCode)
}

// TransportError is a network-level failure: no usable response arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage extracts a human-readable message for the dashboard: the remote
// structured message when present, else the transport error text, else a
// generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "analysis service unavailable"
}
