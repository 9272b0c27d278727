package farfetch

import (
	"errors"
	"fmt"
	"time"
)

// Error type tags carried by RequestError.
const (
	// ErrorTypeConfig marks a caller programming mistake (conflicting
	// Data/URLParams, a failing DynamicOptions provider, files on a
	// query-string method). Config errors never reach the ErrorHandler.
	ErrorTypeConfig = "Config"

	// ErrorTypeValidation marks an invalid client configuration detected
	// at construction.
	ErrorTypeValidation = "Validation"

	// ErrorTypeNetwork marks a transport-level failure (connection error,
	// context cancellation) with no usable response.
	ErrorTypeNetwork = "Network"

	// ErrorTypeClient marks a 4xx response.
	ErrorTypeClient = "Client"

	// ErrorTypeServer marks a 5xx response, or any status outside 200-299
	// that is not a 4xx.
	ErrorTypeServer = "Server"

	// ErrorTypeEncode marks a request body that could not be serialized.
	ErrorTypeEncode = "Encode"
)

// RequestError is the tagged error returned for every failed request. For
// request failures it carries the response envelope when one exists.
type RequestError struct {
	Type       string
	Message    string
	Cause      error
	Response   *Response
	Method     string
	URL        string
	StatusCode int
	RequestID  string
	Timestamp  time.Time
	Duration   time.Duration
}

// Error implements error interface.
func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *RequestError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*RequestError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *RequestError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsRequestFailure reports whether err is a failed request attempt: a
// transport error or a non-2xx response. Config and validation errors are
// not request failures.
func IsRequestFailure(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	switch reqErr.Type {
	case ErrorTypeNetwork, ErrorTypeClient, ErrorTypeServer:
		return true
	}
	return false
}

// IsConfigError reports whether err is a caller configuration mistake.
func IsConfigError(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	return reqErr.Type == ErrorTypeConfig || reqErr.Type == ErrorTypeValidation
}
