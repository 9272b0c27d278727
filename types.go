package farfetch

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Doer is the transport primitive the client wraps. *http.Client satisfies
// it; any RoundTripper-backed implementation can be injected instead.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DynamicOptions computes transport options fresh for every request, e.g.
// from an externally stored credential. Its result is merged between the
// client's default options and the per-request options.
type DynamicOptions func(ctx context.Context) (Options, error)

// BeforeSendHook observes the fully resolved request before the transport is
// invoked. It must not attempt to alter the request; a returned error aborts
// the call and propagates to the caller unchanged.
type BeforeSendHook func(ctx context.Context, info *RequestInfo) error

// AfterSendHook observes the response envelope after a successful request.
// A returned error propagates to the caller unchanged.
type AfterSendHook func(ctx context.Context, resp *Response) error

// ErrorHandler receives request failures that carry an error message or
// noun. It runs exactly once per failed request, before the tagged error is
// returned to the caller.
type ErrorHandler func(ctx context.Context, report ErrorReport) error

// ErrorMsgTemplate renders the user-facing message handed to the
// ErrorHandler when no explicit message was supplied for the call.
type ErrorMsgTemplate func(method, noun string) string

// ErrorReport is the payload passed to the ErrorHandler.
type ErrorReport struct {
	Err      error
	Response *Response // nil when the transport never produced one
	Message  string
}

// BasicAuth carries credentials applied to the outgoing request.
type BasicAuth struct {
	Username string
	Password string
}

// RequestInfo is the immutable snapshot handed to the BeforeSendHook.
type RequestInfo struct {
	URL          string
	Method       string
	Options      Options
	Data         map[string]any
	URLParams    map[string]string
	Files        *Files
	ErrorMsg     string
	ErrorMsgNoun string
}

// DebugConfig controls debug logging behavior
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogHooks     bool
	LogErrors    bool
	RequestIDGen func() string
}

// DefaultDebugConfig returns a DebugConfig with all log categories enabled
// and UUID request IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogHooks:     true,
		LogErrors:    true,
		RequestIDGen: uuid.NewString,
	}
}

// DefaultErrorMsgTemplate maps the request method to a verb and formats the
// message as "Error <verb> <noun>".
func DefaultErrorMsgTemplate(method, noun string) string {
	var verb string
	switch method {
	case http.MethodGet, http.MethodHead:
		verb = "fetching"
	case http.MethodPost:
		verb = "adding"
	case http.MethodPut, http.MethodPatch:
		verb = "updating"
	case http.MethodDelete:
		verb = "deleting"
	default:
		verb = "sending"
	}
	return "Error " + verb + " " + noun
}
