package farfetch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin convenience layer over an injectable HTTP transport. It
// normalizes option merging, request-body encoding, response-body
// materialization and error reporting across the six verbs. Configuration is
// immutable after construction; a single instance is safe for concurrent
// use. Request-time-varying options flow through the DynamicOptions
// provider, called fresh per request.
type Client struct {
	transport        Doer
	baseURL          string
	defaultOptions   Options
	dynamicOptions   DynamicOptions
	beforeSend       BeforeSendHook
	afterSend        AfterSendHook
	errorHandler     ErrorHandler
	errorMsgTemplate ErrorMsgTemplate
	metrics          *MetricsCollector
	debug            *DebugConfig
	logger           Logger
	validationError  error
}

// New constructs a Client using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for errors.
func New(options ...Option) *Client {
	client := &Client{
		transport: &http.Client{
			Timeout: 30 * time.Second,
		},
		errorMsgTemplate: DefaultErrorMsgTemplate,
		debug:            DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// Get performs a GET. req may be nil.
func (c *Client) Get(ctx context.Context, url string, req *Request) (*Response, error) {
	return c.send(ctx, http.MethodGet, url, req)
}

// Head performs a HEAD. req may be nil.
func (c *Client) Head(ctx context.Context, url string, req *Request) (*Response, error) {
	return c.send(ctx, http.MethodHead, url, req)
}

// Post performs a POST. req may be nil.
func (c *Client) Post(ctx context.Context, url string, req *Request) (*Response, error) {
	return c.send(ctx, http.MethodPost, url, req)
}

// Put performs a PUT. req may be nil.
func (c *Client) Put(ctx context.Context, url string, req *Request) (*Response, error) {
	return c.send(ctx, http.MethodPut, url, req)
}

// Patch performs a PATCH. req may be nil.
func (c *Client) Patch(ctx context.Context, url string, req *Request) (*Response, error) {
	return c.send(ctx, http.MethodPatch, url, req)
}

// Delete performs a DELETE. req may be nil.
func (c *Client) Delete(ctx context.Context, url string, req *Request) (*Response, error) {
	return c.send(ctx, http.MethodDelete, url, req)
}

func (c *Client) send(ctx context.Context, method, url string, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}
	call := *req
	call.URL = url
	call.Method = method
	return c.Do(ctx, &call)
}

// Do executes one request: validate, merge options, encode the payload, run
// the BeforeSendHook, invoke the transport, materialize the envelope, then
// run the AfterSendHook or drive the error path. Every failure surfaces to
// the caller; no local recovery is attempted.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.validationError != nil {
		return nil, c.validationError
	}

	start := time.Now()

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	if cfgErr := req.validate(); cfgErr != nil {
		cfgErr.Method = req.Method
		cfgErr.URL = req.URL
		cfgErr.RequestID = requestID
		cfgErr.Timestamp = time.Now()
		c.logError(requestID, cfgErr)
		return nil, cfgErr
	}

	merged, err := c.mergeOptions(ctx, req.Options, req.SkipDefaults)
	if err != nil {
		cfgErr := &RequestError{
			Type:      ErrorTypeConfig,
			Message:   "dynamic options provider failed",
			Cause:     err,
			Method:    req.Method,
			URL:       req.URL,
			RequestID: requestID,
			Timestamp: time.Now(),
		}
		c.logError(requestID, cfgErr)
		return nil, cfgErr
	}

	body, err := c.buildPayload(req, &merged)
	if err != nil {
		encErr := &RequestError{
			Type:      ErrorTypeEncode,
			Message:   "request body could not be encoded",
			Cause:     err,
			Method:    req.Method,
			URL:       req.URL,
			RequestID: requestID,
			Timestamp: time.Now(),
		}
		c.logError(requestID, encErr)
		return nil, encErr
	}

	finalURL, err := c.resolveURL(req)
	if err != nil {
		cfgErr := &RequestError{
			Type:      ErrorTypeConfig,
			Message:   "request URL is invalid",
			Cause:     err,
			Method:    req.Method,
			URL:       req.URL,
			RequestID: requestID,
			Timestamp: time.Now(),
		}
		c.logError(requestID, cfgErr)
		return nil, cfgErr
	}

	endpoint := endpointFromURL(finalURL)

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting request", "requestID", requestID, "method", req.Method, "url", finalURL, "endpoint", endpoint)
	}

	if c.metrics != nil {
		c.metrics.RecordRequestStart(req.Method, endpoint)
		defer c.metrics.RecordRequestEnd(req.Method, endpoint)
	}

	if !req.SkipBeforeSend && c.beforeSend != nil {
		if c.debug != nil && c.debug.Enabled && c.debug.LogHooks && c.logger != nil {
			c.logger.Debug("Invoking beforeSend hook", "requestID", requestID)
		}
		if err := c.beforeSend(ctx, req.snapshot(finalURL, merged)); err != nil {
			c.logError(requestID, err)
			return nil, err
		}
	}

	if merged.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, merged.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, finalURL, body)
	if err != nil {
		cfgErr := &RequestError{
			Type:      ErrorTypeConfig,
			Message:   "request could not be constructed",
			Cause:     err,
			Method:    req.Method,
			URL:       finalURL,
			RequestID: requestID,
			Timestamp: time.Now(),
		}
		c.logError(requestID, cfgErr)
		return nil, cfgErr
	}
	applyOptions(httpReq, merged)

	httpResp, err := c.transportFor(merged).Do(httpReq)
	if err != nil {
		reqErr := &RequestError{
			Type:      ErrorTypeNetwork,
			Message:   "request failed",
			Cause:     err,
			Method:    req.Method,
			URL:       finalURL,
			RequestID: requestID,
			Timestamp: time.Now(),
			Duration:  time.Since(start),
		}
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeNetwork, req.Method, endpoint)
			c.metrics.RecordRequest(req.Method, endpoint, 0, time.Since(start))
		}
		return nil, c.fail(ctx, req, endpoint, reqErr)
	}

	resp, err := newResponse(httpResp)
	if err != nil {
		reqErr := &RequestError{
			Type:       ErrorTypeNetwork,
			Message:    "response body could not be read",
			Cause:      err,
			Method:     req.Method,
			URL:        finalURL,
			StatusCode: httpResp.StatusCode,
			RequestID:  requestID,
			Timestamp:  time.Now(),
			Duration:   time.Since(start),
		}
		if c.metrics != nil {
			c.metrics.RecordError(ErrorTypeNetwork, req.Method, endpoint)
			c.metrics.RecordRequest(req.Method, endpoint, httpResp.StatusCode, time.Since(start))
		}
		return nil, c.fail(ctx, req, endpoint, reqErr)
	}

	if c.metrics != nil {
		c.metrics.RecordRequest(req.Method, endpoint, resp.StatusCode, time.Since(start))
	}

	if !resp.IsSuccess() {
		errType := ErrorTypeServer
		if resp.IsClientError() {
			errType = ErrorTypeClient
		}
		reqErr := &RequestError{
			Type:       errType,
			Message:    "server error",
			Response:   resp,
			Method:     req.Method,
			URL:        finalURL,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Timestamp:  time.Now(),
			Duration:   time.Since(start),
		}
		if c.metrics != nil {
			c.metrics.RecordError(errType, req.Method, endpoint)
		}
		return nil, c.fail(ctx, req, endpoint, reqErr)
	}

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Request completed", "requestID", requestID, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if !req.SkipAfterSend && c.afterSend != nil {
		if c.debug != nil && c.debug.Enabled && c.debug.LogHooks && c.logger != nil {
			c.logger.Debug("Invoking afterSend hook", "requestID", requestID)
		}
		if err := c.afterSend(ctx, resp); err != nil {
			c.logError(requestID, err)
			return nil, err
		}
	}

	return resp, nil
}

// fail drives the error path for request failures. The ErrorHandler runs
// only when the call supplied an error message or noun; supplying neither is
// the documented way to opt out of the global handler and deal with the
// failure manually. The tagged error is returned either way.
func (c *Client) fail(ctx context.Context, req *Request, endpoint string, reqErr *RequestError) error {
	c.logError(reqErr.RequestID, reqErr)

	if (req.ErrorMsg != "" || req.ErrorMsgNoun != "") && c.errorHandler != nil {
		message := req.ErrorMsg
		if message == "" {
			message = c.errorMsgTemplate(req.Method, req.ErrorMsgNoun)
		}
		if c.metrics != nil {
			c.metrics.RecordErrorHandlerInvocation(req.Method, endpoint)
		}
		if c.debug != nil && c.debug.Enabled && c.debug.LogHooks && c.logger != nil {
			c.logger.Debug("Invoking error handler", "requestID", reqErr.RequestID, "message", message)
		}
		if err := c.errorHandler(ctx, ErrorReport{
			Err:      reqErr,
			Response: reqErr.Response,
			Message:  message,
		}); err != nil {
			return err
		}
	}
	return reqErr
}

// buildPayload derives the request body for body-routing methods and adjusts
// the Content-Type leaf accordingly. Multipart bodies drop any explicit
// Content-Type so the boundary-carrying header wins.
func (c *Client) buildPayload(req *Request, opts *Options) (io.Reader, error) {
	if req.Files != nil {
		buf, contentType, err := buildForm(req.Files, req.Data)
		if err != nil {
			return nil, err
		}
		opts.deleteHeader("Content-Type")
		opts.setHeader("Content-Type", contentType)
		return buf, nil
	}

	if isQueryMethod(req.Method) || len(req.Data) == 0 {
		return nil, nil
	}

	if strings.HasPrefix(opts.Header("Content-Type"), "application/x-www-form-urlencoded") {
		return strings.NewReader(encodeForm(req.Data)), nil
	}

	encoded, err := json.Marshal(req.Data)
	if err != nil {
		return nil, err
	}
	opts.setHeader("Content-Type", "application/json")
	return bytes.NewReader(encoded), nil
}

// transportFor resolves the transport for one request. A merged
// FollowRedirects leaf overrides the redirect policy on a shallow copy of the
// underlying *http.Client: false stops at the first redirect response, true
// restores the default following behavior. Other Doer implementations carry
// no redirect policy and are used as-is.
func (c *Client) transportFor(opts Options) Doer {
	if opts.FollowRedirects == nil {
		return c.transport
	}
	httpClient, ok := c.transport.(*http.Client)
	if !ok {
		return c.transport
	}
	clone := *httpClient
	if *opts.FollowRedirects {
		clone.CheckRedirect = nil
	} else {
		clone.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &clone
}

// applyOptions copies the merged options onto the outgoing request.
func applyOptions(httpReq *http.Request, opts Options) {
	for key, v := range opts.Headers {
		httpReq.Header.Set(key, v)
	}
	for _, cookie := range opts.Cookies {
		httpReq.AddCookie(cookie)
	}
	if opts.BasicAuth != nil {
		httpReq.SetBasicAuth(opts.BasicAuth.Username, opts.BasicAuth.Password)
	}
}

func (c *Client) logError(requestID string, err error) {
	if c.debug != nil && c.debug.Enabled && c.debug.LogErrors && c.logger != nil {
		c.logger.Warn("Request error", "requestID", requestID, "error", err.Error())
	}
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

func endpointFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}

	var builder strings.Builder
	builder.WriteString(u.Host)
	if u.Path != "" && u.Path != "/" {
		builder.WriteString(u.Path)
	} else {
		builder.WriteByte('/')
	}
	return builder.String()
}
