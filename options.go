package farfetch

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithBaseURL sets the base URL prefixed onto relative request URLs.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTransport injects the transport primitive the client wraps.
func WithTransport(transport Doer) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithHTTPClient is WithTransport for a plain *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.transport = client
	}
}

// WithDefaultOptions sets the static default transport options merged under
// every request.
func WithDefaultOptions(opts Options) Option {
	return func(c *Client) {
		c.defaultOptions = opts.Clone()
	}
}

// WithDefaultHeader adds one static default header.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.defaultOptions.setHeader(key, value)
	}
}

// WithTimeout sets the default per-request timeout. Per-request options
// override it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.defaultOptions.Timeout = d
	}
}

// WithFollowRedirects sets the default redirect-policy leaf. Per-request
// options override it.
func WithFollowRedirects(follow bool) Option {
	return func(c *Client) {
		c.defaultOptions.FollowRedirects = &follow
	}
}

// WithDynamicOptions sets the provider computing options fresh per request.
func WithDynamicOptions(fn DynamicOptions) Option {
	return func(c *Client) {
		c.dynamicOptions = fn
	}
}

// WithBeforeSend sets the hook observing every resolved request before the
// transport runs.
func WithBeforeSend(hook BeforeSendHook) Option {
	return func(c *Client) {
		c.beforeSend = hook
	}
}

// WithAfterSend sets the hook observing every successful response envelope.
func WithAfterSend(hook AfterSendHook) Option {
	return func(c *Client) {
		c.afterSend = hook
	}
}

// WithErrorHandler sets the global handler for request failures that carry
// an error message or noun.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *Client) {
		c.errorHandler = handler
	}
}

// WithErrorMsgTemplate overrides the default "Error <verb> <noun>" template.
func WithErrorMsgTemplate(tmpl ErrorMsgTemplate) Option {
	return func(c *Client) {
		c.errorMsgTemplate = tmpl
	}
}

// WithMetrics enables Prometheus metrics collection on the default registry.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an
// error if invalid.
func (c *Client) ValidateConfiguration() error {
	var errs []string

	errs = append(errs, c.validateTransportConfig()...)
	errs = append(errs, c.validateBaseURLConfig()...)
	errs = append(errs, c.validateDefaultOptionsConfig()...)
	errs = append(errs, c.validateDebugConfig()...)
	errs = append(errs, c.validateTemplateConfig()...)

	if len(errs) > 0 {
		return &RequestError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errs),
		}
	}

	return nil
}

func (c *Client) validateTransportConfig() []string {
	var errs []string

	if c.transport == nil {
		errs = append(errs, "transport cannot be nil")
	}

	return errs
}

func (c *Client) validateBaseURLConfig() []string {
	var errs []string

	if c.baseURL != "" {
		if _, err := url.Parse(c.baseURL); err != nil {
			errs = append(errs, fmt.Sprintf("baseURL is not a valid URL: %v", err))
		}
	}

	return errs
}

func (c *Client) validateDefaultOptionsConfig() []string {
	var errs []string

	if c.defaultOptions.Timeout < 0 {
		errs = append(errs, "default timeout must be non-negative")
	}

	return errs
}

func (c *Client) validateDebugConfig() []string {
	var errs []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			errs = append(errs, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			errs = append(errs, "logger must be set when debug is enabled")
		}
	}

	return errs
}

func (c *Client) validateTemplateConfig() []string {
	var errs []string

	if c.errorMsgTemplate == nil {
		errs = append(errs, "errorMsgTemplate cannot be nil")
	}

	return errs
}
