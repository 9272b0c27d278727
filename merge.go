package farfetch

import (
	"context"
	"net/http"
	"time"
)

// Options is the transport-option set merged across the client defaults, the
// DynamicOptions result and the per-request options. Merge granularity is
// the leaf: header maps merge key by key, every other field is replaced
// wholesale by the higher-precedence source when it is set there. Cookies in
// particular are never concatenated.
type Options struct {
	Headers   map[string]string
	Cookies   []*http.Cookie
	BasicAuth *BasicAuth
	Timeout   time.Duration

	// FollowRedirects is tri-state: nil leaves the transport's redirect
	// policy untouched, false stops at the first redirect response, true
	// restores the default following behavior. Takes effect when the
	// transport is an *http.Client.
	FollowRedirects *bool
}

// Clone returns a deep copy so merged results never alias their sources.
func (o Options) Clone() Options {
	out := Options{Timeout: o.Timeout}
	if o.Headers != nil {
		out.Headers = make(map[string]string, len(o.Headers))
		for key, v := range o.Headers {
			out.Headers[http.CanonicalHeaderKey(key)] = v
		}
	}
	if o.Cookies != nil {
		out.Cookies = cloneCookies(o.Cookies)
	}
	if o.BasicAuth != nil {
		auth := *o.BasicAuth
		out.BasicAuth = &auth
	}
	if o.FollowRedirects != nil {
		follow := *o.FollowRedirects
		out.FollowRedirects = &follow
	}
	return out
}

// cloneCookies copies the cookie structs, not just the pointer slice.
func cloneCookies(cookies []*http.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, len(cookies))
	for i, c := range cookies {
		if c != nil {
			clone := *c
			c = &clone
		}
		out[i] = c
	}
	return out
}

// Merge combines o with overlay, overlay winning on every leaf it sets.
// Header keys are canonicalized so "content-type" and "Content-Type" are the
// same leaf. Neither receiver nor overlay is mutated.
func (o Options) Merge(overlay Options) Options {
	out := o.Clone()
	for key, v := range overlay.Headers {
		if out.Headers == nil {
			out.Headers = make(map[string]string, len(overlay.Headers))
		}
		out.Headers[http.CanonicalHeaderKey(key)] = v
	}
	if overlay.Cookies != nil {
		out.Cookies = cloneCookies(overlay.Cookies)
	}
	if overlay.BasicAuth != nil {
		auth := *overlay.BasicAuth
		out.BasicAuth = &auth
	}
	if overlay.Timeout != 0 {
		out.Timeout = overlay.Timeout
	}
	if overlay.FollowRedirects != nil {
		follow := *overlay.FollowRedirects
		out.FollowRedirects = &follow
	}
	return out
}

// Header returns the value for key, looked up canonically. Empty string when
// absent.
func (o Options) Header(key string) string {
	if o.Headers == nil {
		return ""
	}
	return o.Headers[http.CanonicalHeaderKey(key)]
}

// setHeader overrides a single header leaf in place.
func (o *Options) setHeader(key, value string) {
	if o.Headers == nil {
		o.Headers = make(map[string]string, 1)
	}
	o.Headers[http.CanonicalHeaderKey(key)] = value
}

// deleteHeader removes a single header leaf.
func (o *Options) deleteHeader(key string) {
	delete(o.Headers, http.CanonicalHeaderKey(key))
}

// mergeOptions resolves the effective options for one request: exactly the
// per-request options when skipDefaults is set, otherwise defaults overlaid
// by the DynamicOptions result overlaid by the per-request options.
func (c *Client) mergeOptions(ctx context.Context, perRequest Options, skipDefaults bool) (Options, error) {
	if skipDefaults {
		return perRequest.Clone(), nil
	}
	merged := c.defaultOptions.Clone()
	if c.dynamicOptions != nil {
		dynamic, err := c.dynamicOptions(ctx)
		if err != nil {
			return Options{}, err
		}
		merged = merged.Merge(dynamic)
	}
	return merged.Merge(perRequest), nil
}
