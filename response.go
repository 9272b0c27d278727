package farfetch

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Response wraps the transport response with an eagerly materialized body.
// The body is read once at construction; every accessor works off the cached
// bytes, so repeated access is idempotent.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header

	// Raw is the underlying transport response. Its body has already been
	// drained and closed.
	Raw *http.Response

	body    []byte
	json    any
	hasJSON bool
	text    string
	hasText bool
}

// newResponse drains the transport response and derives at most one parsed
// field from the declared content type: JSON for application/json (and
// +json suffixes), text for text/plain. A malformed JSON body leaves the
// derived field unset; Decode reports the parse error on demand.
func newResponse(httpResp *http.Response) (*Response, error) {
	body, err := io.ReadAll(httpResp.Body)
	closeErr := httpResp.Body.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Raw:        httpResp,
		body:       body,
	}

	mediaType, _, _ := mime.ParseMediaType(httpResp.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			resp.json = v
			resp.hasJSON = true
		}
	case mediaType == "text/plain":
		resp.text = string(body)
		resp.hasText = true
	}
	return resp, nil
}

// Body returns the raw body bytes.
func (r *Response) Body() []byte {
	return r.body
}

// JSON returns the eagerly parsed JSON value when the response declared a
// JSON content type and the body parsed cleanly.
func (r *Response) JSON() (any, bool) {
	return r.json, r.hasJSON
}

// Text returns the body when the response declared text/plain.
func (r *Response) Text() (string, bool) {
	return r.text, r.hasText
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.body, v)
}

// Get extracts a value from a JSON body by gjson path, e.g. "items.0.name".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.body, path)
}

// GetHeader returns the value of the named response header.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess reports a status in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsClientError reports a status in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports a status of 500 or above.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}
