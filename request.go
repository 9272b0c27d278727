package farfetch

import (
	"net/url"
	"regexp"
	"strings"
)

// Request describes one call. The zero value of every switch preserves the
// default behavior: hooks run and client defaults apply unless the
// corresponding Skip field is set.
type Request struct {
	URL    string
	Method string

	// Data is routed to the query string on GET/HEAD/DELETE and to the
	// request body on POST/PUT/PATCH.
	Data map[string]any

	// URLParams always become a query string, regardless of method. Using
	// both Data and URLParams on a query-string method is a config error.
	URLParams map[string]string

	// Files switches the body to multipart/form-data; Data entries become
	// auxiliary form fields.
	Files *Files

	// ErrorMsg overrides the templated message passed to the ErrorHandler.
	// ErrorMsgNoun feeds the template. When both are empty the ErrorHandler
	// is skipped for this call.
	ErrorMsg     string
	ErrorMsgNoun string

	SkipBeforeSend bool
	SkipAfterSend  bool
	SkipDefaults   bool

	// Options are the raw transport options for this call; they win over
	// client defaults and the DynamicOptions result on every leaf.
	Options Options
}

var (
	schemePattern     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	driveLetterSuffix = regexp.MustCompile(`^[a-zA-Z]:\\`)
)

// isAbsoluteURL reports whether raw starts with a URL scheme. A Windows
// drive path like C:\data is not absolute.
func isAbsoluteURL(raw string) bool {
	return schemePattern.MatchString(raw) && !driveLetterSuffix.MatchString(raw)
}

// resolveURL produces the final absolute URL: the base URL prefixes relative
// references only, then the query string derived from Data (query-string
// methods) and URLParams is appended, joining onto any query the URL already
// carries.
func (c *Client) resolveURL(req *Request) (string, error) {
	target := req.URL
	if !isAbsoluteURL(target) && c.baseURL != "" {
		target = strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(target, "/")
	}
	if _, err := url.Parse(target); err != nil {
		return "", err
	}

	query := ""
	if isQueryMethod(req.Method) && len(req.Data) > 0 {
		query = encodeQuery(req.Data)
	}
	if len(req.URLParams) > 0 {
		query = encodeParams(req.URLParams)
	}
	if query != "" && strings.Contains(target, "?") {
		query = "&" + query[1:]
	}
	return target + query, nil
}

// validate rejects caller mistakes before any option merging or transport
// work happens.
func (req *Request) validate() *RequestError {
	if req.URL == "" {
		return &RequestError{Type: ErrorTypeConfig, Message: "request URL is empty"}
	}
	if req.Method == "" {
		return &RequestError{Type: ErrorTypeConfig, Message: "request method is empty"}
	}
	if isQueryMethod(req.Method) {
		if len(req.Data) > 0 && len(req.URLParams) > 0 {
			return &RequestError{
				Type:    ErrorTypeConfig,
				Message: "Data and URLParams are redundant on " + req.Method + "; use one of them",
			}
		}
		if req.Files != nil {
			return &RequestError{
				Type:    ErrorTypeConfig,
				Message: "files require a request body; " + req.Method + " does not carry one",
			}
		}
	}
	return nil
}

// snapshot builds the immutable view handed to the BeforeSendHook.
func (req *Request) snapshot(finalURL string, merged Options) *RequestInfo {
	return &RequestInfo{
		URL:          finalURL,
		Method:       req.Method,
		Options:      merged.Clone(),
		Data:         req.Data,
		URLParams:    req.URLParams,
		Files:        req.Files,
		ErrorMsg:     req.ErrorMsg,
		ErrorMsgNoun: req.ErrorMsgNoun,
	}
}
