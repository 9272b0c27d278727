package farfetch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
)

// encodeValue renders a data value as its query/form string representation.
// Composite values (maps, slices, arrays, structs) are JSON-stringified;
// scalars use their standard string form, nil becomes "null".
func encodeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Ptr:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// encodeQuery turns a data mapping into a URL-encoded query string with a
// leading "?". Returns "" for an empty mapping. Key order is deterministic
// (url.Values.Encode sorts keys).
func encodeQuery(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	values := url.Values{}
	for key, v := range data {
		values.Set(key, encodeValue(v))
	}
	return "?" + values.Encode()
}

// encodeParams is encodeQuery for the plain-string URLParams mapping.
func encodeParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, v := range params {
		values.Set(key, v)
	}
	return "?" + values.Encode()
}

// encodeForm renders a data mapping as an application/x-www-form-urlencoded
// request body (no leading "?").
func encodeForm(data map[string]any) string {
	q := encodeQuery(data)
	if q == "" {
		return ""
	}
	return q[1:]
}

// isQueryMethod reports whether the method routes Data to the query string
// rather than the request body.
func isQueryMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	}
	return false
}
