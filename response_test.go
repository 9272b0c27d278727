package farfetch

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHTTPResponse(status int, contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewResponseDerivesJSON(t *testing.T) {
	body := `{"people":[{"name":"Bobby"},{"name":"Clara"}]}`
	resp, err := newResponse(makeHTTPResponse(200, "application/json", body))
	require.NoError(t, err)

	parsed, ok := resp.JSON()
	require.True(t, ok)

	var independent any
	require.NoError(t, json.Unmarshal([]byte(body), &independent))
	assert.Equal(t, independent, parsed)

	// Repeated access yields the same value.
	again, ok := resp.JSON()
	require.True(t, ok)
	assert.Equal(t, parsed, again)
	assert.Equal(t, []byte(body), resp.Body())
}

func TestNewResponseJSONSuffixContentType(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "application/vnd.api+json", `{"ok":true}`))
	require.NoError(t, err)

	_, ok := resp.JSON()
	assert.True(t, ok)
}

func TestNewResponseMalformedJSONLeavesFieldUnset(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "application/json", `{"broken`))
	require.NoError(t, err)

	_, ok := resp.JSON()
	assert.False(t, ok)
	assert.Error(t, resp.Decode(&struct{}{}))
}

func TestNewResponseDerivesText(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "text/plain; charset=utf-8", "hello"))
	require.NoError(t, err)

	text, ok := resp.Text()
	require.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = resp.JSON()
	assert.False(t, ok)
}

func TestNewResponseOtherContentType(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "application/octet-stream", "\x00\x01"))
	require.NoError(t, err)

	_, jsonOK := resp.JSON()
	_, textOK := resp.Text()
	assert.False(t, jsonOK)
	assert.False(t, textOK)
	assert.Equal(t, []byte("\x00\x01"), resp.Body())
}

func TestResponseDecode(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "application/json", `{"name":"Bobby","age":42}`))
	require.NoError(t, err)

	var person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	require.NoError(t, resp.Decode(&person))
	assert.Equal(t, "Bobby", person.Name)
	assert.Equal(t, 42, person.Age)
}

func TestResponseGet(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "application/json", `{"items":[{"id":7}]}`))
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.Get("items.0.id").Int())
}

func TestResponseStatusHelpers(t *testing.T) {
	ok, err := newResponse(makeHTTPResponse(204, "", ""))
	require.NoError(t, err)
	assert.True(t, ok.IsSuccess())

	notFound, err := newResponse(makeHTTPResponse(404, "", ""))
	require.NoError(t, err)
	assert.True(t, notFound.IsClientError())
	assert.False(t, notFound.IsSuccess())

	boom, err := newResponse(makeHTTPResponse(503, "", ""))
	require.NoError(t, err)
	assert.True(t, boom.IsServerError())
}

func TestResponseGetHeader(t *testing.T) {
	resp, err := newResponse(makeHTTPResponse(200, "application/json", `{}`))
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.GetHeader("Content-Type"))
}
