package digipost

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("2xx is success", func(t *testing.T) {
		for _, status := range []int{200, 201, 204, 299} {
			assert.NoError(t, Classify(status, "application/xml", []byte("<error><error-code>X</error-code></error>")))
			assert.NoError(t, Classify(status, "", nil))
		}
	})

	t.Run("xml envelope error code", func(t *testing.T) {
		err := Classify(404, "application/xml", []byte("<error><error-code>NOT_FOUND</error-code></error>"))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "NOT_FOUND", apiErr.Code)
		assert.Empty(t, apiErr.Type)
		assert.Equal(t, "request failed with status code 404", apiErr.Message)
	})

	t.Run("full envelope", func(t *testing.T) {
		body := `<?xml version="1.0" encoding="UTF-8"?>
<error xmlns="http://api.digipost.no/schema/v8">
  <error-code>UNKNOWN_RECIPIENT</error-code>
  <error-message> Recipient does not exist </error-message>
  <error-type>CLIENT_DATA</error-type>
</error>`

		err := Classify(400, "application/vnd.digipost-v8+xml; charset=UTF-8", []byte(body))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "UNKNOWN_RECIPIENT", apiErr.Code)
		assert.Equal(t, "CLIENT_DATA", apiErr.Type)
		assert.Equal(t, "Recipient does not exist", apiErr.Message)
		assert.Equal(t, "digipost: UNKNOWN_RECIPIENT: Recipient does not exist (status 400)", apiErr.Error())
	})

	t.Run("non xml body uses generic message", func(t *testing.T) {
		err := Classify(500, "text/plain", []byte("oops"))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 500, apiErr.StatusCode)
		assert.Empty(t, apiErr.Code)
		assert.Equal(t, "request failed with status code 500", apiErr.Message)
		assert.NoError(t, apiErr.Unwrap())
	})

	t.Run("malformed xml never masks status", func(t *testing.T) {
		bodies := []string{
			"",
			"oops",
			"<error><error-code>BROKEN</error-code",
			"<<>>",
			"<error></wrong>",
			"<html><body>Bad Gateway</body></html>",
		}

		for _, body := range bodies {
			err := Classify(502, "application/xml", []byte(body))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr, body)
			assert.Equal(t, 502, apiErr.StatusCode, body)
			assert.Empty(t, apiErr.Code, body)
			assert.Equal(t, "request failed with status code 502", apiErr.Message, body)
		}
	})

	t.Run("statuses outside 2xx fail", func(t *testing.T) {
		for _, status := range []int{100, 199, 300, 304, 401, 503} {
			assert.Error(t, Classify(status, "", nil), status)
		}
	})
}

func TestCheckResponse(t *testing.T) {
	t.Run("success leaves body unread", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("<sender/>")),
		}

		require.NoError(t, CheckResponse(resp))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "<sender/>", string(body))
	})

	t.Run("failure reads envelope", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusForbidden,
			Header:     http.Header{"Content-Type": {"application/xml"}},
			Body:       io.NopCloser(strings.NewReader("<error><error-code>FORBIDDEN</error-code><error-type>SECURITY</error-type></error>")),
		}

		err := CheckResponse(resp)
		assert.True(t, IsStatus(err, http.StatusForbidden))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "FORBIDDEN", apiErr.Code)
		assert.Equal(t, "SECURITY", apiErr.Type)
	})

	t.Run("nil body", func(t *testing.T) {
		err := CheckResponse(&http.Response{StatusCode: http.StatusInternalServerError, Header: http.Header{}})
		assert.True(t, IsStatus(err, http.StatusInternalServerError))
	})
}

func TestNewTransportError(t *testing.T) {
	cause := syscall.ECONNREFUSED

	apiErr := NewTransportError(cause)

	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
	assert.ErrorIs(t, apiErr, syscall.ECONNREFUSED)
	assert.Contains(t, apiErr.Error(), "http request failed")
	assert.NotContains(t, apiErr.Error(), "status")
}

func TestIsStatus(t *testing.T) {
	assert.True(t, IsStatus(&APIError{StatusCode: 404}, 404))
	assert.False(t, IsStatus(&APIError{StatusCode: 404}, 500))
	assert.False(t, IsStatus(errors.New("plain"), 404))
	assert.False(t, IsStatus(nil, 404))
}
