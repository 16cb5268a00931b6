package digipost

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
)

// Client errors.
var (
	// ErrInvalidID is returned when a sender or broker ID is not a positive
	// integer.
	ErrInvalidID = errors.New("digipost: id must be a positive integer")

	// ErrInvalidConfig is returned by NewClient when the configuration
	// cannot be used.
	ErrInvalidConfig = errors.New("digipost: invalid configuration")

	// ErrMissingLink is returned when an operation needs a link URI that
	// the caller did not supply.
	ErrMissingLink = errors.New("digipost: missing link uri")
)

// maxErrorBodySize bounds how much of an error response body is read.
const maxErrorBodySize = 1 << 20

// APIError describes a failed call to the Digipost API.
//
// StatusCode is 0 when the request failed before any response was
// received; Err then holds the transport error.
type APIError struct {
	StatusCode int
	Code       string
	Type       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder

	b.WriteString("digipost: ")

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}

	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.StatusCode == statusCode
}

// Classify turns a response into an error. A 2xx status yields nil.
//
// For other statuses with an XML content type, error-code, error-type and
// error-message are read from the error envelope. A body that cannot be
// parsed leaves the generic message in place and is never reported as a
// parse failure.
func Classify(statusCode int, contentType string, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("request failed with status code %d", statusCode),
	}

	if strings.Contains(strings.ToLower(contentType), "xml") {
		parseErrorEnvelope(apiErr, body)
	}

	return apiErr
}

// CheckResponse classifies resp. On failure it reads up to 1 MiB of the
// body; the caller still owns and closes resp.Body.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	}

	return Classify(resp.StatusCode, resp.Header.Get("Content-Type"), body)
}

// NewTransportError wraps a failure that happened before a status code was
// obtained, such as a refused connection or a timeout.
func NewTransportError(err error) *APIError {
	return &APIError{
		Message: "http request failed: " + err.Error(),
		Err:     err,
	}
}

func parseErrorEnvelope(apiErr *APIError, body []byte) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return
	}

	root := doc.Root()
	if root == nil {
		return
	}

	apiErr.Code = childText(root, "error-code")
	apiErr.Type = childText(root, "error-type")

	if msg := childText(root, "error-message"); msg != "" {
		apiErr.Message = msg
	}
}

func childText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}

	return strings.TrimSpace(el.Text())
}
