package httpsig

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// ContentHash returns the base64-encoded (standard alphabet) SHA-256
// digest of body, the value carried in the X-Content-SHA256 header.
//
// The digest of an empty body is well defined, but callers must not send
// it: a request without a body carries no X-Content-SHA256 header.
func ContentHash(body []byte) string {
	sum := sha256.Sum256(body)

	return base64.StdEncoding.EncodeToString(sum[:])
}

// SetContentHash reads the request body, sets the X-Content-SHA256 header
// when the body is non-empty, and replaces the body so it can be read
// again. For an empty body any existing X-Content-SHA256 header is removed.
func SetContentHash(r *http.Request) error {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	if len(body) == 0 {
		r.Header.Del(HeaderContentSHA256)
		return nil
	}

	r.Header.Set(HeaderContentSHA256, ContentHash(body))

	return nil
}

// VerifyContentHash verifies the X-Content-SHA256 header against the
// request body. A request with neither body nor header is accepted.
func VerifyContentHash(r *http.Request) error {
	header := r.Header.Get(HeaderContentSHA256)

	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	if header == "" {
		if len(body) == 0 {
			return nil
		}

		return ErrContentHashNotFound
	}

	actual, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return fmt.Errorf("%w: invalid base64 in %s", ErrMalformedHeader, HeaderContentSHA256)
	}

	expected := sha256.Sum256(body)
	if !bytes.Equal(expected[:], actual) {
		return ErrContentHashMismatch
	}

	return nil
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again by the transport or by
// downstream handlers.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
