package httpsig

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"time"
)

// SignConfig configures Digipost request signing.
type SignConfig struct {
	// Signer produces signatures. Required.
	Signer Signer

	// UserID is the sender (or broker) ID sent as X-Digipost-UserId when
	// the request does not already carry that header.
	UserID string

	// Now returns the time used for the Date header when the request has
	// none. Defaults to time.Now.
	Now func() time.Time
}

// SignedHeaders is the header set produced by the signing pipeline for one
// request.
type SignedHeaders struct {
	Date          string
	ContentSHA256 string
	UserID        string
	Signature     string
}

// Apply sets the signed headers on h. X-Content-SHA256 is removed when the
// request has no body.
func (s SignedHeaders) Apply(h http.Header) {
	h.Set(HeaderDate, s.Date)
	h.Set(HeaderUserID, s.UserID)
	h.Set(HeaderSignature, s.Signature)

	if s.ContentSHA256 != "" {
		h.Set(HeaderContentSHA256, s.ContentSHA256)
	} else {
		h.Del(HeaderContentSHA256)
	}
}

// Prepare computes the signed headers for a request without modifying it.
//
// The Date header is taken from h or generated in RFC 1123 GMT format,
// X-Content-SHA256 is computed when body is non-empty, and the canonical
// request is signed and base64-encoded into X-Digipost-Signature. A new
// Date, and therefore a new signature, must be prepared for every attempt
// to send a request.
func Prepare(method string, u *url.URL, h http.Header, body []byte, cfg SignConfig) (SignedHeaders, error) {
	if cfg.Signer == nil {
		return SignedHeaders{}, ErrNoSigner
	}

	signed := SignedHeaders{
		Date:   headerValue(h, HeaderDate),
		UserID: headerValue(h, HeaderUserID),
	}

	if signed.Date == "" {
		now := time.Now
		if cfg.Now != nil {
			now = cfg.Now
		}

		signed.Date = now().UTC().Format(http.TimeFormat)
	}

	if signed.UserID == "" {
		signed.UserID = cfg.UserID
	}

	if signed.UserID == "" {
		return SignedHeaders{}, ErrMissingUserID
	}

	if len(body) > 0 {
		signed.ContentSHA256 = ContentHash(body)
	}

	covered := make(http.Header, 3)
	signed.Apply(covered)

	sig, err := cfg.Signer.Sign(BuildCanonicalRequest(method, u, covered))
	if err != nil {
		return SignedHeaders{}, err
	}

	signed.Signature = base64.StdEncoding.EncodeToString(sig)

	return signed, nil
}

// SignRequest signs an HTTP request in-place by setting the Date,
// X-Content-SHA256, X-Digipost-UserId and X-Digipost-Signature headers.
// The request body is read and restored.
func SignRequest(r *http.Request, cfg SignConfig) error {
	if cfg.Signer == nil {
		return ErrNoSigner
	}

	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	signed, err := Prepare(r.Method, r.URL, r.Header, body, cfg)
	if err != nil {
		return err
	}

	signed.Apply(r.Header)

	return nil
}
