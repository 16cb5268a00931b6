package httpsig

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// VerifyConfig configures server-side verification of Digipost request
// signatures.
type VerifyConfig struct {
	// Verifier checks the signature against the canonical request.
	// Required.
	Verifier Verifier

	// UserID, when set, must equal the X-Digipost-UserId header.
	UserID string

	// MaxSkew is the maximum allowed distance between the Date header and
	// the current time. When zero, the Date header is not checked.
	MaxSkew time.Duration

	// Now returns the current time for the skew check. Defaults to
	// time.Now.
	Now func() time.Time
}

// VerifyRequest verifies the X-Digipost-Signature of an incoming request.
// The content hash is checked against the body, which is restored for
// downstream handlers.
func VerifyRequest(r *http.Request, cfg VerifyConfig) error {
	if cfg.Verifier == nil {
		return ErrNoVerifier
	}

	sigHeader := r.Header.Get(HeaderSignature)
	if sigHeader == "" {
		return ErrSignatureNotFound
	}

	sig, err := base64.StdEncoding.DecodeString(sigHeader)
	if err != nil {
		return fmt.Errorf("%w: invalid base64 in signature", ErrMalformedHeader)
	}

	if cfg.UserID != "" && r.Header.Get(HeaderUserID) != cfg.UserID {
		return ErrUserIDMismatch
	}

	if cfg.MaxSkew > 0 {
		if err := checkDate(r.Header.Get(HeaderDate), cfg); err != nil {
			return err
		}
	}

	if err := VerifyContentHash(r); err != nil {
		return err
	}

	base := BuildCanonicalRequest(r.Method, r.URL, r.Header)
	if err := cfg.Verifier.Verify(base, sig); err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	}

	return nil
}

// checkDate rejects requests whose Date header is missing, unparsable or
// outside the allowed skew.
func checkDate(value string, cfg VerifyConfig) error {
	if value == "" {
		return fmt.Errorf("%w: missing %s", ErrMalformedHeader, HeaderDate)
	}

	date, err := http.ParseTime(value)
	if err != nil {
		return fmt.Errorf("%w: invalid %s", ErrMalformedHeader, HeaderDate)
	}

	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	skew := now().Sub(date)
	if skew < 0 {
		skew = -skew
	}

	if skew > cfg.MaxSkew {
		return ErrSignatureExpired
	}

	return nil
}
