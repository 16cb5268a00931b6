package httpsig

import "errors"

// Signing errors.
var (
	// ErrNoSigner is returned when SignConfig has no Signer configured.
	ErrNoSigner = errors.New("httpsig: signer must not be nil")

	// ErrMissingUserID is returned when neither the request nor SignConfig
	// provides an X-Digipost-UserId value.
	ErrMissingUserID = errors.New("httpsig: X-Digipost-UserId is required")
)

// Verification errors.
var (
	// ErrNoVerifier is returned when VerifyConfig has no Verifier configured.
	ErrNoVerifier = errors.New("httpsig: verifier must not be nil")

	// ErrSignatureNotFound is returned when the X-Digipost-Signature header
	// is absent.
	ErrSignatureNotFound = errors.New("httpsig: signature not found")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("httpsig: signature verification failed")

	// ErrSignatureExpired is returned when the Date header is further from
	// the current time than the allowed skew.
	ErrSignatureExpired = errors.New("httpsig: signature expired")

	// ErrMalformedHeader is returned when the signature or Date header
	// cannot be parsed.
	ErrMalformedHeader = errors.New("httpsig: malformed header")

	// ErrUserIDMismatch is returned when the request was signed for a
	// different user ID than the verifier expects.
	ErrUserIDMismatch = errors.New("httpsig: user id mismatch")
)

// Content hash errors.
var (
	// ErrContentHashMismatch is returned when X-Content-SHA256 does not match
	// the request body.
	ErrContentHashMismatch = errors.New("httpsig: content hash mismatch")

	// ErrContentHashNotFound is returned when the request has a body but no
	// X-Content-SHA256 header.
	ErrContentHashNotFound = errors.New("httpsig: content hash not found")
)
