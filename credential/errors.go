package credential

import "errors"

// Loading errors.
var (
	// ErrFileNotFound is returned when a keystore, certificate or key file
	// does not exist.
	ErrFileNotFound = errors.New("credential: file not found")

	// ErrUnreadable is returned when a file exists but cannot be read.
	ErrUnreadable = errors.New("credential: file unreadable")

	// ErrInvalidContainer is returned when PKCS#12 data cannot be decoded,
	// including when the password is wrong.
	ErrInvalidContainer = errors.New("credential: invalid PKCS#12 container or wrong password")

	// ErrInvalidPrivateKey is returned when a private key cannot be
	// extracted, is not an RSA key, or does not match the certificate.
	ErrInvalidPrivateKey = errors.New("credential: invalid private key")

	// ErrInvalidCertificate is returned when a certificate cannot be
	// extracted or parsed.
	ErrInvalidCertificate = errors.New("credential: invalid certificate")
)

// Signing errors.
var (
	// ErrSigningFailed is returned when the crypto backend fails to produce
	// a signature. A request cannot be sent without a signature, so this
	// error is fatal to that request.
	ErrSigningFailed = errors.New("credential: signing failed")

	// ErrSignatureInvalid is returned by Verify when a signature does not
	// match the data under the certificate public key.
	ErrSignatureInvalid = errors.New("credential: signature verification failed")
)
