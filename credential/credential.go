package credential

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"math/big"
	"time"
)

// Credential is an RSA private key bound to its X.509 certificate.
//
// A Credential is immutable after loading. Sign, Verify and the
// introspection methods derive no mutable state, so one Credential can be
// shared by any number of goroutines without locking. The private key is
// never exposed.
type Credential struct {
	key         *rsa.PrivateKey
	cert        *x509.Certificate
	fingerprint string
	certPEM     string
}

// CertificateInfo describes the certificate of a Credential for
// diagnostics.
type CertificateInfo struct {
	Subject      string
	Issuer       string
	SerialNumber *big.Int
	NotBefore    time.Time
	NotAfter     time.Time
	KeyBits      int
}

// newCredential validates that key is an RSA private key matching the
// public key of cert and precomputes the derived fields.
func newCredential(key any, cert *x509.Certificate) (*Credential, error) {
	if cert == nil {
		return nil, fmt.Errorf("%w: no certificate found", ErrInvalidCertificate)
	}

	if key == nil {
		return nil, fmt.Errorf("%w: no private key found", ErrInvalidPrivateKey)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected RSA key, got %T", ErrInvalidPrivateKey, key)
	}

	if !rsaKey.PublicKey.Equal(cert.PublicKey) {
		return nil, fmt.Errorf("%w: key does not match certificate", ErrInvalidPrivateKey)
	}

	sum := sha256.Sum256(cert.Raw)

	return &Credential{
		key:         rsaKey,
		cert:        cert,
		fingerprint: hex.EncodeToString(sum[:]),
		certPEM:     string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})),
	}, nil
}

// Sign produces an RSASSA-PKCS1-v1_5 signature over data using SHA-256.
func (c *Credential) Sign(data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)

	sig, err := rsa.SignPKCS1v15(rand.Reader, c.key, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	return sig, nil
}

// Verify checks that signature is a valid RSA-SHA256 signature over data
// under the certificate public key.
func (c *Credential) Verify(data, signature []byte) error {
	digest := sha256.Sum256(data)

	if err := rsa.VerifyPKCS1v15(&c.key.PublicKey, crypto.SHA256, digest[:], signature); err != nil {
		return ErrSignatureInvalid
	}

	return nil
}

// Fingerprint returns the lowercase hex SHA-256 digest of the DER-encoded
// certificate.
func (c *Credential) Fingerprint() string {
	return c.fingerprint
}

// CertificatePEM returns the certificate re-encoded as a PEM block.
func (c *Credential) CertificatePEM() string {
	return c.certPEM
}

// Certificate returns the parsed certificate. Callers must not modify it.
func (c *Credential) Certificate() *x509.Certificate {
	return c.cert
}

// PublicKey returns the RSA public key of the credential.
func (c *Credential) PublicKey() *rsa.PublicKey {
	return &c.key.PublicKey
}

// Info returns a summary of the certificate.
func (c *Credential) Info() CertificateInfo {
	return CertificateInfo{
		Subject:      c.cert.Subject.String(),
		Issuer:       c.cert.Issuer.String(),
		SerialNumber: new(big.Int).Set(c.cert.SerialNumber),
		NotBefore:    c.cert.NotBefore,
		NotAfter:     c.cert.NotAfter,
		KeyBits:      c.key.N.BitLen(),
	}
}

// ValidAt reports whether t falls inside the certificate validity period.
func (c *Credential) ValidAt(t time.Time) bool {
	return !t.Before(c.cert.NotBefore) && !t.After(c.cert.NotAfter)
}
