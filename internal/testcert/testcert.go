// Package testcert generates throwaway self-signed RSA identities for
// tests of packages that sign Digipost requests.
package testcert

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

// Identity is a PEM-encoded certificate and PKCS#1 private key.
type Identity struct {
	CertPEM []byte
	KeyPEM  []byte
}

// New generates a 2048-bit RSA key and a self-signed certificate for cn,
// valid from one hour ago for one day.
func New(cn string) (Identity, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return Identity{}, err
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		CertPEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		KeyPEM:  pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	}, nil
}

// WriteFiles writes the identity to cert.pem and key.pem in dir and
// returns their paths.
func (id Identity) WriteFiles(dir string) (certPath, keyPath string, err error) {
	certPath = filepath.Join(dir, "cert.pem")
	keyPath = filepath.Join(dir, "key.pem")

	if err := os.WriteFile(certPath, id.CertPEM, 0o600); err != nil {
		return "", "", err
	}

	if err := os.WriteFile(keyPath, id.KeyPEM, 0o600); err != nil {
		return "", "", err
	}

	return certPath, keyPath, nil
}
