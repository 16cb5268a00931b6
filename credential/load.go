package credential

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/youmark/pkcs8"
	"software.sslmate.com/src/go-pkcs12"
)

// --- PKCS#12 ---

// LoadPKCS12 parses a PKCS#12 container holding an RSA private key and its
// certificate. Any CA certificates in the container are ignored.
func LoadPKCS12(data []byte, password string) (*Credential, error) {
	key, cert, _, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, classifyPKCS12(data, password, err)
	}

	return newCredential(key, cert)
}

// classifyPKCS12 tells a container that opened but lacks a key or
// certificate apart from one that could not be opened at all.
func classifyPKCS12(data []byte, password string, decodeErr error) error {
	if _, err := pkcs12.DecodeTrustStore(data, password); err == nil {
		return fmt.Errorf("%w: container holds only trusted certificates", ErrInvalidPrivateKey)
	}

	//nolint:staticcheck // only the bag types are inspected
	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContainer, decodeErr)
	}

	var hasKey, hasCert bool
	for _, block := range blocks {
		switch block.Type {
		case "PRIVATE KEY":
			hasKey = true
		case "CERTIFICATE":
			hasCert = true
		}
	}

	switch {
	case !hasKey:
		return fmt.Errorf("%w: %v", ErrInvalidPrivateKey, decodeErr)
	case !hasCert:
		return fmt.Errorf("%w: %v", ErrInvalidCertificate, decodeErr)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidContainer, decodeErr)
	}
}

// LoadPKCS12File reads the PKCS#12 container at path and parses it with
// LoadPKCS12.
func LoadPKCS12File(path, password string) (*Credential, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	return LoadPKCS12(data, password)
}

// --- PEM ---

// LoadPEM parses a certificate and a private key from separate PEM blobs.
//
// The key may be an unencrypted PKCS#1 ("RSA PRIVATE KEY") or PKCS#8
// ("PRIVATE KEY") block, an encrypted PKCS#8 block ("ENCRYPTED PRIVATE
// KEY"), or a legacy RFC 1423 encrypted block. keyPassword is ignored for
// unencrypted keys.
func LoadPEM(certPEM, keyPEM []byte, keyPassword string) (*Credential, error) {
	cert, err := parseCertificatePEM(certPEM)
	if err != nil {
		return nil, err
	}

	key, err := parsePrivateKeyPEM(keyPEM, keyPassword)
	if err != nil {
		return nil, err
	}

	return newCredential(key, cert)
}

// LoadPEMFiles reads a certificate and a private key from disk and parses
// them with LoadPEM.
func LoadPEMFiles(certPath, keyPath, keyPassword string) (*Credential, error) {
	certPEM, err := readFile(certPath)
	if err != nil {
		return nil, err
	}

	keyPEM, err := readFile(keyPath)
	if err != nil {
		return nil, err
	}

	return LoadPEM(certPEM, keyPEM, keyPassword)
}

func parseCertificatePEM(data []byte) (*x509.Certificate, error) {
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, fmt.Errorf("%w: no CERTIFICATE PEM block found", ErrInvalidCertificate)
		}

		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCertificate, err)
		}

		return cert, nil
	}
}

func parsePrivateKeyPEM(data []byte, password string) (any, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidPrivateKey)
	}

	der := block.Bytes

	//nolint:staticcheck // legacy encrypted PEM keys are still issued by some tooling
	if x509.IsEncryptedPEMBlock(block) {
		decrypted, err := x509.DecryptPEMBlock(block, []byte(password))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
		}

		der = decrypted
	}

	var (
		key any
		err error
	)

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(der)
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(der)
	case "ENCRYPTED PRIVATE KEY":
		key, err = pkcs8.ParsePKCS8PrivateKey(der, []byte(password))
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", ErrInvalidPrivateKey, block.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return key, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	return data, nil
}
